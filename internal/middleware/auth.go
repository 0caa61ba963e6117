package middleware

import (
	"net/http"
	"strings"

	"school-erp-service/pkg/jwtutil"
	"school-erp-service/pkg/logger"
	"school-erp-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Context keys set by AuthMiddleware.
const (
	SchoolIDKey   = "school_id"
	SchoolNameKey = "school_name"
	SuperKey      = "super"
)

// AuthMiddleware validates the JWT token from the Authorization header
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		// Get the Authorization header
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Error("Missing Authorization header")
			prometheus.RecordAuthError("missing_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
		}

		// Check if it's a Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Error("Invalid Authorization header format")
			prometheus.RecordAuthError("invalid_auth_format")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
		}

		// Validate the token
		claims, err := jwtutil.ValidateToken(parts[1])
		if err != nil {
			log.Error("Invalid JWT token", zap.Error(err))
			prometheus.RecordAuthError("invalid_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}

		// Store session info in context for later use
		c.Set(SuperKey, claims.Super)
		if claims.SchoolID != nil {
			c.Set(SchoolIDKey, *claims.SchoolID)
			c.Set(SchoolNameKey, claims.SchoolName)

			log.Debug("Request authenticated with school context",
				zap.Uint("school_id", *claims.SchoolID),
				zap.String("school_name", claims.SchoolName))
		}

		return next(c)
	}
}

// RequireSuper allows only requests authenticated as the platform operator.
func RequireSuper(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if super, ok := c.Get(SuperKey).(bool); !ok || !super {
			logger.FromContext(c).Warn("Super admin access denied")
			prometheus.RecordAuthError("super_access_denied")
			return c.JSON(http.StatusForbidden, echo.Map{"error": "super admin access required"})
		}
		return next(c)
	}
}

// RequireSchool allows only requests authenticated as a school session.
func RequireSchool(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := c.Get(SchoolIDKey).(uint); !ok {
			logger.FromContext(c).Warn("School access denied")
			prometheus.RecordAuthError("school_access_denied")
			return c.JSON(http.StatusForbidden, echo.Map{"error": "school session required"})
		}
		return next(c)
	}
}
