package handler

import (
	"errors"
	"net/http"

	"school-erp-service/internal/store"
	"school-erp-service/pkg/jwtutil"
	"school-erp-service/pkg/logger"
	"school-erp-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Login authenticates a school and marks it as the active tenant.
func Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		SchoolID string `json:"schoolId"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	school, err := sessions.Login(req.SchoolID, req.Password)
	if err != nil {
		prometheus.RecordAuthError("login_failure")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := jwtutil.GenerateSchoolToken(school.ID, school.Name, school.LoginID)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"token":  token,
		"school": school,
	})
}

// Logout clears the active school session.
func Logout(c echo.Context) error {
	log := logger.FromContext(c)

	if err := sessions.Logout(); err != nil {
		log.Error("Logout failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out"})
}

// Session reports the restored school session, if any.
func Session(c echo.Context) error {
	school, ok := sessions.LoadSession()
	if !ok {
		return c.JSON(http.StatusOK, echo.Map{"active": false})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"active": true,
		"school": school,
	})
}

// SuperLogin authenticates the platform operator.
func SuperLogin(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.SuperLoginCounter.Inc()

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse super login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if err := sessions.SuperLogin(req.Username, req.Password); err != nil {
		prometheus.RecordAuthError("super_login_failure")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := jwtutil.GenerateSuperToken(req.Username)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

// SuperLogout clears the operator session.
func SuperLogout(c echo.Context) error {
	sessions.SuperLogout()
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out"})
}

// SuperStatus reports whether the operator session is active.
func SuperStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"logged_in": sessions.IsSuperLoggedIn()})
}

// ChangeSuperPassword rotates the operator credential.
func ChangeSuperPassword(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse password change request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "new password is required"})
	}

	if err := sessions.ChangeSuperPassword(req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			prometheus.RecordAuthError("super_password_mismatch")
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "incorrect current password"})
		}
		log.Error("Failed to change super admin password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "password change failed"})
	}

	log.Info("Super admin password changed")
	return c.JSON(http.StatusOK, echo.Map{"message": "Password changed successfully"})
}
