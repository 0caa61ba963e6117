package jwtutil

import (
	"time"

	"school-erp-service/pkg/config"

	"github.com/golang-jwt/jwt/v4"
)

var (
	secret = []byte("secret-key")
	expiry = 24 * time.Hour
)

// Initialize configures the signing key and token lifetime.
func Initialize(cfg *config.JWTConfig) {
	secret = []byte(cfg.SigningKey)
	if cfg.ExpirationHours > 0 {
		expiry = time.Duration(cfg.ExpirationHours) * time.Hour
	}
}

// SessionClaims represents the JWT claims for a school or operator session.
// Exactly one of SchoolID / Super is set.
type SessionClaims struct {
	SchoolID   *uint  `json:"school_id,omitempty"`
	SchoolName string `json:"school_name,omitempty"`
	LoginID    string `json:"login_id,omitempty"`
	Super      bool   `json:"super,omitempty"`
	jwt.RegisteredClaims
}

// GenerateSchoolToken creates a token for an authenticated school session.
func GenerateSchoolToken(schoolID uint, schoolName, loginID string) (string, error) {
	claims := SessionClaims{
		SchoolID:   &schoolID,
		SchoolName: schoolName,
		LoginID:    loginID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// GenerateSuperToken creates a token for the platform operator.
func GenerateSuperToken(username string) (string, error) {
	claims := SessionClaims{
		Super:   true,
		LoginID: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken validates and parses the JWT token
func ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}
