package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"school-erp-service/pkg/config"
	"school-erp-service/pkg/jwtutil"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	jwtutil.Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})
}

func run(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec, called
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	rec, called := run(t, AuthMiddleware, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	rec, called := run(t, AuthMiddleware, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	rec, called := run(t, AuthMiddleware, "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthMiddlewareSchoolToken(t *testing.T) {
	token, err := jwtutil.GenerateSchoolToken(3, "Oak Valley Academy", "oak_valley_acad")
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := AuthMiddleware(func(c echo.Context) error {
		assert.Equal(t, uint(3), c.Get(SchoolIDKey))
		assert.Equal(t, "Oak Valley Academy", c.Get(SchoolNameKey))
		assert.Equal(t, false, c.Get(SuperKey))
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireSuper(t *testing.T) {
	schoolToken, err := jwtutil.GenerateSchoolToken(1, "Springfield", "springfield_elem")
	require.NoError(t, err)
	superToken, err := jwtutil.GenerateSuperToken("superadmin")
	require.NoError(t, err)

	chain := func(next echo.HandlerFunc) echo.HandlerFunc {
		return AuthMiddleware(RequireSuper(next))
	}

	rec, called := run(t, chain, "Bearer "+schoolToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)

	rec, called = run(t, chain, "Bearer "+superToken)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestRequireSchool(t *testing.T) {
	schoolToken, err := jwtutil.GenerateSchoolToken(1, "Springfield", "springfield_elem")
	require.NoError(t, err)
	superToken, err := jwtutil.GenerateSuperToken("superadmin")
	require.NoError(t, err)

	chain := func(next echo.HandlerFunc) echo.HandlerFunc {
		return AuthMiddleware(RequireSchool(next))
	}

	rec, called := run(t, chain, "Bearer "+superToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)

	rec, called = run(t, chain, "Bearer "+schoolToken)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestRequestIDMiddleware(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequestIDMiddleware(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	assert.NotEmpty(t, rec.Header().Get(RequestIDKey))

	// A caller-supplied id is echoed back untouched.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDKey, "abc-123")
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	require.NoError(t, RequestIDMiddleware(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c))
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDKey))
}
