package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"school-erp-service/internal/model"
	"school-erp-service/internal/session"
	"school-erp-service/internal/store"
	"school-erp-service/pkg/config"
	"school-erp-service/pkg/jwtutil"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) *session.Manager {
	t.Helper()
	jwtutil.Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})

	path := filepath.Join(t.TempDir(), "snapshot.json")
	st := store.New(store.NewFileBackend(path), store.SeedOptions{
		SuperUsername: "superadmin",
		SuperPassword: "admin123",
	}, nil)
	require.NoError(t, st.LoadOrInitialize())

	m := session.NewManager(st, nil)
	Initialize(m)
	return m
}

func request(method, target, body string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req, httptest.NewRecorder()
}

func TestLoginHandler(t *testing.T) {
	setup(t)
	e := echo.New()

	req, rec := request(http.MethodPost, "/auth/login", `{"schoolId":"springfield_elem","password":"pass123"}`)
	require.NoError(t, Login(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token  string       `json:"token"`
		School model.School `json:"school"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Springfield Elementary", resp.School.Name)
	assert.Empty(t, resp.School.Password)

	claims, err := jwtutil.ValidateToken(resp.Token)
	require.NoError(t, err)
	require.NotNil(t, claims.SchoolID)
	assert.Equal(t, uint(1), *claims.SchoolID)
}

func TestLoginHandlerBadCredentials(t *testing.T) {
	setup(t)
	e := echo.New()

	req, rec := request(http.MethodPost, "/auth/login", `{"schoolId":"springfield_elem","password":"wrong"}`)
	require.NoError(t, Login(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")
}

func TestSessionHandler(t *testing.T) {
	m := setup(t)
	e := echo.New()

	req, rec := request(http.MethodGet, "/api/auth/session", "")
	require.NoError(t, Session(e.NewContext(req, rec)))
	assert.Contains(t, rec.Body.String(), `"active":false`)

	_, err := m.Login("north_central_high", "password123")
	require.NoError(t, err)

	req, rec = request(http.MethodGet, "/api/auth/session", "")
	require.NoError(t, Session(e.NewContext(req, rec)))
	assert.Contains(t, rec.Body.String(), `"active":true`)
	assert.Contains(t, rec.Body.String(), "North Central High")
}

func TestSuperLoginHandler(t *testing.T) {
	m := setup(t)
	e := echo.New()

	req, rec := request(http.MethodPost, "/auth/super/login", `{"username":"superadmin","password":"admin123"}`)
	require.NoError(t, SuperLogin(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, m.IsSuperLoggedIn())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	claims, err := jwtutil.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.True(t, claims.Super)
}

func TestChangeSuperPasswordHandler(t *testing.T) {
	setup(t)
	e := echo.New()

	req, rec := request(http.MethodPost, "/api/auth/super/password", `{"current_password":"wrong","new_password":"new"}`)
	require.NoError(t, ChangeSuperPassword(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req, rec = request(http.MethodPost, "/api/auth/super/password", `{"current_password":"admin123","new_password":""}`)
	require.NoError(t, ChangeSuperPassword(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req, rec = request(http.MethodPost, "/api/auth/super/password", `{"current_password":"admin123","new_password":"rotated"}`)
	require.NoError(t, ChangeSuperPassword(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateSchoolHandlerValidation(t *testing.T) {
	setup(t)
	e := echo.New()

	req, rec := request(http.MethodPost, "/api/schools", `{"name":"No Credentials"}`)
	require.NoError(t, CreateSchool(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSchoolCRUDHandlers(t *testing.T) {
	m := setup(t)
	e := echo.New()

	req, rec := request(http.MethodPost, "/api/schools", `{"name":"Oak Hill","address":"12 Oak Rd","schoolId":"oak_hill","password":"secret"}`)
	require.NoError(t, CreateSchool(e.NewContext(req, rec)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		School model.School `json:"school"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, uint(4), created.School.ID)

	req, rec = request(http.MethodPut, "/api/schools/4", `{"name":"Oak Hill Academy","address":"12 Oak Rd","schoolId":"oak_hill"}`)
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("4")
	require.NoError(t, UpdateSchool(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Oak Hill Academy")

	// Credential untouched by an update without a password.
	_, err := m.Login("oak_hill", "secret")
	require.NoError(t, err)

	req, rec = request(http.MethodDelete, "/api/schools/4", "")
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("4")
	require.NoError(t, DeleteSchool(c))
	require.Equal(t, http.StatusOK, rec.Code)

	_, ok := m.ActiveSchool()
	assert.False(t, ok, "deleting the active school ends its session")
	assert.Len(t, m.Directory().Schools(), 3)
}

func TestUpdateSchoolHandlerNotFound(t *testing.T) {
	setup(t)
	e := echo.New()

	req, rec := request(http.MethodPut, "/api/schools/42", `{"name":"Ghost","schoolId":"ghost"}`)
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("42")
	require.NoError(t, UpdateSchool(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetCollectionHandler(t *testing.T) {
	m := setup(t)
	e := echo.New()

	_, err := m.Login("springfield_elem", "pass123")
	require.NoError(t, err)

	req, rec := request(http.MethodGet, "/api/data/students", "")
	c := e.NewContext(req, rec)
	c.SetParamNames("collection")
	c.SetParamValues("students")
	require.NoError(t, GetCollection(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestGetCollectionHandlerUnknownKey(t *testing.T) {
	setup(t)
	e := echo.New()

	req, rec := request(http.MethodGet, "/api/data/bogus", "")
	c := e.NewContext(req, rec)
	c.SetParamNames("collection")
	c.SetParamValues("bogus")
	require.NoError(t, GetCollection(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReplaceCollectionHandler(t *testing.T) {
	m := setup(t)
	e := echo.New()

	_, err := m.Login("springfield_elem", "pass123")
	require.NoError(t, err)

	payload := `[{"id":1,"studentId":"S001","name":"Alice Johnson"}]`
	req, rec := request(http.MethodPut, "/api/data/students", payload)
	c := e.NewContext(req, rec)
	c.SetParamNames("collection")
	c.SetParamValues("students")
	require.NoError(t, ReplaceCollection(c))
	require.Equal(t, http.StatusOK, rec.Code)

	req, rec = request(http.MethodGet, "/api/data/students", "")
	c = e.NewContext(req, rec)
	c.SetParamNames("collection")
	c.SetParamValues("students")
	require.NoError(t, GetCollection(c))
	assert.Contains(t, rec.Body.String(), "Alice Johnson")
}

func TestReplaceCollectionHandlerNoSession(t *testing.T) {
	setup(t)
	e := echo.New()

	req, rec := request(http.MethodPut, "/api/data/students", "[]")
	c := e.NewContext(req, rec)
	c.SetParamNames("collection")
	c.SetParamValues("students")
	require.NoError(t, ReplaceCollection(c))
	assert.Equal(t, http.StatusPreconditionFailed, rec.Code)
}

func TestReplaceCollectionHandlerBadPayload(t *testing.T) {
	m := setup(t)
	e := echo.New()

	_, err := m.Login("springfield_elem", "pass123")
	require.NoError(t, err)

	req, rec := request(http.MethodPut, "/api/data/students", `{"not":"a list"`)
	c := e.NewContext(req, rec)
	c.SetParamNames("collection")
	c.SetParamValues("students")
	require.NoError(t, ReplaceCollection(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaveProfileHandler(t *testing.T) {
	m := setup(t)
	e := echo.New()

	req, rec := request(http.MethodPut, "/api/profile", `{"name":"X"}`)
	require.NoError(t, SaveProfile(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusPreconditionFailed, rec.Code)

	_, err := m.Login("springfield_elem", "pass123")
	require.NoError(t, err)

	req, rec = request(http.MethodPut, "/api/profile", `{"name":"Springfield Elementary","address":"123 Education Lane","logoUrl":"https://example.com/logo.png"}`)
	require.NoError(t, SaveProfile(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	req, rec = request(http.MethodGet, "/api/data", "")
	require.NoError(t, GetActiveData(e.NewContext(req, rec)))

	var bundle model.SchoolData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bundle))
	require.NotNil(t, bundle.SchoolProfile.LogoURL)
	assert.Equal(t, "https://example.com/logo.png", *bundle.SchoolProfile.LogoURL)
}

func TestHealthCheckHandler(t *testing.T) {
	e := echo.New()
	req, rec := request(http.MethodGet, "/health", "")
	require.NoError(t, HealthCheck(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
