package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"crimeChronicles/business/recommendation"
	"crimeChronicles/pkg/utils"

	jsonres "crimeChronicles/pkg/response"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newAuthServer() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler

	e.GET("/me", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"user_id": c.Get("user_id"), "role": c.Get("role")})
	}, AuthMiddleware())
	e.GET("/admin", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, AuthMiddleware(), AdminOnly())

	return e
}

func bearer(t *testing.T, userID, role string) string {
	t.Helper()
	token, err := utils.GenerateJWT(userID, role, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestAuthMiddleware(t *testing.T) {
	utils.SetJWTSecret("middleware-test-secret")
	e := newAuthServer()

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"non numeric user", bearer(t, "alice", "USER"), http.StatusForbidden},
		{"valid", bearer(t, "42", "USER"), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := serve(t, e, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestAuthMiddleware_SetsUser(t *testing.T) {
	utils.SetJWTSecret("middleware-test-secret")
	e := newAuthServer()

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", bearer(t, "42", "USER"))
	rec := serve(t, e, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(42), body["user_id"])
	assert.Equal(t, "USER", body["role"])
}

func TestAdminOnly(t *testing.T) {
	utils.SetJWTSecret("middleware-test-secret")
	e := newAuthServer()

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", bearer(t, "1", "USER"))
	assert.Equal(t, http.StatusForbidden, serve(t, e, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", bearer(t, "1", "admin"))
	assert.Equal(t, http.StatusNoContent, serve(t, e, req).Code)
}

func TestErrorHandler(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	e.GET("/boom", func(c echo.Context) error {
		return errors.New("boom")
	})

	rec := serve(t, e, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body jsonres.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)

	rec = serve(t, e, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "INTERNAL_SERVER_ERROR", body.Error.Code)
	assert.Equal(t, "Internal Server Error", body.Error.Message)
}

func TestRequestTrace(t *testing.T) {
	e := echo.New()
	var seen string
	e.GET("/trace", func(c echo.Context) error {
		seen = recommendation.TraceIDFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	}, RequestTrace())

	req := httptest.NewRequest(http.MethodGet, "/trace", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-123")
	serve(t, e, req)
	assert.Equal(t, "req-123", seen)

	rec := serve(t, e, httptest.NewRequest(http.MethodGet, "/trace", nil))
	assert.NotEmpty(t, seen)
	assert.NotEqual(t, "req-123", seen)
	assert.Equal(t, seen, rec.Header().Get(echo.HeaderXRequestID))
}
