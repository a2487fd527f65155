package echo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vividmart/storefront/cache"
	"github.com/vividmart/storefront/domain"
	"github.com/vividmart/storefront/middleware"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type stubVerifier struct {
	principal domain.Principal
	err       error
}

func (s stubVerifier) VerifyAccessToken(string) (domain.Principal, error) {
	return s.principal, s.err
}

func newTestAPI(t *testing.T, db Pinger, verifier middleware.TokenVerifier) *StorefrontAPI {
	t.Helper()
	store := cache.NewMemoryStore()
	t.Cleanup(func() { store.Close() })
	return NewStorefrontAPI(nil, nil, nil, nil, nil, middleware.NewAuthGateway(verifier), store, db)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealthHandler(t *testing.T) {
	api := newTestAPI(t, stubPinger{}, stubVerifier{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, api.HealthHandler(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "ok", body["status"])
}

func TestHealthHandlerDegraded(t *testing.T) {
	api := newTestAPI(t, stubPinger{err: errors.New("connection refused")}, stubVerifier{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, api.HealthHandler(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "degraded", body["status"])
	services := body["services"].(map[string]any)
	assert.Contains(t, services["mongodb"], "connection refused")
	assert.Equal(t, "ok", services["redis"])
}

// Guest cart access needs the X-Session-Id header.
func TestCartHandlersRequireSession(t *testing.T) {
	api := newTestAPI(t, stubPinger{}, stubVerifier{err: errors.New("no token")})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, api.GetCartHandler(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Session ID required", body["message"])
}

func TestRefreshHandlerMissingToken(t *testing.T) {
	api := newTestAPI(t, stubPinger{}, stubVerifier{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, api.RefreshHandler(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Refresh token is required", decodeBody(t, rec)["message"])
}

func TestRegisterHandlerValidation(t *testing.T) {
	api := newTestAPI(t, stubPinger{}, stubVerifier{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"email":"not-an-email","password":"short"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, api.RegisterHandler(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "Validation failed")
}
