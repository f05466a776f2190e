package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"elango-backend/controllers"
	"elango-backend/middleware"
	"elango-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func testEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	// Auth and role gates run before any handler touches the database,
	// so a nil DB is fine for routing-level tests.
	return Setup(&controllers.Controller{PasetoSecretKey: testKey}, "test")
}

func TestUnknownEndpointReturnsJSON404(t *testing.T) {
	w := httptest.NewRecorder()
	testEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message": "Endpoint not found"}`, w.Body.String())
}

func TestAdminRoutesRequireToken(t *testing.T) {
	r := testEngine()
	adminRoutes := []struct {
		method, path string
	}{
		{http.MethodPost, "/api/admin/product"},
		{http.MethodGet, "/api/admin/products"},
		{http.MethodPost, "/api/admin/category"},
		{http.MethodGet, "/api/admin/orders"},
		{http.MethodPut, "/api/admin/order/1/status"},
		{http.MethodGet, "/api/admin/stats"},
		{http.MethodPut, "/api/config"},
		{http.MethodPut, "/api/config/site-name"},
	}

	for _, route := range adminRoutes {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(route.method, route.path, nil))
		assert.Equalf(t, http.StatusUnauthorized, w.Code, "%s %s without token", route.method, route.path)
	}
}

func TestAdminRoutesRejectUserRole(t *testing.T) {
	r := testEngine()
	token, err := middleware.IssueToken(testKey, "user-1", models.RoleUser)
	require.NoError(t, err)

	for _, path := range []string{"/api/admin/stats", "/api/admin/products", "/api/admin/orders"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equalf(t, http.StatusForbidden, w.Code, "GET %s with user token", path)
	}
}

func TestOrderRoutesRequireToken(t *testing.T) {
	r := testEngine()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/orders", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/orders/my-orders", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestResponsesCarryRequestID(t *testing.T) {
	w := httptest.NewRecorder()
	testEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}
