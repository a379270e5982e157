package router

import (
	"net/http/httptest"
	"testing"
	"time"

	"fintrack/config"
	"fintrack/database"
	"fintrack/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Mode: gin.TestMode},
		Auth: config.AuthConfig{
			Username:   "admin",
			Password:   "hunter2",
			Secret:     "test-secret",
			SessionTTL: time.Hour,
		},
	}
}

func newTestRouter() *gin.Engine {
	cfg := testConfig()
	middleware.InitAuth(cfg)
	return SetupRouter(cfg, nil, nil)
}

func TestRouter_Health(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	newTestRouter().ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRouter_NotFound(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/nope", nil)
	newTestRouter().ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Not found"}`, w.Body.String())
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("PATCH", "/api/auth/login", nil)
	newTestRouter().ServeHTTP(w, req)

	assert.Equal(t, 405, w.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("OPTIONS", "/api/income", nil)
	newTestRouter().ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET,POST,PUT,DELETE,OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
}

func TestRouter_DataRoutesGated(t *testing.T) {
	r := newTestRouter()

	// No credentials: the gate answers before anything else.
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/income", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, 401, w.Code)
	assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"))
}

func TestRouter_StoreUnconfigured(t *testing.T) {
	oldDB := database.DB
	database.DB = nil
	defer func() { database.DB = oldDB }()

	// Valid credentials but no store: 503 from the store guard.
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/income", nil)
	req.SetBasicAuth("admin", "hunter2")
	newTestRouter().ServeHTTP(w, req)

	assert.Equal(t, 503, w.Code)
}
