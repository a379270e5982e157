package api

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fintrack/config"
	"fintrack/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func authTestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		Auth: config.AuthConfig{
			Username:   "admin",
			Password:   "hunter2",
			Secret:     "test-secret",
			SessionTTL: time.Hour,
		},
	}
}

func authRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	middleware.InitAuth(cfg)
	r := gin.New()
	h := NewAuthHandler(cfg)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
	return r
}

func TestAuthHandler_Login(t *testing.T) {
	r := authRouter(authTestConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/login", bytes.NewBufferString(`{"password":"hunter2"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	resp := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, true, resp["success"])

	cookie := w.Header().Get("Set-Cookie")
	assert.True(t, strings.HasPrefix(cookie, middleware.SessionCookieName+"="))
	assert.Contains(t, cookie, "HttpOnly")
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	r := authRouter(authTestConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/login", bytes.NewBufferString(`{"password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, 401, w.Code)
	resp := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, false, resp["success"])
	assert.Empty(t, w.Header().Get("Set-Cookie"))
}

func TestAuthHandler_Login_MissingPassword(t *testing.T) {
	r := authRouter(authTestConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/login", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestAuthHandler_Logout(t *testing.T) {
	r := authRouter(authTestConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/logout", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	cookie := w.Header().Get("Set-Cookie")
	assert.True(t, strings.HasPrefix(cookie, middleware.SessionCookieName+"="))
	assert.Contains(t, cookie, "Max-Age=0")
}
