package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"fintrack/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRequireStore_Unconfigured(t *testing.T) {
	gin.SetMode(gin.TestMode)

	oldDB := database.DB
	database.DB = nil
	defer func() { database.DB = oldDB }()

	r := gin.New()
	r.GET("/data", RequireStore(), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/data", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, 503, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Database not configured"}`, w.Body.String())
}

func TestLoginRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/login", LoginRateLimit(3, time.Minute), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/login", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, 200, w.Code)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/login", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, 429, w.Code)
}

func TestLoginRateLimit_WindowSlides(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/login", LoginRateLimit(1, 50*time.Millisecond), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/login", nil))
	assert.Equal(t, 200, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/login", nil))
	assert.Equal(t, 429, w.Code)

	time.Sleep(60 * time.Millisecond)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/login", nil))
	assert.Equal(t, 200, w.Code)
}
