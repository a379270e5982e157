package middleware

import (
	"net/http"

	"fintrack/database"

	"github.com/gin-gonic/gin"
)

// RequireStore rejects data routes with 503 before any store access when
// the database was never configured.
func RequireStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		if database.GetDB() == nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"error":   "Database not configured",
			})
			return
		}
		c.Next()
	}
}
