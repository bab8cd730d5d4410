package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"renonx-go/internal/cms"
)

// userKey is the gin context key RequireSession stores the session user under.
const userKey = "user"

// RequestLogging logs method, path, status and duration of every request.
func RequestLogging(logger cms.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("api_request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

// RequireSession rejects requests with 401 unless an admin session exists.
func RequireSession(store *cms.ContentStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := store.GetUser()
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}
