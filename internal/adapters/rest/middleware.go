// internal/adapters/rest/middleware.go
package rest

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mahabubulhasibshawon/rider-tracker/internal/application"
	"github.com/mahabubulhasibshawon/rider-tracker/internal/logger"
	"github.com/mahabubulhasibshawon/rider-tracker/pkg/auth"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	claimsKey       = "claims"
)

// RequestIDMiddleware ensures every request has a correlation id.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(requestIDKey, reqID)
		c.Writer.Header().Set(requestIDHeader, reqID)
		c.Next()
	}
}

func LoggerMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Infof("[request_id=%s] %s %s %d %s", c.GetString(requestIDKey), c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}

func AuthMiddleware(authService *application.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			claims, err := authService.Authorize(c.Request.Context(), token)
			if err == nil {
				c.Set(claimsKey, claims)
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, Failure(http.StatusUnauthorized, "Unauthorized"))
	}
}

func claimsOf(c *gin.Context) *auth.Claims {
	return c.MustGet(claimsKey).(*auth.Claims)
}
