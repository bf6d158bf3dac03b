package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/SoufianeJm/mooja/internal/constants"
)

// RequestContext assigns every request a correlation id, echoes it in the
// X-Request-Id header, and logs method, path, status, and latency.
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		start := time.Now()

		c.Set(constants.ContextKeyRequestID, requestID)
		c.Writer.Header().Set("X-Request-Id", requestID)

		c.Next()

		log.Printf("[%s] %s %s - %d - %s",
			requestID,
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start),
		)
	}
}
