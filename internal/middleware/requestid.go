package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKey is where the request id lives in the gin context.
const ContextKey = "request_id"

const headerName = "X-Request-ID"

// RequestID assigns each request an id, honoring an inbound
// X-Request-ID header, and echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(headerName)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ContextKey, requestID)
		c.Writer.Header().Set(headerName, requestID)
		c.Next()
	}
}
