package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/threadly/server/internal/shared/requestctx"
)

// RequestIDHeader is the header key for request ID.
const RequestIDHeader = "X-Request-ID"

// RequestID returns a middleware that assigns each request an id, echoes it
// on the response, and threads it through the request context for the
// logging path to pick up.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Header(RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(requestctx.WithRequestID(c.Request.Context(), requestID))

		c.Next()
	}
}
