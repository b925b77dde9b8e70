package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries the per-request id in both directions.
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

// GinLogger returns a middleware for logging HTTP requests
func GinLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		// Process request
		c.Next()

		Logger.Info("HTTP Request",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("ip", c.ClientIP()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(startTime)),
			zap.Int("body_size", c.Writer.Size()),
		)
	}
}

// RequestID returns the id GinLogger assigned to the request, if any.
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// WithRequest returns the package logger annotated with the request id.
func WithRequest(c *gin.Context) *zap.Logger {
	if id := RequestID(c); id != "" {
		return Logger.With(zap.String("request_id", id))
	}
	return Logger
}
