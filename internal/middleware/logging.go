package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"fintrack/internal/logger"
	"fintrack/internal/uuid"
)

// RequestIDKey is the Gin context key the request id is stored under.
const RequestIDKey = "request_id"

// RequestLogging tags every request with an id, echoes it in X-Request-ID,
// and writes one structured line per request on completion.
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := uuid.New()
		c.Set(RequestIDKey, requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()

		fields := []interface{}{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if n := len(c.Errors); n > 0 {
			fields = append(fields, "errors", n)
		}
		logger.Get().Infow("request", fields...)
	}
}
