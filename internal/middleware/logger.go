package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the id assigned to each request.
const RequestIDHeader = "X-Request-ID"

// StructuredLogger assigns every request an id and logs its outcome
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.New().String()

		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		attrs := []slog.Attr{
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.String("ip", c.ClientIP()),
			slog.String("user_agent", c.Request.UserAgent()),
		}

		ctx := c.Request.Context()
		switch {
		case len(c.Errors) > 0:
			attrs = append(attrs, slog.String("error", c.Errors.String()))
			logger.LogAttrs(ctx, slog.LevelError, "request error", attrs...)
		case status >= 500:
			logger.LogAttrs(ctx, slog.LevelError, "server error", attrs...)
		case status >= 400:
			logger.LogAttrs(ctx, slog.LevelWarn, "client error", attrs...)
		default:
			logger.LogAttrs(ctx, slog.LevelInfo, "request completed", attrs...)
		}
	}
}
