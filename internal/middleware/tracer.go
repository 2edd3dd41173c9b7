// Package middleware holds the gin middleware chain.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TraceIDHeaderKey response header carrying the request trace ID.
const TraceIDHeaderKey = "X-Trace-Id"

// TraceIDContextKey gin context key holding the request trace ID.
const TraceIDContextKey = "trace_id"

// TracerConfig tracer middleware settings.
type TracerConfig struct {
	HeaderKey string
}

// Tracer assigns every request a trace ID, honoring one supplied by the
// client.
func Tracer() gin.HandlerFunc {
	return TracerWithConfig(TracerConfig{HeaderKey: TraceIDHeaderKey})
}

// TracerWithConfig is Tracer with a custom header key.
func TracerWithConfig(cfg TracerConfig) gin.HandlerFunc {
	if cfg.HeaderKey == "" {
		cfg.HeaderKey = TraceIDHeaderKey
	}
	return func(c *gin.Context) {
		traceID := c.GetHeader(cfg.HeaderKey)
		if traceID == "" {
			traceID = uuid.NewString()
		}
		c.Set(TraceIDContextKey, traceID)
		c.Writer.Header().Set(cfg.HeaderKey, traceID)
		c.Next()
	}
}

// GetTraceIDFromGin returns the request trace ID, or "" before Tracer ran.
func GetTraceIDFromGin(c *gin.Context) string {
	if v, ok := c.Get(TraceIDContextKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
