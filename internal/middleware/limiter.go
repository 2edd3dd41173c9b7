package middleware

import (
	"github.com/ankibridge/ankibridge-service/pkg/app"
	"github.com/ankibridge/ankibridge-service/pkg/code"
	"github.com/ankibridge/ankibridge-service/pkg/limiter"

	"github.com/gin-gonic/gin"
)

// RateLimiter rejects requests once the path's token bucket runs dry.
// Paths without a bucket pass through untouched.
func RateLimiter(l limiter.Face) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := l.Key(c)
		if bucket, ok := l.GetBucket(key); ok {
			if bucket.TakeAvailable(1) == 0 {
				app.NewResponse(c).ToError(code.ErrorTooManyRequests.Msg())
				c.Abort()
				return
			}
		}
		c.Next()
	}
}
