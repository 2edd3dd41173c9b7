// Package limiter provides token bucket rate limiting keyed by request path.
package limiter

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// Face is the limiter interface consumed by the rate limit middleware.
type Face interface {
	Key(c *gin.Context) string
	GetBucket(key string) (*ratelimit.Bucket, bool)
	AddBuckets(rules ...BucketRule) Face
}

// BucketRule declares one token bucket.
type BucketRule struct {
	// Key the request path prefix this bucket guards
	Key string
	// FillInterval time between token refills
	FillInterval time.Duration
	// Capacity bucket capacity
	Capacity int64
	// Quantum tokens added per refill
	Quantum int64
}

// MethodLimiter buckets keyed by URI path.
type MethodLimiter struct {
	limiterBuckets map[string]*ratelimit.Bucket
}

func NewMethodLimiter() Face {
	return &MethodLimiter{
		limiterBuckets: map[string]*ratelimit.Bucket{},
	}
}

func (l *MethodLimiter) Key(c *gin.Context) string {
	return c.Request.URL.Path
}

func (l *MethodLimiter) GetBucket(key string) (*ratelimit.Bucket, bool) {
	bucket, ok := l.limiterBuckets[key]
	return bucket, ok
}

func (l *MethodLimiter) AddBuckets(rules ...BucketRule) Face {
	for _, rule := range rules {
		if _, ok := l.limiterBuckets[rule.Key]; !ok {
			l.limiterBuckets[rule.Key] = ratelimit.NewBucketWithQuantum(rule.FillInterval, rule.Capacity, rule.Quantum)
		}
	}
	return l
}
