// Package routers assembles the gin engines for the public connect
// endpoint and the private operations endpoint.
package routers

import (
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/ankibridge/ankibridge-service/internal/middleware"
	"github.com/ankibridge/ankibridge-service/internal/routers/connect_router"
	"github.com/ankibridge/ankibridge-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Config router assembly settings.
type Config struct {
	RunMode        string
	AppName        string
	AppVersion     string
	ContextTimeout time.Duration
	CORSOrigins    []string
	// RateLimitPerSecond 0 disables rate limiting
	RateLimitPerSecond int64
}

// NewPublicRouter builds the engine serving the single connect endpoint.
func NewPublicRouter(cfg Config, handler *connect_router.Handler, lg *zap.Logger) *gin.Engine {
	gin.SetMode(cfg.RunMode)
	r := gin.New()

	r.Use(middleware.AppInfo(cfg.AppName, cfg.AppVersion))
	r.Use(middleware.Tracer())
	r.Use(middleware.RecoveryWithLogger(lg))
	r.Use(middleware.AccessLogWithLogger(lg))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.Translations())
	if cfg.ContextTimeout > 0 {
		r.Use(middleware.ContextTimeout(cfg.ContextTimeout))
	}
	if cfg.RateLimitPerSecond > 0 {
		buckets := limiter.NewMethodLimiter().AddBuckets(limiter.BucketRule{
			Key:          "/",
			FillInterval: time.Second,
			Capacity:     cfg.RateLimitPerSecond,
			Quantum:      cfg.RateLimitPerSecond,
		})
		r.Use(middleware.RateLimiter(buckets))
	}

	r.POST("/", handler.Dispatch)
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "%s is running", cfg.AppName)
	})

	return r
}

// StatusFunc supplies the payload of the private /status endpoint.
type StatusFunc func() (interface{}, error)

// NewPrivateRouter builds the loopback-only operations engine with
// metrics, pprof and a status snapshot.
func NewPrivateRouter(statusFn StatusFunc, lg *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RecoveryWithLogger(lg))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/status", func(c *gin.Context) {
		if statusFn == nil {
			c.JSON(http.StatusOK, gin.H{})
			return
		}
		payload, err := statusFn()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, payload)
	})

	debug := r.Group("/debug/pprof")
	{
		debug.GET("/", gin.WrapF(pprof.Index))
		debug.GET("/cmdline", gin.WrapF(pprof.Cmdline))
		debug.GET("/profile", gin.WrapF(pprof.Profile))
		debug.GET("/symbol", gin.WrapF(pprof.Symbol))
		debug.GET("/trace", gin.WrapF(pprof.Trace))
		debug.GET("/allocs", gin.WrapH(pprof.Handler("allocs")))
		debug.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
		debug.GET("/heap", gin.WrapH(pprof.Handler("heap")))
		debug.GET("/mutex", gin.WrapH(pprof.Handler("mutex")))
		debug.GET("/block", gin.WrapH(pprof.Handler("block")))
	}

	return r
}
