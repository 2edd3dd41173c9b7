package middleware

import (
	"time"

	"github.com/ankibridge/ankibridge-service/pkg/app"
	"github.com/ankibridge/ankibridge-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccessLogWithLogger logs one line per request after it completes.
func AccessLogWithLogger(lg *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		begin := time.Now()
		c.Next()

		lg.Info("access",
			zap.String(logger.FieldMethod, c.Request.Method),
			zap.String(logger.FieldPath, c.Request.URL.Path),
			zap.Int(logger.FieldStatus, c.Writer.Status()),
			zap.String(logger.FieldIP, app.GetRequestIP(c)),
			zap.Duration(logger.FieldDuration, time.Since(begin)),
			zap.String(logger.FieldTraceID, GetTraceIDFromGin(c)),
		)
	}
}
