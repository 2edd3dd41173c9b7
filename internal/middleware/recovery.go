package middleware

import (
	"runtime/debug"

	"github.com/ankibridge/ankibridge-service/pkg/app"
	"github.com/ankibridge/ankibridge-service/pkg/code"
	"github.com/ankibridge/ankibridge-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryWithLogger turns handler panics into an envelope error reply
// instead of a dropped connection.
func RecoveryWithLogger(lg *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				lg.Error("panic recovered",
					zap.Any(logger.FieldError, err),
					zap.String(logger.FieldPath, c.Request.URL.Path),
					zap.String(logger.FieldTraceID, GetTraceIDFromGin(c)),
					zap.ByteString("stack", debug.Stack()),
				)
				app.NewResponse(c).ToError(code.ErrorServerInternal.Msg())
				c.Abort()
			}
		}()
		c.Next()
	}
}
