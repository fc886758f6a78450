package middleware

import (
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/iamasit07/photoshare/internal/logger"
	"github.com/iamasit07/photoshare/pkg/useragent"
)

// RequestLogger logs one line per request, tagged with the request id
// assigned by requestid.New.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.WithRequestID(log, requestid.Get(c)).Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client", useragent.Describe(c.Request)),
		)
	}
}
