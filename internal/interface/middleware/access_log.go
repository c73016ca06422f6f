package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-auth-api/pkg/response"
)

// AccessLog writes one structured line per request. Query strings are left
// out since reset and verification links carry codes.
func AccessLog(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ip := c.GetString(CtxRealIPKey)
		if ip == "" {
			ip = c.ClientIP()
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		entry := logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"route":      route,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         ip,
			"request_id": c.GetString(response.RequestIDKey),
		})
		switch status := c.Writer.Status(); {
		case status >= 500:
			entry.Error("request")
		case status >= 400:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}
