package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	mem "diplomakids/pkg/memcache"
	"diplomakids/pkg/utils"
)

// RateLimit throttles by authenticated family when present, otherwise by client IP.
func RateLimit(store mem.LimiterStore, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetString(FamilyIDKey)
		if key == "" {
			key = c.ClientIP()
		}

		if !store.Allow(key) {
			log.Warn("rate limit exceeded",
				zap.String("key", key),
				zap.String("path", c.Request.URL.Path),
				zap.String("trace_id", c.GetString("trace_id")))
			utils.RespondError(c, http.StatusTooManyRequests, "Too many requests, slow down")
			c.Abort()
			return
		}
		c.Next()
	}
}
