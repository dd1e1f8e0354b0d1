package memcache_fx

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"diplomakids/internal/config"
	mem "diplomakids/pkg/memcache"
)

const limiterIdleTTL = 10 * time.Minute

var Module = fx.Options(
	fx.Provide(provideLimiterStore),
	fx.Invoke(scheduleSweep),
)

func provideLimiterStore(cfg *config.Config) mem.LimiterStore {
	return mem.NewLimiterStore(cfg.RateLimitRPS, cfg.RateLimitBurst, limiterIdleTTL)
}

func scheduleSweep(c *cron.Cron, store mem.LimiterStore, log *zap.Logger) error {
	_, err := c.AddFunc("@every 5m", func() {
		if dropped := store.Sweep(); dropped > 0 {
			log.Debug("swept idle rate limiters", zap.Int("dropped", dropped), zap.Int("remaining", store.Len()))
		}
	})
	return err
}
