package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spades-ems/portal/internal/persistence"
	"github.com/spades-ems/portal/pkg/util"
)

// RateLimit enforces a fixed window per client IP, backed by Redis so
// the limit holds across instances. Redis being down never blocks the
// request.
func RateLimit(store *persistence.Redis, logger *zap.Logger, prefix string, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if store == nil || store.Client == nil {
			return c.Next()
		}
		key := fmt.Sprintf("ratelimit:%s:%s", prefix, c.IP())

		count, err := store.Client.Incr(c.Context(), key).Result()
		if err != nil {
			logger.Warn("rate limit check failed", zap.Error(err))
			return c.Next()
		}
		if count == 1 {
			if err := store.Client.Expire(c.Context(), key, window).Err(); err != nil {
				logger.Warn("rate limit expire failed", zap.Error(err))
			}
		}
		if count > int64(limit) {
			return util.NewDomainError("RATE_LIMITED", "too many requests", fiber.StatusTooManyRequests, nil)
		}
		return c.Next()
	}
}
