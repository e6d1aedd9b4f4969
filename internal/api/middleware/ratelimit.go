package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	apperrors "github.com/gocomet/ride-records/pkg/errors"
	"github.com/gocomet/ride-records/pkg/logger"
)

// Counter counts hits per client in fixed windows
type Counter interface {
	Hit(ctx context.Context, id string, window time.Duration) (int64, time.Duration, error)
}

// RateLimitConfig configures RateLimit
type RateLimitConfig struct {
	Counter Counter
	Limit   int
	Window  time.Duration
	Logger  *logger.Logger
}

// RateLimit rejects clients over Limit hits per Window with 429.
// When the counter is unreachable requests are let through.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, reset, err := cfg.Counter.Hit(c.Request.Context(), c.ClientIP(), cfg.Window)
		if err != nil {
			cfg.Logger.Warn("Rate limiter unavailable, allowing request",
				logger.Err(err),
				logger.String("request_id", GetRequestID(c)),
			)
			c.Next()
			return
		}

		remaining := int64(cfg.Limit) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(reset).Unix(), 10))

		if count > int64(cfg.Limit) {
			c.Header("Retry-After", strconv.Itoa(int(reset.Round(time.Second).Seconds())))
			c.AbortWithStatusJSON(apperrors.ErrRateLimitExceeded.Status, apperrors.ErrRateLimitExceeded)
			return
		}

		c.Next()
	}
}
