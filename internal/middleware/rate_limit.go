package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// PremiumChecker reports whether a user's subscription bypasses quotas.
type PremiumChecker interface {
	IsPremium(ctx context.Context, userID uuid.UUID) bool
}

// QuotaConfig defines one usage quota for free-plan users.
type QuotaConfig struct {
	// Window is the fixed window the quota applies to
	Window time.Duration
	// Limit is the maximum number of operations allowed in the window
	Limit int
	// Key prefix for Redis keys
	KeyPrefix string
}

// Quota enforces a fixed-window usage limit backed by Redis. Premium
// subscribers bypass it entirely; Redis outages fail open so a cache
// problem never blocks the app.
type Quota struct {
	redis   *redis.Client
	premium PremiumChecker
	config  QuotaConfig
}

func NewQuota(redisClient *redis.Client, premium PremiumChecker, config QuotaConfig) *Quota {
	return &Quota{
		redis:   redisClient,
		premium: premium,
		config:  config,
	}
}

// NewScanQuota limits free-plan users to 10 fridge scans per 30 days.
func NewScanQuota(redisClient *redis.Client, premium PremiumChecker) *Quota {
	return NewQuota(redisClient, premium, QuotaConfig{
		Window:    30 * 24 * time.Hour,
		Limit:     10,
		KeyPrefix: "quota:scan",
	})
}

// NewGenerationQuota limits free-plan users to 5 recipe generations per hour.
func NewGenerationQuota(redisClient *redis.Client, premium PremiumChecker) *Quota {
	return NewQuota(redisClient, premium, QuotaConfig{
		Window:    time.Hour,
		Limit:     5,
		KeyPrefix: "quota:generation",
	})
}

// Middleware enforces the quota on the wrapped route. The counter is
// consumed on entry, so a failed downstream request still counts; this
// matches billing the AI call rather than the result.
func (q *Quota) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			c.Abort()
			return
		}

		uid, ok := userID.(uuid.UUID)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			c.Abort()
			return
		}

		if q.premium != nil && q.premium.IsPremium(c.Request.Context(), uid) {
			c.Next()
			return
		}

		allowed, remaining, resetTime, err := q.Consume(c.Request.Context(), uid)
		if err != nil {
			// Fail open; a Redis outage must not take scanning down.
			c.Header("X-RateLimit-Error", "quota check failed")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(q.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "quota exceeded",
				"message":     fmt.Sprintf("Free plan allows %d of these per %v. Upgrade to premium for unlimited use.", q.config.Limit, q.config.Window),
				"remaining":   remaining,
				"reset":       resetTime.Unix(),
				"retry_after": int(time.Until(resetTime).Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// Consume counts one operation against the user's window.
// Returns: allowed, remaining operations, reset time, error.
func (q *Quota) Consume(ctx context.Context, userID uuid.UUID) (bool, int, time.Time, error) {
	if q.redis == nil {
		return false, 0, time.Time{}, redis.ErrClosed
	}

	now := time.Now()
	windowStart := now.Truncate(q.config.Window)
	key := fmt.Sprintf("%s:%s:%d", q.config.KeyPrefix, userID, windowStart.Unix())

	pipe := q.redis.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, q.config.Window)

	_, err := pipe.Exec(ctx)
	if err != nil {
		return false, 0, time.Time{}, err
	}

	count := int(incrCmd.Val())
	remaining := q.config.Limit - count
	if remaining < 0 {
		remaining = 0
	}

	resetTime := windowStart.Add(q.config.Window)
	allowed := count <= q.config.Limit

	return allowed, remaining, resetTime, nil
}

// Used returns the operations consumed in the current window without
// incrementing the counter.
func (q *Quota) Used(ctx context.Context, userID uuid.UUID) (int, time.Time, error) {
	if q.redis == nil {
		return 0, time.Time{}, redis.ErrClosed
	}

	now := time.Now()
	windowStart := now.Truncate(q.config.Window)
	key := fmt.Sprintf("%s:%s:%d", q.config.KeyPrefix, userID, windowStart.Unix())

	count, err := q.redis.Get(ctx, key).Int()
	if err == redis.Nil {
		return 0, windowStart.Add(q.config.Window), nil
	}
	if err != nil {
		return 0, time.Time{}, err
	}

	return count, windowStart.Add(q.config.Window), nil
}

// Limit exposes the configured maximum for usage reporting.
func (q *Quota) Limit() int {
	return q.config.Limit
}
