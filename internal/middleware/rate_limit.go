package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/ptmnhat/grafana-proxy/internal/config"
	"github.com/ptmnhat/grafana-proxy/internal/utils"
	"github.com/ptmnhat/grafana-proxy/pkg/logger"
)

type RateLimitMiddleware struct {
	redis  *redis.Client
	config *config.Config
	logger *logger.Logger
}

func NewRateLimitMiddleware(redis *redis.Client, config *config.Config, logger *logger.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		redis:  redis,
		config: config,
		logger: logger,
	}
}

// TenantRateLimit limits proxy traffic per matched tenant. It must run after
// the tenant access middleware, which is the only place the tenant identity
// comes from.
func (m *RateLimitMiddleware) TenantRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID, err := utils.GetTenantIDFromContext(c.Request.Context())
		if err != nil {
			if value, exists := c.Get(string(utils.TenantIDKey)); exists {
				if id, ok := value.(uint); ok {
					tenantID = id
					err = nil
				}
			}
		}
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			c.Abort()
			return
		}

		limit := m.config.DefaultRateLimit
		key := fmt.Sprintf("rate_limit:tenant:%d", tenantID)
		m.enforce(c, key, limit)
	}
}

// GlobalRateLimit implements global rate limiting based on IP
func (m *RateLimitMiddleware) GlobalRateLimit(limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		key := fmt.Sprintf("rate_limit:global:%s", clientIP)
		m.enforce(c, key, limit)
	}
}

// enforce applies a fixed one-minute window counter in redis. Redis being
// unavailable fails open: proxying traffic matters more than rate precision.
func (m *RateLimitMiddleware) enforce(c *gin.Context, key string, limit int) {
	current, err := m.redis.Get(c.Request.Context(), key).Int()
	if err != nil && err != redis.Nil {
		m.logger.Error("Redis error in rate limiting", err)
		c.Next()
		return
	}

	reset := strconv.FormatInt(time.Now().Add(time.Minute).Unix(), 10)

	if current >= limit {
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", "0")
		c.Header("X-RateLimit-Reset", reset)

		c.JSON(http.StatusTooManyRequests, gin.H{
			"error": "Rate limit exceeded",
			"limit": limit,
		})
		c.Abort()
		return
	}

	pipe := m.redis.Pipeline()
	pipe.Incr(c.Request.Context(), key)
	pipe.Expire(c.Request.Context(), key, time.Minute)
	if _, err := pipe.Exec(c.Request.Context()); err != nil {
		m.logger.Error("Redis pipeline error in rate limiting", err)
	}

	remaining := limit - (current + 1)
	if remaining < 0 {
		remaining = 0
	}

	c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
	c.Header("X-RateLimit-Reset", reset)

	c.Next()
}
