package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/car-collection/pkg/response"
)

// ipFromCtx returns the IP resolved by RealIP, falling back to gin's view and then "unknown".
func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

func routeOf(c *gin.Context) string {
	if fp := c.FullPath(); fp != "" {
		return fp
	}
	return c.Request.URL.Path
}

// KeyFunc builds the counter key for a request.
type KeyFunc func(c *gin.Context) string

// KeyByIP counts per client IP.
func KeyByIP() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:ip:" + ipFromCtx(c)
	}
}

// KeyByIPAndPath counts per client IP, method and route.
func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:path:" + c.Request.Method + ":" + routeOf(c) + ":ip:" + ipFromCtx(c)
	}
}

// Returns {count, pttl}. The expiry is set on the first hit of a window.
var hitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("PTTL", KEYS[1])}
`)

// RateLimitOptions configures RateLimit. A zero Limit or Window disables it.
type RateLimitOptions struct {
	Limit  int
	Window time.Duration
	Key    KeyFunc

	// Skip lets a request through uncounted.
	Skip func(c *gin.Context) bool

	Logger *logrus.Logger
}

// RateLimit allows opts.Limit requests per key and window, counted in Redis.
// A nil client disables it and Redis errors let the request through.
// Responses carry X-RateLimit-Limit/Remaining/Reset; rejections add Retry-After.
func RateLimit(rdb *redis.Client, opts RateLimitOptions) gin.HandlerFunc {
	if rdb == nil || opts.Limit <= 0 || opts.Window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if opts.Key == nil {
		opts.Key = KeyByIP()
	}

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || (opts.Skip != nil && opts.Skip(c)) {
			c.Next()
			return
		}

		key := opts.Key(c)
		count, ttl, err := hit(c, rdb, key, opts.Window)
		if err != nil {
			if opts.Logger != nil {
				opts.Logger.WithError(err).WithField("key", key).Warn("rate limiter unavailable")
			}
			c.Next()
			return
		}

		reset := int((ttl + time.Second - 1) / time.Second)
		remaining := opts.Limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(opts.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.Itoa(reset))

		if count > opts.Limit {
			// https://datatracker.ietf.org/doc/html/rfc6585#section-4
			c.Header("Retry-After", strconv.Itoa(reset))
			response.Error(c, http.StatusTooManyRequests, "rate limit exceeded", nil)
			return
		}
		c.Next()
	}
}

func hit(c *gin.Context, rdb *redis.Client, key string, window time.Duration) (int, time.Duration, error) {
	vals, err := hitScript.Run(c.Request.Context(), rdb, []string{key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, 0, err
	}
	if len(vals) != 2 {
		return 0, 0, fmt.Errorf("rate limit script: unexpected reply %v", vals)
	}
	ttl := time.Duration(vals[1]) * time.Millisecond
	if ttl < 0 {
		ttl = 0
	}
	return int(vals[0]), ttl, nil
}
