package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

const (
	// rateLimitAuthPrefix is the Redis key prefix for auth endpoint limits.
	rateLimitAuthPrefix = "ratelimit:auth:"
	// rateLimitWindow is the fixed window length.
	rateLimitWindow = time.Minute
)

// RateLimitResult contains the result of a rate limit check.
type RateLimitResult struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

// CheckAuthRateLimit counts login/register attempts per client IP in a
// fixed one-minute window. The IP is hashed so raw addresses are never
// stored in Redis. Redis errors fail open: auth availability beats
// brute force protection.
func (c *Cache) CheckAuthRateLimit(ctx context.Context, ip string, limitPerMinute int) (*RateLimitResult, error) {
	key := rateLimitAuthPrefix + hashIP(ip)

	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, rateLimitWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		return &RateLimitResult{Allowed: true, Remaining: int64(limitPerMinute)}, nil
	}

	count := incr.Val()
	if count > int64(limitPerMinute) {
		ttl, err := c.client.TTL(ctx, key).Result()
		if err != nil || ttl < 0 {
			ttl = rateLimitWindow
		}
		return &RateLimitResult{Allowed: false, Remaining: 0, RetryAfter: ttl}, nil
	}

	return &RateLimitResult{
		Allowed:   true,
		Remaining: int64(limitPerMinute) - count,
	}, nil
}

// hashIP creates a truncated SHA256 hash of an IP address.
// This provides privacy while maintaining uniqueness.
func hashIP(ip string) string {
	hash := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(hash[:8]) // 16 hex chars
}
