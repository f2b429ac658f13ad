package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	merchantKeyPrefix = "merchant:"

	// MerchantCategoryTTL is the TTL for cached merchant classifications.
	// Merchants rarely change category, so a long TTL is safe.
	MerchantCategoryTTL = 7 * 24 * time.Hour
)

// ErrCacheMiss indicates the key was not present.
var ErrCacheMiss = errors.New("cache miss")

// GetMerchantCategory returns the cached classifier category name for a
// merchant, or ErrCacheMiss.
func (c *Cache) GetMerchantCategory(ctx context.Context, merchant string) (string, error) {
	name, err := c.client.Get(ctx, merchantKey(merchant)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrCacheMiss
		}
		return "", fmt.Errorf("redis get failed: %w", err)
	}
	return name, nil
}

// SetMerchantCategory caches the classifier category name for a merchant.
func (c *Cache) SetMerchantCategory(ctx context.Context, merchant, category string) error {
	if err := c.client.Set(ctx, merchantKey(merchant), category, MerchantCategoryTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache merchant category: %w", err)
	}
	return nil
}

// merchantKey normalizes a merchant name into a cache key so
// "Acme Cafe" and "acme cafe" share one entry.
func merchantKey(merchant string) string {
	return merchantKeyPrefix + strings.ToLower(strings.TrimSpace(merchant))
}
