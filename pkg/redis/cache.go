package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Cache provides typed caching with an explicit TTL contract. It is
// injected into components that fetch series/snapshot data so that no
// scoring code ever talks to a hidden process-wide cache.
type Cache struct {
	client *Client
	prefix string
}

// NewCache creates a new cache helper.
func NewCache(client *Client, prefix string) *Cache {
	return &Cache{
		client: client,
		prefix: prefix,
	}
}

// Get retrieves a cached value. A missing key is not an error.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !c.client.Enabled() {
		return false, nil
	}

	fullKey := fmt.Sprintf("%s:cache:%s", c.prefix, key)
	data, err := c.client.Redis().Get(ctx, fullKey).Bytes()
	if err != nil {
		return false, nil
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache unmarshal failed: %w", err)
	}

	return true, nil
}

// Set stores a value in cache with TTL.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !c.client.Enabled() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal failed: %w", err)
	}

	fullKey := fmt.Sprintf("%s:cache:%s", c.prefix, key)
	return c.client.Redis().Set(ctx, fullKey, data, ttl).Err()
}

// Delete removes a cached value.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if !c.client.Enabled() {
		return nil
	}

	fullKey := fmt.Sprintf("%s:cache:%s", c.prefix, key)
	return c.client.Redis().Del(ctx, fullKey).Err()
}

// Predefined TTLs per data cadence.
const (
	TTLIntraday = 15 * time.Minute // intraday price series
	TTLDaily    = 4 * time.Hour    // daily macro series
	TTLSnapshot = 1 * time.Hour    // factor snapshots
	TTLCalendar = 30 * time.Minute // upcoming events
)

// Common cache key generators.
func SeriesKey(symbol string) string {
	return fmt.Sprintf("series:%s", symbol)
}

func FactorSnapshotKey(symbol string) string {
	return fmt.Sprintf("factors:%s", symbol)
}

func CorrelationKey(symbol, benchmark, window string) string {
	return fmt.Sprintf("corr:%s:%s:%s", symbol, benchmark, window)
}
