package meteo

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// cacheEntry pairs a memoized payload with its expiry time.
type cacheEntry struct {
	payload *Payload
	expiry  time.Time
}

// CachingSource memoizes responses of an underlying Source keyed by the call
// arguments, with a fixed time-to-live. It replaces ambient per-process
// caching with an explicit, injectable component.
type CachingSource struct {
	next Source
	ttl  time.Duration

	mu      sync.Mutex
	entries map[string]cacheEntry
}

// NewCachingSource wraps next with a TTL cache. A non-positive ttl disables
// caching entirely and the wrapper delegates straight through.
func NewCachingSource(next Source, ttl time.Duration) *CachingSource {
	return &CachingSource{
		next:    next,
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

func (c *CachingSource) FetchArchive(ctx context.Context, lat, lon float64, start, end, tz string) (*Payload, error) {
	key := fmt.Sprintf("archive|%.6f|%.6f|%s|%s|%s", lat, lon, start, end, tz)
	return c.fetch(key, func() (*Payload, error) {
		return c.next.FetchArchive(ctx, lat, lon, start, end, tz)
	})
}

func (c *CachingSource) FetchForecast(ctx context.Context, lat, lon float64, days int, tz string) (*Payload, error) {
	key := fmt.Sprintf("forecast|%.6f|%.6f|%d|%s", lat, lon, days, tz)
	return c.fetch(key, func() (*Payload, error) {
		return c.next.FetchForecast(ctx, lat, lon, days, tz)
	})
}

func (c *CachingSource) fetch(key string, call func() (*Payload, error)) (*Payload, error) {
	if c.ttl <= 0 {
		return call()
	}

	now := time.Now()

	c.mu.Lock()
	if e, ok := c.entries[key]; ok && now.Before(e.expiry) {
		c.mu.Unlock()
		return e.payload, nil
	}
	c.mu.Unlock()

	payload, err := call()
	if err != nil {
		// Failures are not memoized; the next action retries the source.
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{payload: payload, expiry: now.Add(c.ttl)}
	// Drop whatever has expired while we are here.
	for k, e := range c.entries {
		if now.After(e.expiry) {
			delete(c.entries, k)
		}
	}
	c.mu.Unlock()

	return payload, nil
}
