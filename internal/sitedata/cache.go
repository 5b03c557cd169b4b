package sitedata

import (
	"context"
	"fmt"
	"sync"
	"time"

	"voidbot/internal/records"
)

// DefaultTTL bounds how stale a cached collection read may be.
const DefaultTTL = 45 * time.Second

type cacheEntry struct {
	data      []records.Record
	fetchedAt time.Time
}

// Cached wraps a Source and memoizes identical fetches for a fixed TTL,
// measured from fetch completion. Errors are never cached; a lost race
// between two concurrent fetches only costs one redundant round-trip.
type Cached struct {
	src Source
	ttl time.Duration

	mu      sync.RWMutex
	entries map[string]cacheEntry

	now func() time.Time // injectable clock for tests
}

// NewCached wraps src with a TTL cache. ttl <= 0 uses DefaultTTL.
func NewCached(src Source, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cached{
		src:     src,
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

func (c *Cached) FetchCollection(ctx context.Context, name string) ([]records.Record, error) {
	return c.fetch(ctx, name, func() ([]records.Record, error) {
		return c.src.FetchCollection(ctx, name)
	})
}

func (c *Cached) FetchRecent(ctx context.Context, name, orderField string, limit int) ([]records.Record, error) {
	key := fmt.Sprintf("%s|%s|%d", name, orderField, limit)
	return c.fetch(ctx, key, func() ([]records.Record, error) {
		return c.src.FetchRecent(ctx, name, orderField, limit)
	})
}

func (c *Cached) fetch(_ context.Context, key string, load func() ([]records.Record, error)) ([]records.Record, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && c.now().Sub(entry.fetchedAt) < c.ttl {
		return entry.data, nil
	}

	data, err := load()
	if err != nil {
		return nil, err
	}

	// Last-writer-wins: concurrent fetches of the same key overwrite each
	// other, which is harmless for read-only display data.
	c.mu.Lock()
	c.entries[key] = cacheEntry{data: data, fetchedAt: c.now()}
	c.mu.Unlock()
	return data, nil
}

// Invalidate drops every cached entry. Used by the scheduler's cache warm.
func (c *Cached) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

func (c *Cached) Close() error {
	return c.src.Close()
}
