package cache

import (
	"context"
	"sync"
	"time"

	"github.com/amirasaad/amanah/pkg/cache"
)

// MemoryCache implements cache.MetalPriceCache using in-memory storage.
// Expired entries are dropped lazily on read.
type MemoryCache struct {
	entries map[cache.Metal]cacheEntry
	mu      sync.RWMutex
	now     func() time.Time
}

type cacheEntry struct {
	price     cache.MetalPrice
	expiresAt time.Time // zero means no expiry
}

// NewMemoryCache creates a new in-memory metal price cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[cache.Metal]cacheEntry),
		now:     time.Now,
	}
}

// Get retrieves a price from cache.
func (c *MemoryCache) Get(_ context.Context, metal cache.Metal) (*cache.MetalPrice, error) {
	c.mu.RLock()
	entry, ok := c.entries[metal]
	c.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if !entry.expiresAt.IsZero() && c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, metal)
		c.mu.Unlock()
		return nil, nil
	}
	price := entry.price
	return &price, nil
}

// Set stores a price. A ttl of zero keeps it until replaced.
func (c *MemoryCache) Set(_ context.Context, price *cache.MetalPrice, ttl time.Duration) error {
	entry := cacheEntry{price: *price}
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}
	c.mu.Lock()
	c.entries[price.Metal] = entry
	c.mu.Unlock()
	return nil
}

// Delete removes a price from cache.
func (c *MemoryCache) Delete(_ context.Context, metal cache.Metal) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, metal)
	return nil
}

var _ cache.MetalPriceCache = (*MemoryCache)(nil)
