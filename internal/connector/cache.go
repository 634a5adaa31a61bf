package connector

import (
	"context"
	"sync"
	"time"
)

// DetailsCache memoizes ticket detail lookups for a backend connector so
// repeated review/billing passes do not re-query the backend.
type DetailsCache struct {
	mu        sync.RWMutex
	details   map[string]*TicketDetails
	fetchedAt map[string]time.Time
	ttl       time.Duration
}

// NewDetailsCache creates a cache whose entries expire after ttl.
func NewDetailsCache(ttl time.Duration) *DetailsCache {
	return &DetailsCache{
		details:   make(map[string]*TicketDetails),
		fetchedAt: make(map[string]time.Time),
		ttl:       ttl,
	}
}

func (c *DetailsCache) get(key string) *TicketDetails {
	c.mu.RLock()
	defer c.mu.RUnlock()

	d, ok := c.details[key]
	if !ok || time.Since(c.fetchedAt[key]) > c.ttl {
		return nil
	}
	copied := *d
	return &copied
}

func (c *DetailsCache) set(key string, d *TicketDetails) {
	c.mu.Lock()
	defer c.mu.Unlock()

	copied := *d
	c.details[key] = &copied
	c.fetchedAt[key] = time.Now()
}

// Invalidate drops all cached entries.
func (c *DetailsCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.details = make(map[string]*TicketDetails)
	c.fetchedAt = make(map[string]time.Time)
}

// CachingConnector wraps a Connector with a DetailsCache. Failed lookups are
// not cached.
type CachingConnector struct {
	Connector
	cache *DetailsCache
}

// WithCache wraps c so ticket detail lookups are memoized for ttl.
func WithCache(c Connector, ttl time.Duration) *CachingConnector {
	return &CachingConnector{Connector: c, cache: NewDetailsCache(ttl)}
}

func (c *CachingConnector) TicketDetails(ctx context.Context, ticketID string) (*TicketDetails, error) {
	if d := c.cache.get(ticketID); d != nil {
		return d, nil
	}
	d, err := c.Connector.TicketDetails(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	c.cache.set(ticketID, d)
	return d, nil
}
