package repository

import (
	"context"
	"sync"

	"focus-tracker/internal/domain"
)

// CachedSessions wraps a SessionRepository and caches LoadAll. The cache is
// dropped by every Append made through it and by Invalidate; writes made
// behind its back are not seen until then.
type CachedSessions struct {
	inner SessionRepository

	mu       sync.Mutex
	sessions []domain.Session
	loaded   bool
	loads    int
}

// NewCachedSessions wraps inner with an explicit cache
func NewCachedSessions(inner SessionRepository) *CachedSessions {
	return &CachedSessions{inner: inner}
}

// Append writes through to the ledger and invalidates the cache
func (c *CachedSessions) Append(ctx context.Context, session domain.Session) (string, error) {
	location, err := c.inner.Append(ctx, session)
	c.Invalidate()
	return location, err
}

// LoadAll returns the cached ledger, loading it on first use
func (c *CachedSessions) LoadAll(ctx context.Context) ([]domain.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		sessions, err := c.inner.LoadAll(ctx)
		if err != nil {
			return nil, err
		}
		c.sessions = sessions
		c.loaded = true
		c.loads++
	}

	out := make([]domain.Session, len(c.sessions))
	copy(out, c.sessions)
	return out, nil
}

// Invalidate forces the next LoadAll to read the backing ledger
func (c *CachedSessions) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions = nil
	c.loaded = false
}

// Loads reports how many times the backing ledger has been read
func (c *CachedSessions) Loads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loads
}
