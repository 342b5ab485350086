package auth

import (
	"sync"
	"time"
)

// TokenCache remembers identities for already verified tokens, bounded by
// each token's own expiry. It only skips repeat signature checks and never
// extends a credential's lifetime. Thread-safe.
type TokenCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	identity  Identity
	expiresAt time.Time
}

func NewTokenCache() *TokenCache {
	return &TokenCache{
		entries: make(map[string]cacheEntry),
	}
}

func (c *TokenCache) Get(token string) (Identity, bool) {
	c.mu.RLock()
	entry, ok := c.entries[token]
	c.mu.RUnlock()
	if !ok {
		return Identity{}, false
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, token)
		c.mu.Unlock()
		return Identity{}, false
	}
	return entry.identity, true
}

// Put stores a verified identity until expiresAt. Already expired or
// zero expiries are ignored.
func (c *TokenCache) Put(token string, identity Identity, expiresAt time.Time) {
	if expiresAt.IsZero() || time.Now().After(expiresAt) {
		return
	}
	c.mu.Lock()
	c.entries[token] = cacheEntry{identity: identity, expiresAt: expiresAt}
	c.mu.Unlock()
}
