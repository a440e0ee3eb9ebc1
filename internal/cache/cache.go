// Package cache provides the process-local TTL cache used by the providers.
//
// The cache is a pure accelerator over the snapshot store: entries expire
// passively by TTL and are never explicitly invalidated by writes elsewhere.
// Store is an interface so an external TTL cache can be substituted without
// touching provider logic.
package cache

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Store is the cache contract consumed by providers. Keys are scoped by
// tenant uid and entry name.
type Store interface {
	// Get returns the cached value for (tenantUID, entry) and whether an
	// unexpired entry exists.
	Get(tenantUID, entry string) (any, bool)

	// Set stores a value for (tenantUID, entry) with the given TTL.
	Set(tenantUID, entry string, value any, ttl time.Duration)
}

// MemoryStore implements [Store] over an in-process [gocache.Cache].
type MemoryStore struct {
	inner *gocache.Cache
}

// NewMemoryStore creates a memory store. defaultTTL applies when Set receives
// a non-positive TTL; expired entries are purged at twice the default TTL.
func NewMemoryStore(defaultTTL time.Duration) *MemoryStore {
	if defaultTTL <= 0 {
		defaultTTL = time.Hour
	}
	return &MemoryStore{
		inner: gocache.New(defaultTTL, defaultTTL*2),
	}
}

// Key builds the composite cache key for a tenant's entry.
func Key(tenantUID, entry string) string {
	return fmt.Sprintf("%s:%s", tenantUID, entry)
}

// Get returns the cached value for (tenantUID, entry), if present and unexpired.
func (s *MemoryStore) Get(tenantUID, entry string) (any, bool) {
	return s.inner.Get(Key(tenantUID, entry))
}

// Set stores a value with the given TTL. A non-positive TTL falls back to the
// store's default expiration.
func (s *MemoryStore) Set(tenantUID, entry string, value any, ttl time.Duration) {
	if ttl <= 0 {
		s.inner.Set(Key(tenantUID, entry), value, gocache.DefaultExpiration)
		return
	}
	s.inner.Set(Key(tenantUID, entry), value, ttl)
}

// Flush drops all entries. Used by tests and on-demand refreshes.
func (s *MemoryStore) Flush() {
	s.inner.Flush()
}

// ItemCount reports the number of entries, including not-yet-purged expired ones.
func (s *MemoryStore) ItemCount() int {
	return s.inner.ItemCount()
}
