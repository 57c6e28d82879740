package auth

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	domain "filehub/internal/domain/auth"
)

var (
	sessionCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "filehub_session_cache_hits_total",
		Help: "Session lookups answered from the in-memory cache",
	})
	sessionCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "filehub_session_cache_misses_total",
		Help: "Session lookups that went to the database",
	})
)

// SessionCache keeps recently validated sessions in memory so that each
// authenticated request does not hit the session table. A nil
// *SessionCache is valid and caches nothing.
type SessionCache struct {
	lru *expirable.LRU[string, *domain.Session]
}

// NewSessionCache creates a cache holding at most size sessions, each for
// at most ttl after it was added
func NewSessionCache(size int, ttl time.Duration) *SessionCache {
	return &SessionCache{lru: expirable.NewLRU[string, *domain.Session](size, nil, ttl)}
}

// Get returns the cached session for token
func (c *SessionCache) Get(token string) (*domain.Session, bool) {
	if c == nil {
		return nil, false
	}
	s, ok := c.lru.Get(token)
	if ok {
		sessionCacheHits.Inc()
		return s, true
	}
	sessionCacheMisses.Inc()
	return nil, false
}

// Add caches s under its token
func (c *SessionCache) Add(s *domain.Session) {
	if c == nil {
		return
	}
	c.lru.Add(s.Token, s)
}

// Remove evicts token
func (c *SessionCache) Remove(token string) {
	if c == nil {
		return
	}
	c.lru.Remove(token)
}

// RemoveUser evicts every cached session that belongs to userID
func (c *SessionCache) RemoveUser(userID string) {
	if c == nil {
		return
	}
	for _, token := range c.lru.Keys() {
		if s, ok := c.lru.Peek(token); ok && s.UserID == userID {
			c.lru.Remove(token)
		}
	}
}

// Len returns the number of cached sessions
func (c *SessionCache) Len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}
