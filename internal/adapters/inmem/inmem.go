// internal/adapters/inmem/inmem.go
//
// Package inmem provides process-local cache, session and revocation stores
// used when no redis address is configured, and in tests.
package inmem

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/mahabubulhasibshawon/rider-tracker/internal/domain"
	"github.com/mahabubulhasibshawon/rider-tracker/internal/ports"
)

type entry struct {
	data    []byte
	expires time.Time
}

type Cache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	items map[string]entry
	now   func() time.Time
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl, items: make(map[string]entry), now: time.Now}
}

func (e entry) expired(now time.Time) bool {
	return !e.expires.IsZero() && now.After(e.expires)
}

// Get drops an entry it finds expired.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, ports.ErrCacheMiss
	}
	if now := c.now(); e.expired(now) {
		c.mu.Lock()
		if cur, ok := c.items[key]; ok && cur.expired(now) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return nil, ports.ErrCacheMiss
	}
	return e.data, nil
}

// Set also sweeps every expired entry so keys that are never read again
// do not accumulate.
func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	now := c.now()
	var expires time.Time
	if c.ttl > 0 {
		expires = now.Add(c.ttl)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.items {
		if e.expired(now) {
			delete(c.items, k)
		}
	}
	c.items[key] = entry{data: data, expires: expires}
	return nil
}

func (c *Cache) DeleteByPrefix(ctx context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.items {
		if strings.HasPrefix(k, prefix) {
			delete(c.items, k)
		}
	}
	return nil
}

func (c *Cache) Ping(ctx context.Context) error {
	return nil
}

type SessionStore struct {
	mu      sync.Mutex
	session domain.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

func (s *SessionStore) Save(ctx context.Context, session domain.Session) error {
	s.mu.Lock()
	s.session = session
	s.mu.Unlock()
	return nil
}

func (s *SessionStore) Load(ctx context.Context) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session, nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.session = domain.Session{}
	s.mu.Unlock()
	return nil
}

type RevocationList struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewRevocationList() *RevocationList {
	return &RevocationList{revoked: make(map[string]time.Time), now: time.Now}
}

func (r *RevocationList) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	for id, exp := range r.revoked {
		if now.After(exp) {
			delete(r.revoked, id)
		}
	}
	r.revoked[tokenID] = until
	return nil
}

func (r *RevocationList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	exp, ok := r.revoked[tokenID]
	return ok && !r.now().After(exp), nil
}

var (
	_ ports.CachePort      = (*Cache)(nil)
	_ ports.SessionPort    = (*SessionStore)(nil)
	_ ports.RevocationPort = (*RevocationList)(nil)
)
