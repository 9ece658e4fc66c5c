package prefs

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/portfolio/pkg/cache"
	"github.com/dmitrymomot/portfolio/pkg/cookie"
)

// Storage is durable key-value storage for preference values.
type Storage interface {
	// Load returns ErrNotPersisted when nothing is stored under key.
	Load(ctx context.Context, key string) (string, error)
	Save(ctx context.Context, key, value string) error
}

// MemoryStorage keeps values in a map. The zero value is ready to use.
type MemoryStorage struct {
	values map[string]string
	mu     sync.RWMutex
}

// NewMemoryStorage returns storage pre-populated with values.
func NewMemoryStorage(values map[string]string) *MemoryStorage {
	s := &MemoryStorage{values: make(map[string]string, len(values))}
	for k, v := range values {
		s.values[k] = v
	}
	return s
}

// Load implements Storage.
func (s *MemoryStorage) Load(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return "", ErrNotPersisted
	}
	return v, nil
}

// Save implements Storage.
func (s *MemoryStorage) Save(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[string]string)
	}
	s.values[key] = value
	return nil
}

// CookieStorage persists values in cookies of a single request/response pair.
// Values written during the request are visible to later loads of the same request.
type CookieStorage struct {
	manager *cookie.Manager
	w       http.ResponseWriter
	r       *http.Request
	written map[string]string
	maxAge  int
	mu      sync.Mutex
}

// NewCookieStorage binds a cookie manager to one request.
func NewCookieStorage(m *cookie.Manager, w http.ResponseWriter, r *http.Request) *CookieStorage {
	return &CookieStorage{
		manager: m,
		w:       w,
		r:       r,
		written: make(map[string]string),
		maxAge:  cookie.OneYear,
	}
}

// Load implements Storage.
func (s *CookieStorage) Load(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	v, ok := s.written[key]
	s.mu.Unlock()
	if ok {
		return v, nil
	}

	v, err := s.manager.Load(s.r, key)
	if errors.Is(err, cookie.ErrNotFound) {
		return "", ErrNotPersisted
	}
	return v, err
}

// Save implements Storage. A later Save of the same key in one response
// replaces the earlier Set-Cookie header.
func (s *CookieStorage) Save(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.written[key]; ok {
		dropSetCookie(s.w.Header(), key)
	}
	if err := s.manager.Store(s.w, key, value, s.maxAge); err != nil {
		return err
	}
	s.written[key] = value
	return nil
}

func dropSetCookie(h http.Header, name string) {
	prev := h.Values("Set-Cookie")
	kept := make([]string, 0, len(prev))
	for _, line := range prev {
		if c, err := http.ParseSetCookie(line); err == nil && c.Name == name {
			continue
		}
		kept = append(kept, line)
	}
	h.Del("Set-Cookie")
	for _, line := range kept {
		h.Add("Set-Cookie", line)
	}
}

// CacheStorage keeps values server-side, namespaced by an anonymous visitor id.
type CacheStorage struct {
	cache   cache.Cache[string]
	visitor string
	ttl     time.Duration
}

// NewCacheStorage returns storage for one visitor. A zero ttl uses the cache default.
func NewCacheStorage(c cache.Cache[string], visitorID string, ttl time.Duration) *CacheStorage {
	return &CacheStorage{cache: c, visitor: visitorID, ttl: ttl}
}

// Load implements Storage.
func (s *CacheStorage) Load(ctx context.Context, key string) (string, error) {
	v, err := s.cache.Get(ctx, s.key(key))
	if errors.Is(err, cache.ErrNotFound) {
		return "", ErrNotPersisted
	}
	return v, err
}

// Save implements Storage.
func (s *CacheStorage) Save(ctx context.Context, key, value string) error {
	return s.cache.Set(ctx, s.key(key), value, s.ttl)
}

func (s *CacheStorage) key(key string) string {
	return "prefs:" + s.visitor + ":" + key
}

// VisitorCookie is the cookie holding the anonymous visitor id.
const VisitorCookie = "visitor"

// EnsureVisitor returns the visitor id from the request cookie, issuing a
// new UUID cookie when it is missing or fails verification.
func EnsureVisitor(m *cookie.Manager, w http.ResponseWriter, r *http.Request) (string, error) {
	if id, err := m.Load(r, VisitorCookie); err == nil {
		if _, perr := uuid.Parse(id); perr == nil {
			return id, nil
		}
	}

	id := uuid.NewString()
	if err := m.Store(w, VisitorCookie, id, cookie.OneYear); err != nil {
		return "", err
	}
	return id, nil
}

var (
	_ Storage = (*MemoryStorage)(nil)
	_ Storage = (*CookieStorage)(nil)
	_ Storage = (*CacheStorage)(nil)
)
