// Package cache is the per-session query cache. Reads go through Fetch;
// mutations only ever invalidate keys so the next read refetches.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const scopeSeparator = "|"

// Resource keys
func ProjectKey(id int32) string         { return fmt.Sprintf("project:%d", id) }
func ProjectRequestsKey(id int32) string { return fmt.Sprintf("project-requests:%d", id) }
func ProjectListKey(query string) string { return "projects?" + query }
func ReferenceListKey(resource, relations string) string {
	return resource + "?relations=" + relations
}

const (
	CurrentUserKey    = "me"
	ProjectListPrefix = "projects?"
)

// Observer receives hit/miss notifications, used for metrics
type Observer interface {
	CacheHit(resource string)
	CacheMiss(resource string)
}

type entry struct {
	value     any
	expiresAt time.Time
}

type QueryCache struct {
	mu       sync.RWMutex
	entries  map[string]entry
	group    singleflight.Group
	ttl      time.Duration
	now      func() time.Time
	observer Observer

	// Invalidations seen by loads still in flight. A load that started before
	// an invalidation of its key must not store its result.
	seq           uint64
	inflight      map[string]int
	staleKeys     map[string]uint64
	stalePrefixes map[string]uint64
}

func NewQueryCache(ttl time.Duration, observer Observer) *QueryCache {
	return &QueryCache{
		entries:       make(map[string]entry),
		ttl:           ttl,
		now:           time.Now,
		observer:      observer,
		inflight:      make(map[string]int),
		staleKeys:     make(map[string]uint64),
		stalePrefixes: make(map[string]uint64),
	}
}

// Scoped returns the view of the cache for one browser session
func (c *QueryCache) Scoped(scope string) *Scope {
	return &Scope{cache: c, prefix: scope + scopeSeparator}
}

// Sweep drops expired entries and returns how many were removed
func (c *QueryCache) Sweep() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

func (c *QueryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *QueryCache) get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// begin registers a load of key and returns the sequence it started at
func (c *QueryCache) begin(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight[key]++
	return c.seq
}

// finish stores value unless key was invalidated after the load began
func (c *QueryCache) finish(key string, start uint64, value any, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err == nil && !c.staleSince(key, start) {
		c.entries[key] = entry{value: value, expiresAt: c.now().Add(c.ttl)}
	}
	if c.inflight[key]--; c.inflight[key] <= 0 {
		delete(c.inflight, key)
	}
	if len(c.inflight) == 0 {
		clear(c.staleKeys)
		clear(c.stalePrefixes)
	}
}

func (c *QueryCache) staleSince(key string, start uint64) bool {
	if c.staleKeys[key] > start {
		return true
	}
	for p, seq := range c.stalePrefixes {
		if seq > start && strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}

func (c *QueryCache) delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	delete(c.entries, key)
	if c.inflight[key] > 0 {
		c.staleKeys[key] = c.seq
		c.group.Forget(key)
	}
}

func (c *QueryCache) deletePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	for k := range c.inflight {
		if strings.HasPrefix(k, prefix) {
			c.stalePrefixes[prefix] = c.seq
			c.group.Forget(k)
		}
	}
}

func (c *QueryCache) record(key string, hit bool) {
	if c.observer == nil {
		return
	}
	resource := key
	if i := strings.Index(key, scopeSeparator); i >= 0 {
		resource = key[i+1:]
	}
	if i := strings.IndexAny(resource, ":?"); i >= 0 {
		resource = resource[:i]
	}
	if hit {
		c.observer.CacheHit(resource)
	} else {
		c.observer.CacheMiss(resource)
	}
}

// Scope is a session-scoped view of the cache
type Scope struct {
	cache  *QueryCache
	prefix string
}

// loadPanic carries a loader panic back to the caller's goroutine
type loadPanic struct {
	value any
}

func (p *loadPanic) Error() string {
	return fmt.Sprintf("cache load panicked: %v", p.value)
}

// Fetch returns the cached value for key or loads it. Concurrent loads of the
// same key share one call, which outlives the cancellation of any single
// caller. Errors are never cached.
func (s *Scope) Fetch(ctx context.Context, key string, load func(ctx context.Context) (any, error)) (any, error) {
	full := s.prefix + key
	if v, ok := s.cache.get(full); ok {
		s.cache.record(full, true)
		return v, nil
	}
	s.cache.record(full, false)
	shared := context.WithoutCancel(ctx)
	ch := s.cache.group.DoChan(full, func() (v any, err error) {
		start := s.cache.begin(full)
		defer func() {
			if r := recover(); r != nil {
				v, err = nil, &loadPanic{value: r}
			}
			s.cache.finish(full, start, v, err)
		}()
		return load(shared)
	})
	select {
	case res := <-ch:
		var lp *loadPanic
		if errors.As(res.Err, &lp) {
			panic(lp.value)
		}
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Peek returns a cached value without loading
func (s *Scope) Peek(key string) (any, bool) {
	return s.cache.get(s.prefix + key)
}

// Invalidate removes the given keys from this scope
func (s *Scope) Invalidate(keys ...string) {
	for _, k := range keys {
		s.cache.delete(s.prefix + k)
	}
}

// InvalidatePrefix removes every key in this scope starting with prefix
func (s *Scope) InvalidatePrefix(prefix string) {
	s.cache.deletePrefix(s.prefix + prefix)
}

// Clear removes everything cached for this scope
func (s *Scope) Clear() {
	s.cache.deletePrefix(s.prefix)
}

// Fetch is the typed form of Scope.Fetch
func Fetch[T any](ctx context.Context, s *Scope, key string, load func(ctx context.Context) (T, error)) (T, error) {
	v, err := s.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		return load(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cache entry %q has type %T", key, v)
	}
	return out, nil
}
