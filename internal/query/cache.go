// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package query caches API reads keyed by resource + query parameters.
// Concurrent identical queries share one upstream request, fresh entries
// are served directly, and stale entries are served while a background
// refresh runs (stale-while-revalidate). Mutations invalidate a whole
// resource family at once.
package query

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	// DefaultTTL is the freshness window. An entry older than this is
	// still served, but triggers a background refresh.
	DefaultTTL = 30 * time.Second

	// refreshTimeout bounds background revalidation calls, which run
	// detached from the originating request.
	refreshTimeout = 30 * time.Second

	// sweepDelay is how long a burst of invalidations is coalesced
	// before the physical store sweep runs. Logical invalidation (the
	// epoch bump) is immediate.
	sweepDelay = 500 * time.Millisecond
)

// PublicScope is the cache scope for unauthenticated reads. Authorized
// reads must use Scope(token) so one session's data never serves another.
const PublicScope = "public"

// Scope derives a cache scope from a bearer token.
func Scope(token string) string {
	if token == "" {
		return PublicScope
	}
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:8])
}

// Key identifies one cached query: the resource family, the session
// scope, and the ordered query parameters.
type Key struct {
	Resource string
	Scope    string
	Params   []string
}

// Store is the physical cache backend: in-process LRU, or Valkey when
// the frontend runs replicated.
type Store interface {
	// Get returns the stored value and its storage time.
	Get(ctx context.Context, key string) (value []byte, storedAt time.Time, ok bool)

	// Set stores a value with the given storage time.
	Set(ctx context.Context, key string, value []byte, storedAt time.Time)

	// DeletePrefix removes every key with the given prefix.
	DeletePrefix(ctx context.Context, prefix string)
}

// Cache coordinates the store with request dedupe and invalidation.
// Invalidation is logical first: each resource family carries an epoch
// that is part of every key, so bumping it makes old entries
// unreachable immediately. The physical sweep that reclaims them is
// debounced, since mutation bursts would otherwise trigger repeated
// store scans.
type Cache struct {
	store Store
	ttl   time.Duration
	group singleflight.Group

	mu     sync.Mutex
	epochs map[string]uint64
	sweeps map[string]*Debouncer
}

// NewCache creates a cache over the given store. A zero ttl uses
// DefaultTTL.
func NewCache(store Store, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		store:  store,
		ttl:    ttl,
		epochs: make(map[string]uint64),
		sweeps: make(map[string]*Debouncer),
	}
}

// keyString renders a Key with the resource's current epoch baked in.
func (c *Cache) keyString(key Key) string {
	c.mu.Lock()
	epoch := c.epochs[key.Resource]
	c.mu.Unlock()

	parts := make([]string, 0, len(key.Params)+3)
	parts = append(parts, key.Resource, strconv.FormatUint(epoch, 10), key.Scope)
	parts = append(parts, key.Params...)
	return strings.Join(parts, "|")
}

// Invalidate marks every cached entry of a resource family stale. The
// epoch bump takes effect before Invalidate returns; the store sweep is
// coalesced across bursts.
func (c *Cache) Invalidate(resource string) {
	c.mu.Lock()
	c.epochs[resource]++
	d, ok := c.sweeps[resource]
	if !ok {
		d = NewDebouncer(sweepDelay)
		c.sweeps[resource] = d
	}
	c.mu.Unlock()

	d.Trigger(func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		c.store.DeletePrefix(ctx, resource+"|")
	})
}

// Fetch returns the cached value for key, or calls fetch to produce it.
// Behaviour per query key:
//
//	miss          → one upstream call (deduplicated), store, return
//	hit, fresh    → return cached value
//	hit, stale    → return cached value, revalidate in background
//
// Concurrent callers with identical keys share a single in-flight
// upstream call.
func Fetch[T any](ctx context.Context, c *Cache, key Key, fetch func(context.Context) (T, error)) (T, error) {
	k := c.keyString(key)

	if data, storedAt, ok := c.store.Get(ctx, k); ok {
		var cached T
		if err := json.Unmarshal(data, &cached); err == nil {
			if time.Since(storedAt) > c.ttl {
				revalidate(c, k, fetch)
			}
			return cached, nil
		}
		// Undecodable entry: fall through to a fresh fetch.
	}

	v, err, _ := c.group.Do(k, func() (any, error) {
		fresh, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.put(ctx, k, fresh)
		return fresh, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// revalidate refreshes a stale entry without blocking the caller. The
// singleflight key is shared with Fetch so a foreground miss and a
// background refresh never race two upstream calls.
func revalidate[T any](c *Cache, k string, fetch func(context.Context) (T, error)) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		c.group.Do(k, func() (any, error) {
			fresh, err := fetch(ctx)
			if err != nil {
				// Keep serving the stale entry; the next stale hit
				// retries.
				return nil, err
			}
			c.put(ctx, k, fresh)
			return fresh, nil
		})
	}()
}

func (c *Cache) put(ctx context.Context, k string, v any) {
	if data, err := json.Marshal(v); err == nil {
		c.store.Set(ctx, k, data, time.Now())
	}
}
