// Package query caches read results and tracks mutations for the profile
// data-access layer.
//
// A Client stores fetched values under a Key for a stale time. Concurrent
// fetches of the same key share one call. Mutations run a function, then
// success or error callbacks, and expose their last state.
package query

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/chinmay1088/pubkey-profile/logger"
	"github.com/dgraph-io/ristretto"
	"golang.org/x/sync/singleflight"
)

// defaults for Config
const (
	DefaultStaleTime  = 30 * time.Second
	DefaultMaxEntries = 1024
)

// Key identifies a cached query, e.g. {"pubkey-profile", "fetchProfile", {...}}.
type Key []any

// String renders the key as JSON, which is stable for maps and structs.
func (k Key) String() string {
	raw, err := json.Marshal([]any(k))
	if err != nil {
		return fmt.Sprint([]any(k))
	}
	return string(raw)
}

// Config configures a Client.
type Config struct {
	// StaleTime is how long a fetched value is served from cache. Zero
	// selects DefaultStaleTime; a negative value disables expiry.
	StaleTime  time.Duration
	MaxEntries int64
	Logger     *logger.Logger
}

// Client is a query cache.
type Client struct {
	cache     *ristretto.Cache
	group     singleflight.Group
	staleTime time.Duration
	log       *logger.Logger

	// mu guards gens and orders cache writes against invalidation.
	mu   sync.Mutex
	gens map[string]uint64
}

// NewClient creates a query cache.
func NewClient(cfg Config) (*Client, error) {
	maxEntries := cfg.MaxEntries
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}

	staleTime := cfg.StaleTime
	switch {
	case staleTime == 0:
		staleTime = DefaultStaleTime
	case staleTime < 0:
		staleTime = 0
	}

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        maxEntries * 10,
		MaxCost:            maxEntries,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create query cache: %w", err)
	}

	return &Client{
		cache:     cache,
		staleTime: staleTime,
		log:       logger.OrNop(cfg.Logger),
		gens:      make(map[string]uint64),
	}, nil
}

// Close releases the cache.
func (c *Client) Close() {
	c.cache.Close()
}

// Invalidate drops the cached value of key. An in-flight fetch of key is
// forgotten so the next Fetch starts a new call, and its result is
// discarded when it completes.
func (c *Client) Invalidate(key Key) {
	k := key.String()
	c.mu.Lock()
	c.gens[k]++
	c.cache.Del(k)
	c.mu.Unlock()
	c.group.Forget(k)
	c.log.Debug().Str("key", k).Msg("query invalidated")
}

func (c *Client) generation(k string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[k]
}

// store caches v unless key was invalidated after gen was read.
func (c *Client) store(k string, gen uint64, v any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[k] != gen {
		return false
	}
	c.cache.SetWithTTL(k, v, 1, c.staleTime)
	c.cache.Wait()
	return true
}

// Peek returns the cached value of key without fetching.
func Peek[T any](c *Client, key Key) (T, bool) {
	var zero T
	v, ok := c.cache.Get(key.String())
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}

// Fetch returns the cached value of key or calls fn to load it. Errors are
// not cached.
func Fetch[T any](ctx context.Context, c *Client, key Key, fn func(context.Context) (T, error)) (T, error) {
	if v, ok := Peek[T](c, key); ok {
		return v, nil
	}

	k := key.String()
	gen := c.generation(k)
	// The shared call outlives any single caller's cancellation.
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(k, func() (any, error) {
		out, err := fn(shared)
		if err != nil {
			return nil, err
		}
		if !c.store(k, gen, out) {
			c.log.Debug().Str("key", k).Msg("stale query result discarded")
		}
		return out, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
	v, err := res.Val, res.Err

	var zero T
	if err != nil {
		c.log.Debug().Err(err).Str("key", k).Msg("query failed")
		return zero, err
	}

	c.log.Debug().Str("key", k).Bool("shared", res.Shared).Msg("query fetched")
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("query %s: unexpected result type %T", k, v)
	}
	return typed, nil
}

// Refetch invalidates key and fetches it again.
func Refetch[T any](ctx context.Context, c *Client, key Key, fn func(context.Context) (T, error)) (T, error) {
	c.Invalidate(key)
	return Fetch(ctx, c, key, fn)
}
