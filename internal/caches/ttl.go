package caches

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// Options configures a TTLControl.
type Options struct {
	TTL      time.Duration
	Capacity uint64
	Enabled  bool
	Locked   bool
}

// Warmer returns the entries to preload into a cache.
type Warmer[K comparable, V any] func(ctx context.Context) (map[K]V, error)

// Loader fetches a single value on a cache miss. found is false when the
// key does not exist in the source; absent keys are not cached.
type Loader[K comparable, V any] func(ctx context.Context, key K) (value V, found bool, err error)

// TTLControl is a Control over an expiring in-memory cache.
// While disabled every lookup goes straight to the loader.
//
// Every invalidation advances a generation. Values loaded while the
// generation moved are returned to the caller but not cached, so a read that
// raced a write cannot store the value the write replaced.
type TTLControl[K comparable, V any] struct {
	name    string
	locked  bool
	enabled atomic.Bool
	started atomic.Bool
	cache   *ttlcache.Cache[K, V]
	warmer  Warmer[K, V]

	mu         sync.Mutex
	generation uint64
}

// NewTTLControl creates a control named name. warmer may be nil, in which
// case Warm is a no-op.
func NewTTLControl[K comparable, V any](name string, opts Options, warmer Warmer[K, V]) *TTLControl[K, V] {
	cacheOpts := []ttlcache.Option[K, V]{
		ttlcache.WithTTL[K, V](opts.TTL),
	}
	if opts.Capacity > 0 {
		cacheOpts = append(cacheOpts, ttlcache.WithCapacity[K, V](opts.Capacity))
	}

	c := &TTLControl[K, V]{
		name:   name,
		locked: opts.Locked,
		cache:  ttlcache.New(cacheOpts...),
		warmer: warmer,
	}
	c.enabled.Store(opts.Enabled)
	return c
}

func (c *TTLControl[K, V]) Name() string {
	return c.name
}

func (c *TTLControl[K, V]) IsEnabled() bool {
	return c.enabled.Load()
}

func (c *TTLControl[K, V]) CanToggle() bool {
	return !c.locked
}

func (c *TTLControl[K, V]) Enable() error {
	if c.locked {
		return fmt.Errorf("%w: %s", ErrLocked, c.name)
	}
	c.enabled.Store(true)
	return nil
}

// Disable stops serving from the cache and drops its entries, so nothing
// stale is served once it is enabled again.
func (c *TTLControl[K, V]) Disable() error {
	if c.locked {
		return fmt.Errorf("%w: %s", ErrLocked, c.name)
	}
	c.enabled.Store(false)
	c.clear()
	return nil
}

// Warm preloads the entries returned by the warmer. Disabled caches are not warmed.
func (c *TTLControl[K, V]) Warm(ctx context.Context) error {
	if c.warmer == nil || !c.IsEnabled() {
		return nil
	}

	gen := c.currentGeneration()
	entries, err := c.warmer(ctx)
	if err != nil {
		return fmt.Errorf("warm %s: %w", c.name, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != gen {
		return nil
	}
	for k, v := range entries {
		c.cache.Set(k, v, ttlcache.DefaultTTL)
	}
	return nil
}

func (c *TTLControl[K, V]) Clear(ctx context.Context) error {
	c.clear()
	return nil
}

func (c *TTLControl[K, V]) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.cache.DeleteAll()
}

func (c *TTLControl[K, V]) currentGeneration() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// Load returns the cached value for key, calling load on a miss.
func (c *TTLControl[K, V]) Load(ctx context.Context, key K, load Loader[K, V]) (V, bool, error) {
	if !c.IsEnabled() {
		return load(ctx, key)
	}

	var (
		loaded  V
		found   bool
		loadErr error
	)
	loader := ttlcache.LoaderFunc[K, V](
		func(cache *ttlcache.Cache[K, V], k K) *ttlcache.Item[K, V] {
			gen := c.currentGeneration()
			loaded, found, loadErr = load(ctx, k)
			if loadErr != nil || !found {
				return nil
			}

			c.mu.Lock()
			defer c.mu.Unlock()
			if c.generation != gen {
				return nil
			}
			return cache.Set(k, loaded, ttlcache.DefaultTTL)
		},
	)

	item := c.cache.Get(key, ttlcache.WithLoader(loader))
	if item == nil {
		return loaded, found, loadErr
	}
	return item.Value(), true, nil
}

// Invalidate removes keys from the cache.
func (c *TTLControl[K, V]) Invalidate(keys ...K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	for _, k := range keys {
		c.cache.Delete(k)
	}
}

// InvalidateFunc removes every cached key for which match returns true.
func (c *TTLControl[K, V]) InvalidateFunc(match func(K) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	for _, k := range c.cache.Keys() {
		if match(k) {
			c.cache.Delete(k)
		}
	}
}

// Len returns the number of cached entries.
func (c *TTLControl[K, V]) Len() int {
	return c.cache.Len()
}

// Start runs the expired entry cleanup loop in the background.
func (c *TTLControl[K, V]) Start() {
	if c.started.CompareAndSwap(false, true) {
		go c.cache.Start()
	}
}

// Stop ends the cleanup loop started by Start.
func (c *TTLControl[K, V]) Stop() {
	if c.started.CompareAndSwap(true, false) {
		c.cache.Stop()
	}
}
