package parameters

import (
	"context"
	"strings"

	"github.com/JaimeStill/system-api/internal/caches"
)

// CachedStore serves Get through a cache control. List reads go to the
// underlying store. Writes invalidate every cached key whose path overlaps
// a changed key.
type CachedStore struct {
	store   Store
	control *caches.TTLControl[string, any]
}

// NewCachedStore wraps store in a cache control named name. The control
// warms by loading every parameter.
func NewCachedStore(store Store, name string, opts caches.Options) *CachedStore {
	s := &CachedStore{store: store}
	s.control = caches.NewTTLControl(name, opts, s.warm)
	return s
}

// Control returns the cache control to register.
func (s *CachedStore) Control() *caches.TTLControl[string, any] {
	return s.control
}

func (s *CachedStore) All(ctx context.Context) (map[string]any, error) {
	return s.store.All(ctx)
}

func (s *CachedStore) Get(ctx context.Context, key string) (any, error) {
	value, _, err := s.control.Load(ctx, key, s.load)
	return value, err
}

func (s *CachedStore) Apply(ctx context.Context, changes ...Change) error {
	err := s.store.Apply(ctx, changes...)

	s.control.InvalidateFunc(func(cached string) bool {
		for _, c := range changes {
			if overlaps(cached, c.Key) {
				return true
			}
		}
		return false
	})

	return err
}

func (s *CachedStore) load(ctx context.Context, key string) (any, bool, error) {
	value, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	return value, value != nil, nil
}

func (s *CachedStore) warm(ctx context.Context) (map[string]any, error) {
	return s.store.All(ctx)
}

// overlaps reports whether a and b are equal or one is a parent path of the other.
func overlaps(a, b string) bool {
	return a == b || strings.HasPrefix(a, b+".") || strings.HasPrefix(b, a+".")
}
