package cache

import (
	"context"
	"time"

	"github.com/matzehuels/heaviest/pkg/observability"
)

// Scoped returns a cache that prepends prefix to every key, so several
// deployments can share one Redis database.
func Scoped(c Cache, prefix string) Cache {
	if c == nil {
		c = NewNullCache()
	}
	return &scoped{inner: c, prefix: prefix}
}

type scoped struct {
	inner  Cache
	prefix string
}

func (s *scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *scoped) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.inner.Set(ctx, s.prefix+key, data, ttl)
}

func (s *scoped) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

func (s *scoped) Close() error { return s.inner.Close() }

// Instrument returns a cache that reports hits, misses and writes to
// [observability.Cache] under keyType.
func Instrument(c Cache, keyType string) Cache {
	return &instrumented{inner: c, keyType: keyType}
}

type instrumented struct {
	inner   Cache
	keyType string
}

func (i *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := i.inner.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, i.keyType)
	} else {
		observability.Cache().OnCacheMiss(ctx, i.keyType)
	}
	return data, hit, nil
}

func (i *instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := i.inner.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, i.keyType, len(data))
	return nil
}

func (i *instrumented) Delete(ctx context.Context, key string) error {
	return i.inner.Delete(ctx, key)
}

func (i *instrumented) Close() error { return i.inner.Close() }
