package fetch

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/okra-platform/abiparse/internal/imports"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheSize is the number of schemas kept by a Cache
const DefaultCacheSize = 1024

// Cache keeps recently fetched schemas in memory. Concurrent fetches of the same uri
// share a single call to the underlying fetcher. Failed fetches are not cached.
type Cache struct {
	next   imports.Fetcher
	cache  *lru.Cache[string, string]
	group  singleflight.Group
	logger zerolog.Logger
}

// NewCache wraps next with an LRU cache of size entries
func NewCache(next imports.Fetcher, size int, logger zerolog.Logger) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}

	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create schema cache: %w", err)
	}

	return &Cache{
		next:   next,
		cache:  cache,
		logger: logger,
	}, nil
}

// Fetch returns the cached schema for uri or loads it. The shared load runs detached from any
// single caller's cancellation, so a cancelled caller only stops waiting for itself.
func (c *Cache) Fetch(ctx context.Context, uri string) (string, error) {
	if schema, ok := c.cache.Get(uri); ok {
		c.logger.Debug().Str("uri", uri).Msg("schema cache hit")
		return schema, nil
	}

	ch := c.group.DoChan(uri, func() (interface{}, error) {
		schema, err := c.next.Fetch(context.WithoutCancel(ctx), uri)
		if err != nil {
			return "", err
		}
		c.cache.Add(uri, schema)
		return schema, nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		c.logger.Debug().Str("uri", uri).Bool("shared", res.Shared).Msg("schema cache miss")
		return res.Val.(string), nil
	}
}

// Purge drops every cached schema
func (c *Cache) Purge() {
	c.cache.Purge()
}

// Len returns the number of cached schemas
func (c *Cache) Len() int {
	return c.cache.Len()
}
