// Package imagecache remembers the last known picture URL per entity so a
// list can still show an image when the server omits one.
//
// Keys have the form "{entityType}:{id}:picture". There is no expiry and no
// versioning: the last write wins, and callers overwrite the cache whenever
// the server supplies a different value.
package imagecache

import (
	"context"
	"errors"
	"fmt"

	"choosecare-bff/internal/kvstore"

	"github.com/rs/zerolog"
)

// Key builds the cache key for an entity's picture.
func Key(entityType, id string) string {
	return fmt.Sprintf("%s:%s:picture", entityType, id)
}

type Status int

const (
	Miss Status = iota
	Hit
	Failed
)

func (s Status) String() string {
	switch s {
	case Hit:
		return "hit"
	case Failed:
		return "error"
	default:
		return "miss"
	}
}

// Result is the outcome of a lookup. A Miss means nothing was ever cached;
// Failed means the storage layer could not answer.
type Result struct {
	Status Status
	Value  string
	Err    error
}

// URL returns the cached value when the lookup was a hit.
func (r Result) URL() (string, bool) {
	return r.Value, r.Status == Hit
}

type Cache struct {
	store  kvstore.Store
	logger zerolog.Logger
}

func New(store kvstore.Store, logger zerolog.Logger) *Cache {
	return &Cache{store: store, logger: logger.With().Str("component", "imagecache").Logger()}
}

func (c *Cache) Lookup(ctx context.Context, entityType, id string) Result {
	v, err := c.store.Get(ctx, Key(entityType, id))
	switch {
	case err == nil:
		return Result{Status: Hit, Value: v}
	case errors.Is(err, kvstore.ErrNotFound):
		return Result{Status: Miss}
	default:
		return Result{Status: Failed, Err: err}
	}
}

// Get collapses a lookup to nil for both a miss and a storage failure.
func (c *Cache) Get(ctx context.Context, entityType, id string) *string {
	res := c.Lookup(ctx, entityType, id)
	if res.Status == Failed {
		c.logger.Warn().Err(res.Err).Str("key", Key(entityType, id)).Msg("picture cache read failed")
	}
	if v, ok := res.URL(); ok {
		return &v
	}
	return nil
}

// Set overwrites the cached picture. Failures are logged and swallowed.
func (c *Cache) Set(ctx context.Context, entityType, id, url string) {
	if id == "" || url == "" {
		return
	}
	if err := c.store.Set(ctx, Key(entityType, id), url); err != nil {
		c.logger.Warn().Err(err).Str("key", Key(entityType, id)).Msg("picture cache write failed")
	}
}

// Remove drops the cached picture of a deleted entity. Failures are logged and swallowed.
func (c *Cache) Remove(ctx context.Context, entityType, id string) {
	if id == "" {
		return
	}
	if err := c.store.Delete(ctx, Key(entityType, id)); err != nil {
		c.logger.Warn().Err(err).Str("key", Key(entityType, id)).Msg("picture cache delete failed")
	}
}

// Reconcile returns the picture to render: the server's value when present,
// otherwise the cached one, otherwise nil. A server value that differs from
// the cache is written back so the cache follows the server.
func (c *Cache) Reconcile(ctx context.Context, entityType, id string, server *string) *string {
	res := c.Lookup(ctx, entityType, id)
	if res.Status == Failed {
		c.logger.Warn().Err(res.Err).Str("key", Key(entityType, id)).Msg("picture cache read failed")
	}

	if server != nil && *server != "" {
		if cached, ok := res.URL(); !ok || cached != *server {
			c.Set(ctx, entityType, id, *server)
		}
		v := *server
		return &v
	}

	if cached, ok := res.URL(); ok {
		return &cached
	}
	return nil
}
