// Package normalize merges freshly fetched records with the local picture cache.
package normalize

import (
	"context"

	"choosecare-bff/internal/imagecache"

	"golang.org/x/sync/errgroup"
)

// Pictured is a record whose picture may be missing from a server response.
type Pictured interface {
	EntityType() string
	RecordID() string
	PictureURL() *string
}

// Record is satisfied by pointers to pictured records.
type Record[T any] interface {
	*T
	Pictured
	SetPicture(url *string)
}

// All returns a copy of records with every picture reconciled against the
// cache. Lookups run concurrently and All returns only once every record is
// done; the input order is kept. A failed lookup only affects its own record.
func All[T any, P Record[T]](ctx context.Context, cache *imagecache.Cache, records []T) []T {
	out := make([]T, len(records))
	copy(out, records)

	var g errgroup.Group
	for i := range out {
		rec := P(&out[i])
		g.Go(func() error {
			rec.SetPicture(cache.Reconcile(ctx, rec.EntityType(), rec.RecordID(), rec.PictureURL()))
			return nil
		})
	}
	_ = g.Wait()

	return out
}

// One reconciles a single record.
func One[T any, P Record[T]](ctx context.Context, cache *imagecache.Cache, record T) T {
	rec := P(&record)
	rec.SetPicture(cache.Reconcile(ctx, rec.EntityType(), rec.RecordID(), rec.PictureURL()))
	return record
}
