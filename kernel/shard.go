package kernel

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/agnostic/grid"
)

// Shard splits [0, n) into at most workers contiguous, disjoint ranges and
// runs fn on each concurrently. The first error cancels the shards that
// have not started and is returned.
func Shard(ctx context.Context, n, workers int, fn func(ctx context.Context, start, end int) error) error {
	if n <= 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	if workers == 1 {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(ctx, 0, n)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	base, rem := n/workers, n%workers
	start := 0
	for w := range workers {
		size := base
		if w < rem {
			size++
		}
		lo, hi := start, start+size
		start = hi

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, lo, hi)
		})
	}

	return g.Wait()
}

// ShardExtent runs fn on up to workers disjoint pieces of ext, cut by
// grid.Extent.SplitK.
func ShardExtent(ctx context.Context, ext grid.Extent, workers int, fn func(ctx context.Context, part grid.Extent) error) error {
	parts := ext.SplitK(workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))

	for _, p := range parts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, p)
		})
	}

	return g.Wait()
}
