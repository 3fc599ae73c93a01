package phase

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// forEachIndex drives a bounded worker pool of size workers (falling back
// to GOMAXPROCS when workers<=0) over the index range [0,n). Each worker
// pulls the next index from a shared atomic cursor — simpler than a
// work-stealing deque, but it gives the same load-balancing property for
// a flat slice of homogeneous work, which is what tile evaluation is.
//
// fn must never itself fail the group: per-tile errors are the caller's
// business to record (see RuleError isolation in the executor), not a
// reason to cancel evaluation of every other tile. fn only returns an
// error for infrastructure failures that should abort the whole phase.
func forEachIndex(ctx context.Context, n, workers int, fn func(ctx context.Context, i int) error) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}
	if n == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var cursor int64
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= n {
					return nil
				}
				if err := fn(gctx, i); err != nil {
					return err
				}
			}
		})
	}
	return g.Wait()
}
