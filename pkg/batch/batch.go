// Package batch runs independent tasks with bounded concurrency.
package batch

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Task produces one result.
type Task[T any] func(ctx context.Context) (T, error)

// Run executes tasks with at most limit running at once and returns the
// results in completion order, not input order. The first error cancels the
// context passed to the remaining tasks and is returned together with the
// results gathered so far. limit <= 0 means unbounded.
func Run[T any](ctx context.Context, limit int, tasks []Task[T]) ([]T, error) {
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	var mu sync.Mutex
	results := make([]T, 0, len(tasks))
	for _, task := range tasks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := task(gctx)
			if err != nil {
				return err
			}
			mu.Lock()
			results = append(results, r)
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()

	mu.Lock()
	defer mu.Unlock()
	return results, err
}
