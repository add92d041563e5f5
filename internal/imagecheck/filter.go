package imagecheck

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds simultaneous image probes per batch.
const DefaultConcurrency = 5

// Filter keeps the items whose image passes checker, in their original order.
// At most concurrency checks run at once; completion order does not matter
// because results land in per-index slots.
func Filter[T any](ctx context.Context, checker Checker, items []T, urlOf func(T) string, concurrency int) []T {
	if len(items) == 0 {
		return nil
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	ok := make([]bool, len(items))
	var g errgroup.Group
	g.SetLimit(concurrency)
	for i := range items {
		g.Go(func() error {
			ok[i] = checker.Exists(ctx, urlOf(items[i]))
			return nil
		})
	}
	_ = g.Wait()

	out := make([]T, 0, len(items))
	for i, item := range items {
		if ok[i] {
			out = append(out, item)
		}
	}
	return out
}
