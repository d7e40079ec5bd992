package usecase

import (
	"context"
	"sync"

	"github.com/naka-gawa/gh-activity/internal/domain"
	"golang.org/x/sync/errgroup"
)

// ItemSource yields search results one at a time. *paging.Sequence[domain.Item] satisfies it.
type ItemSource interface {
	Next(ctx context.Context) (domain.Item, bool, error)
}

// Dispatch runs task once per item pulled from items and hands each result to
// fold. Tasks start as soon as their item is pulled; limit caps how many run
// at once, and limit <= 0 leaves them unbounded.
//
// fold is only ever called from a single goroutine. The first failure, from a
// task or from pagination, cancels the remaining work and is the error returned;
// callers must discard whatever fold accumulated in that case.
func Dispatch[R any](ctx context.Context, items ItemSource, limit int, task func(context.Context, domain.Item) (R, error), fold func(R)) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	results := make(chan R)
	folded := make(chan struct{})
	go func() {
		defer close(folded)
		for r := range results {
			fold(r)
		}
	}()

	var eg errgroup.Group
	if limit > 0 {
		eg.SetLimit(limit)
	}
	for {
		item, ok, err := items.Next(ctx)
		if err != nil {
			fail(err)
			break
		}
		if !ok {
			break
		}
		eg.Go(func() error {
			r, err := task(ctx, item)
			if err != nil {
				fail(err)
				return err
			}
			select {
			case results <- r:
			case <-ctx.Done():
			}
			return nil
		})
	}

	_ = eg.Wait() // firstErr already holds the error that matters.
	close(results)
	<-folded
	if firstErr == nil {
		// The caller's context ended; some results may have been dropped.
		return ctx.Err()
	}
	return firstErr
}
