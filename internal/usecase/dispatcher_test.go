package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/naka-gawa/gh-activity/internal/domain"
	"github.com/naka-gawa/gh-activity/internal/paging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// itemPages returns a sequence over n pull requests served in pages of pageSize.
func itemPages(n, pageSize int, failAt string) *paging.Sequence[domain.Item] {
	return paging.New(func(ctx context.Context, cursor string) (domain.Page[domain.Item], error) {
		if failAt != "" && cursor == failAt {
			return domain.Page[domain.Item]{}, errors.New("page fetch failed")
		}
		start := 0
		if cursor != "" {
			start = int(cursor[0] - '0')
		}
		end := min(start+pageSize, n)
		page := domain.Page[domain.Item]{}
		for i := start; i < end; i++ {
			page.Items = append(page.Items, pr(i+1))
		}
		if end < n {
			page.Next = string(rune('0' + end))
		}
		return page, nil
	})
}

func TestDispatch_FoldsEveryResult(t *testing.T) {
	sum := 0
	err := Dispatch(context.Background(), itemPages(7, 3, ""), 0,
		func(ctx context.Context, item domain.Item) (int, error) { return item.Number, nil },
		func(n int) { sum += n },
	)

	require.NoError(t, err)
	assert.Equal(t, 28, sum)
}

func TestDispatch_NoItems(t *testing.T) {
	called := false
	err := Dispatch(context.Background(), itemPages(0, 3, ""), 0,
		func(ctx context.Context, item domain.Item) (int, error) { return 1, nil },
		func(int) { called = true },
	)

	require.NoError(t, err)
	assert.False(t, called)
}

func TestDispatch_FirstTaskErrorWins(t *testing.T) {
	errBoom := errors.New("boom")
	err := Dispatch(context.Background(), itemPages(9, 3, ""), 0,
		func(ctx context.Context, item domain.Item) (int, error) {
			if item.Number == 5 {
				return 0, errBoom
			}
			// Siblings only finish once the failure has cancelled them.
			<-ctx.Done()
			return 0, ctx.Err()
		},
		func(int) {},
	)

	assert.Same(t, errBoom, err)
}

func TestDispatch_PaginationErrorIsReturned(t *testing.T) {
	folded := 0
	err := Dispatch(context.Background(), itemPages(9, 3, "6"), 0,
		func(ctx context.Context, item domain.Item) (int, error) { return 1, nil },
		func(n int) { folded += n },
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "page fetch failed")
	assert.LessOrEqual(t, folded, 6)
}

func TestDispatch_LimitBoundsInFlightTasks(t *testing.T) {
	var inFlight, peak atomic.Int32
	count := 0
	err := Dispatch(context.Background(), itemPages(9, 9, ""), 2,
		func(ctx context.Context, item domain.Item) (int, error) {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			inFlight.Add(-1)
			return 1, nil
		},
		func(n int) { count += n },
	)

	require.NoError(t, err)
	assert.Equal(t, 9, count)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestDispatch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Dispatch(ctx, itemPages(3, 3, ""), 0,
		func(ctx context.Context, item domain.Item) (int, error) { return 1, nil },
		func(int) {},
	)

	assert.ErrorIs(t, err, context.Canceled)
}
