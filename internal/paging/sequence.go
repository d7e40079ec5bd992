// Package paging turns cursor-paginated API results into lazy sequences.
package paging

import (
	"context"
	"iter"

	"github.com/naka-gawa/gh-activity/internal/domain"
)

// FetchFunc fetches the page identified by cursor. An empty cursor requests the first page.
type FetchFunc[T any] func(ctx context.Context, cursor string) (domain.Page[T], error)

type state int

const (
	awaitingNextPage state = iota
	hasItems
	exhausted
)

// Sequence is a lazy, forward-only sequence of items drawn from successive pages.
// It cannot be rewound; build a new Sequence to restart from the first page.
// A Sequence is not safe for concurrent use.
type Sequence[T any] struct {
	fetch FetchFunc[T]
	state state
	page  []T
	token string
	pages int
}

// New returns a Sequence that has not fetched anything yet.
func New[T any](fetch FetchFunc[T]) *Sequence[T] {
	return &Sequence[T]{fetch: fetch, state: awaitingNextPage}
}

// Next returns the next item. ok is false once the sequence is exhausted or has
// failed; a fetch failure is returned once and ends the sequence.
// Items within a page are returned last-in-first-out.
func (s *Sequence[T]) Next(ctx context.Context) (item T, ok bool, err error) {
	for {
		switch s.state {
		case hasItems:
			last := len(s.page) - 1
			item = s.page[last]
			s.page = s.page[:last]
			if len(s.page) == 0 {
				s.advance()
			}
			return item, true, nil
		case awaitingNextPage:
			page, err := s.fetch(ctx, s.token)
			if err != nil {
				s.state = exhausted
				s.page = nil
				return item, false, err
			}
			s.pages++
			s.page = page.Items
			s.token = page.Next
			if len(s.page) > 0 {
				s.state = hasItems
			} else {
				s.advance()
			}
		default:
			return item, false, nil
		}
	}
}

// advance moves past an empty current page.
func (s *Sequence[T]) advance() {
	if s.token == "" {
		s.state = exhausted
		return
	}
	s.state = awaitingNextPage
}

// Pages returns how many pages have been fetched so far.
func (s *Sequence[T]) Pages() int {
	return s.pages
}

// All returns the remaining items as an iterator. Iteration stops after the
// first error is yielded.
func (s *Sequence[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			item, ok, err := s.Next(ctx)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			if !ok || !yield(item, nil) {
				return
			}
		}
	}
}

// Collect drains every page of fetch into one slice.
func Collect[T any](ctx context.Context, fetch FetchFunc[T]) ([]T, error) {
	var all []T
	cursor := ""
	for {
		page, err := fetch(ctx, cursor)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Items...)
		if page.Next == "" {
			return all, nil
		}
		cursor = page.Next
	}
}
