package usecase

import (
	"context"
	"sync"

	"github.com/naka-gawa/gh-activity/internal/domain"
	"github.com/naka-gawa/gh-activity/internal/gateway"
	"github.com/naka-gawa/gh-activity/internal/paging"
	"golang.org/x/sync/errgroup"
)

const (
	searchPageSize  = 25
	commentPageSize = 100
)

// CommentFetcher retrieves the recent comments of a single item.
type CommentFetcher struct {
	client gateway.Client
}

// NewCommentFetcher creates a CommentFetcher backed by client.
func NewCommentFetcher(client gateway.Client) *CommentFetcher {
	return &CommentFetcher{client: client}
}

// Fetch collects every comment of the requested kinds on item that falls inside
// the cutoff window. Kinds are fetched concurrently, each one page after another.
// If any kind fails, the whole fetch fails.
func (f *CommentFetcher) Fetch(ctx context.Context, item domain.Item, cutoff domain.Cutoff, kinds ...domain.CommentKind) (map[domain.CommentKind][]domain.Comment, error) {
	var mu sync.Mutex
	byKind := make(map[domain.CommentKind][]domain.Comment, len(kinds))

	eg, egCtx := errgroup.WithContext(ctx)
	for _, kind := range kinds {
		if kind == domain.ReviewComment && !item.IsPullRequest() {
			mu.Lock()
			byKind[kind] = nil
			mu.Unlock()
			continue
		}
		eg.Go(func() error {
			comments, err := paging.Collect(egCtx, func(ctx context.Context, cursor string) (domain.Page[domain.Comment], error) {
				return f.client.ListComments(ctx, kind, item.ItemRef, cutoff.Time(), commentPageSize, cursor)
			})
			if err != nil {
				return err
			}
			recent := comments[:0]
			for _, c := range comments {
				if cutoff.Includes(c.Timestamp) {
					recent = append(recent, c)
				}
			}
			mu.Lock()
			byKind[kind] = recent
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return byKind, nil
}

// Fragment reduces the comments of one item to that item's contribution to the
// aggregate. Every distinct, non-ignored author participates exactly once.
func Fragment(byKind map[domain.CommentKind][]domain.Comment, ignore domain.IgnoreSet) domain.Stats {
	fragment := make(domain.Stats)
	for kind, comments := range byKind {
		for _, c := range comments {
			if ignore.Contains(c.Author) {
				continue
			}
			s, seen := fragment[c.Author]
			if !seen {
				s.Participated = 1
			}
			switch kind {
			case domain.ConversationComment:
				s.Comments++
			case domain.ReviewComment:
				s.ReviewComments++
			}
			fragment[c.Author] = s
		}
	}
	return fragment
}
