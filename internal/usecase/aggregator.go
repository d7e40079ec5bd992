// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"

	"github.com/naka-gawa/gh-activity/internal/domain"
	"github.com/naka-gawa/gh-activity/internal/gateway"
	"github.com/naka-gawa/gh-activity/internal/paging"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ReviewAggregator is the use case for aggregating review activity per contributor.
// It orchestrates searching, fetching comments and merging the results.
type ReviewAggregator struct {
	client  gateway.Client
	fetcher *CommentFetcher
	logger  logrus.FieldLogger
	limit   int
}

// NewReviewAggregator creates a new ReviewAggregator instance.
// limit caps the comment fetches in flight per query; zero means unbounded.
func NewReviewAggregator(client gateway.Client, logger logrus.FieldLogger, limit int) *ReviewAggregator {
	return &ReviewAggregator{
		client:  client,
		fetcher: NewCommentFetcher(client),
		logger:  logger,
		limit:   limit,
	}
}

// AggregateActivity runs one search per label concurrently and merges the
// per-label totals. A pull request matching two labels is counted under both.
func (a *ReviewAggregator) AggregateActivity(ctx context.Context, spec QuerySpec, cutoff domain.Cutoff, ignore domain.IgnoreSet) (domain.Stats, error) {
	a.logger.WithField("scope", spec.Scope).Info("Usecase: Starting review aggregation...")

	labels := labelsOrUnlabeled(spec.Labels)
	queries := make([]string, len(labels))
	for i, label := range labels {
		query, err := ReviewQuery(spec, cutoff, label)
		if err != nil {
			return nil, fmt.Errorf("failed to build query: %w", err)
		}
		queries[i] = query
	}

	partials := make([]domain.Stats, len(queries))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, query := range queries {
		eg.Go(func() error {
			stats, err := a.aggregateQuery(egCtx, query, cutoff, ignore)
			if err != nil {
				return err
			}
			partials[i] = stats
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	total := make(domain.Stats)
	for _, partial := range partials {
		total = domain.Merge(total, partial)
	}
	a.logger.WithField("contributors", len(total)).Info("Usecase: Aggregation complete.")
	return total, nil
}

func (a *ReviewAggregator) aggregateQuery(ctx context.Context, query string, cutoff domain.Cutoff, ignore domain.IgnoreSet) (domain.Stats, error) {
	log := a.logger.WithField("query", query)
	log.Debug("Searching pull requests")

	items := paging.New(func(ctx context.Context, cursor string) (domain.Page[domain.Item], error) {
		return a.client.SearchIssues(ctx, query, searchPageSize, cursor)
	})

	total := make(domain.Stats)
	processed := 0
	err := Dispatch(ctx, items, a.limit,
		func(ctx context.Context, item domain.Item) (domain.Stats, error) {
			byKind, err := a.fetcher.Fetch(ctx, item, cutoff, domain.ConversationComment, domain.ReviewComment)
			if err != nil {
				return nil, err
			}
			return Fragment(byKind, ignore), nil
		},
		func(fragment domain.Stats) {
			total.Add(fragment)
			processed++
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate %q: %w", query, err)
	}
	log.WithFields(logrus.Fields{"items": processed, "pages": items.Pages()}).Debug("Query aggregated")
	return total, nil
}
