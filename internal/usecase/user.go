package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/naka-gawa/gh-activity/internal/domain"
	"github.com/naka-gawa/gh-activity/internal/gateway"
	"github.com/naka-gawa/gh-activity/internal/paging"
	"github.com/sirupsen/logrus"
)

// UserActivity is the use case for listing the recent comments of one user.
type UserActivity struct {
	client  gateway.Client
	fetcher *CommentFetcher
	logger  logrus.FieldLogger
	limit   int
}

// NewUserActivity creates a new UserActivity instance.
func NewUserActivity(client gateway.Client, logger logrus.FieldLogger, limit int) *UserActivity {
	return &UserActivity{
		client:  client,
		fetcher: NewCommentFetcher(client),
		logger:  logger,
		limit:   limit,
	}
}

// ListMatchingComments returns every item user commented on since the cutoff,
// with links to those comments. Items without a matching comment are left out.
// Results are ordered by item creation time, then repository and number.
func (u *UserActivity) ListMatchingComments(ctx context.Context, spec QuerySpec, cutoff domain.Cutoff, user string) ([]domain.ItemActivity, error) {
	query, err := InvolvesQuery(user, spec, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	u.logger.WithField("query", query).Info("Usecase: Listing user activity...")

	items := paging.New(func(ctx context.Context, cursor string) (domain.Page[domain.Item], error) {
		return u.client.SearchIssues(ctx, query, searchPageSize, cursor)
	})

	var activity []domain.ItemActivity
	err = Dispatch(ctx, items, u.limit,
		func(ctx context.Context, item domain.Item) (domain.ItemActivity, error) {
			byKind, err := u.fetcher.Fetch(ctx, item, cutoff, domain.ConversationComment, domain.ReviewComment)
			if err != nil {
				return domain.ItemActivity{}, err
			}
			return domain.ItemActivity{Item: item, Links: linksBy(byKind, user)}, nil
		},
		func(a domain.ItemActivity) {
			if len(a.Links) > 0 {
				activity = append(activity, a)
			}
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity of %s: %w", user, err)
	}

	sort.Slice(activity, func(i, j int) bool {
		a, b := activity[i].Item, activity[j].Item
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		if a.FullName() != b.FullName() {
			return a.FullName() < b.FullName()
		}
		return a.Number < b.Number
	})
	u.logger.WithField("items", len(activity)).Info("Usecase: User activity listed.")
	return activity, nil
}

// linksBy returns the URLs of user's comments, oldest first.
func linksBy(byKind map[domain.CommentKind][]domain.Comment, user string) []string {
	var mine []domain.Comment
	for _, comments := range byKind {
		for _, c := range comments {
			if strings.EqualFold(c.Author, user) {
				mine = append(mine, c)
			}
		}
	}
	sort.Slice(mine, func(i, j int) bool {
		if !mine[i].Timestamp.Equal(mine[j].Timestamp) {
			return mine[i].Timestamp.Before(mine[j].Timestamp)
		}
		return mine[i].URL < mine[j].URL
	})
	links := make([]string, 0, len(mine))
	for _, c := range mine {
		links = append(links, c.URL)
	}
	return links
}
