package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/naka-gawa/gh-activity/internal/domain"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
)

// mockClient is a mock implementation of the gateway.Client interface.
type mockClient struct {
	mock.Mock
}

func (m *mockClient) SearchIssues(ctx context.Context, query string, pageSize int, cursor string) (domain.Page[domain.Item], error) {
	args := m.Called(ctx, query, pageSize, cursor)
	return args.Get(0).(domain.Page[domain.Item]), args.Error(1)
}

func (m *mockClient) ListComments(ctx context.Context, kind domain.CommentKind, ref domain.ItemRef, since time.Time, pageSize int, cursor string) (domain.Page[domain.Comment], error) {
	args := m.Called(ctx, kind, ref, since, pageSize, cursor)
	return args.Get(0).(domain.Page[domain.Comment]), args.Error(1)
}

var testCutoff = domain.CutoffAt(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC))

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func pr(number int) domain.Item {
	return domain.Item{
		ItemRef:   domain.ItemRef{Owner: "org", Repo: "repo", Number: number},
		Kind:      domain.KindPullRequest,
		Title:     fmt.Sprintf("PR %d", number),
		CreatedAt: time.Date(2026, 10, 1, number, 0, 0, 0, time.UTC),
	}
}

func comments(kind domain.CommentKind, authors ...string) domain.Page[domain.Comment] {
	page := domain.Page[domain.Comment]{Items: []domain.Comment{}}
	for i, author := range authors {
		page.Items = append(page.Items, domain.Comment{
			Kind:      kind,
			Author:    author,
			URL:       fmt.Sprintf("https://github.com/org/repo/%s/%d", kind, i),
			Timestamp: testCutoff.Time().Add(time.Duration(i+1) * time.Hour),
		})
	}
	return page
}

// expectComments registers the single-page comment listing of item for kind.
func (m *mockClient) expectComments(item domain.Item, kind domain.CommentKind, page domain.Page[domain.Comment]) *mock.Call {
	return m.On("ListComments", mock.Anything, kind, item.ItemRef, testCutoff.Time(), commentPageSize, "").Return(page, nil)
}
