// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/naka-gawa/gh-activity/internal/domain"
)

// Client defines the paginated GitHub queries the aggregation engine depends on.
// An empty cursor requests the first page; an empty Page.Next marks the last one.
type Client interface {
	SearchIssues(ctx context.Context, query string, pageSize int, cursor string) (domain.Page[domain.Item], error)
	ListComments(ctx context.Context, kind domain.CommentKind, ref domain.ItemRef, since time.Time, pageSize int, cursor string) (domain.Page[domain.Comment], error)
}

// Options configures a GitHubGateway.
type Options struct {
	Token string
	// BaseURL points at a GitHub Enterprise host. Empty means github.com.
	BaseURL string
	Timeout time.Duration
}

// GitHubGateway is the concrete implementation of the Client interface.
// Searches go through GraphQL for its cursor pagination, comments through REST
// for its server-side "since" filter.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        logrus.FieldLogger
}

var _ Client = (*GitHubGateway)(nil)

type itemFields struct {
	Number     int
	Title      string
	URL        string
	CreatedAt  githubv4.DateTime
	UpdatedAt  githubv4.DateTime
	Repository struct {
		NameWithOwner string
	}
}

// searchItemsQuery pages through issues and pull requests matching a search.
type searchItemsQuery struct {
	Search struct {
		PageInfo struct {
			HasNextPage bool
			EndCursor   githubv4.String
		}
		Nodes []struct {
			Typename    string     `graphql:"__typename"`
			Issue       itemFields `graphql:"... on Issue"`
			PullRequest itemFields `graphql:"... on PullRequest"`
		}
	} `graphql:"search(query: $query, type: ISSUE, first: $first, after: $cursor)"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(opts Options, logger logrus.FieldLogger) (*GitHubGateway, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
	httpClient := &http.Client{
		Timeout: opts.Timeout,
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}

	restClient := github.NewClient(httpClient)
	graphqlClient := githubv4.NewClient(httpClient)
	if opts.BaseURL != "" {
		base := strings.TrimSuffix(opts.BaseURL, "/")
		restClient, err = restClient.WithEnterpriseURLs(base, base)
		if err != nil {
			return nil, fmt.Errorf("failed to configure enterprise URL %q: %w", opts.BaseURL, err)
		}
		graphqlClient = githubv4.NewEnterpriseClient(base+"/api/graphql", httpClient)
	}

	return &GitHubGateway{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		logger:        logger,
	}, nil
}

// SearchIssues fetches one page of issues and pull requests matching query.
func (g *GitHubGateway) SearchIssues(ctx context.Context, query string, pageSize int, cursor string) (domain.Page[domain.Item], error) {
	variables := map[string]interface{}{
		"query":  githubv4.String(query),
		"first":  githubv4.Int(pageSize),
		"cursor": (*githubv4.String)(nil),
	}
	if cursor != "" {
		variables["cursor"] = githubv4.NewString(githubv4.String(cursor))
	}
	g.logger.WithFields(logrus.Fields{"query": query, "cursor": cursor}).Debug("Fetching search page")

	var q searchItemsQuery
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return domain.Page[domain.Item]{}, &domain.TransportError{Op: "search issues", Err: err}
	}

	items := make([]domain.Item, 0, len(q.Search.Nodes))
	for _, node := range q.Search.Nodes {
		var (
			fields itemFields
			kind   domain.ItemKind
		)
		switch node.Typename {
		case "PullRequest":
			fields, kind = node.PullRequest, domain.KindPullRequest
		case "Issue":
			fields, kind = node.Issue, domain.KindIssue
		default:
			continue // Discussions and other node types carry no comments we count.
		}
		owner, repo, err := domain.ParseRepoFullName(fields.Repository.NameWithOwner)
		if err != nil {
			return domain.Page[domain.Item]{}, fmt.Errorf("search result %s: %w", fields.URL, err)
		}
		items = append(items, domain.Item{
			ItemRef:   domain.ItemRef{Owner: owner, Repo: repo, Number: fields.Number},
			Kind:      kind,
			Title:     fields.Title,
			URL:       fields.URL,
			CreatedAt: fields.CreatedAt.Time,
			UpdatedAt: fields.UpdatedAt.Time,
		})
	}

	page := domain.Page[domain.Item]{Items: items}
	if q.Search.PageInfo.HasNextPage {
		page.Next = string(q.Search.PageInfo.EndCursor)
	}
	return page, nil
}

// ListComments fetches one page of comments of the given kind on ref,
// restricted server-side to comments updated at or after since.
func (g *GitHubGateway) ListComments(ctx context.Context, kind domain.CommentKind, ref domain.ItemRef, since time.Time, pageSize int, cursor string) (domain.Page[domain.Comment], error) {
	pageNum, err := parsePageCursor(cursor)
	if err != nil {
		return domain.Page[domain.Comment]{}, err
	}
	listOpts := github.ListOptions{Page: pageNum, PerPage: pageSize}
	g.logger.WithFields(logrus.Fields{"item": ref.String(), "kind": kind, "page": pageNum}).Debug("Fetching comment page")

	var (
		comments []domain.Comment
		resp     *github.Response
	)
	switch kind {
	case domain.ConversationComment:
		opts := &github.IssueListCommentsOptions{ListOptions: listOpts}
		if !since.IsZero() {
			opts.Since = &since
		}
		var raw []*github.IssueComment
		raw, resp, err = g.restClient.Issues.ListComments(ctx, ref.Owner, ref.Repo, ref.Number, opts)
		if err != nil {
			return domain.Page[domain.Comment]{}, &domain.TransportError{Op: "list comments for " + ref.String(), Err: err}
		}
		for _, c := range raw {
			comment, err := toComment(kind, c.GetUser().GetLogin(), c.GetHTMLURL(), c.GetCreatedAt().Time, c.GetUpdatedAt().Time)
			if err != nil {
				return domain.Page[domain.Comment]{}, fmt.Errorf("comment %d on %s: %w", c.GetID(), ref, err)
			}
			comments = append(comments, comment)
		}
	case domain.ReviewComment:
		opts := &github.PullRequestListCommentsOptions{Since: since, ListOptions: listOpts}
		var raw []*github.PullRequestComment
		raw, resp, err = g.restClient.PullRequests.ListComments(ctx, ref.Owner, ref.Repo, ref.Number, opts)
		if err != nil {
			return domain.Page[domain.Comment]{}, &domain.TransportError{Op: "list review comments for " + ref.String(), Err: err}
		}
		for _, c := range raw {
			comment, err := toComment(kind, c.GetUser().GetLogin(), c.GetHTMLURL(), c.GetCreatedAt().Time, c.GetUpdatedAt().Time)
			if err != nil {
				return domain.Page[domain.Comment]{}, fmt.Errorf("review comment %d on %s: %w", c.GetID(), ref, err)
			}
			comments = append(comments, comment)
		}
	default:
		return domain.Page[domain.Comment]{}, fmt.Errorf("unknown comment kind %q", kind)
	}

	page := domain.Page[domain.Comment]{Items: comments}
	if resp != nil && resp.NextPage != 0 {
		page.Next = strconv.Itoa(resp.NextPage)
	}
	return page, nil
}

func toComment(kind domain.CommentKind, login, url string, created, updated time.Time) (domain.Comment, error) {
	if login == "" {
		return domain.Comment{}, fmt.Errorf("%w: comment has no author", domain.ErrMalformedResource)
	}
	ts := updated
	if ts.IsZero() {
		ts = created
	}
	return domain.Comment{Kind: kind, Author: login, URL: url, Timestamp: ts}, nil
}

// parsePageCursor maps a REST continuation token back to a page number.
func parsePageCursor(cursor string) (int, error) {
	if cursor == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(cursor)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid page cursor %q", cursor)
	}
	return n, nil
}
