package domain

import (
	"fmt"
	"strings"
	"time"
)

// ItemKind distinguishes issues from pull requests in search results.
type ItemKind string

const (
	KindIssue       ItemKind = "issue"
	KindPullRequest ItemKind = "pull_request"
)

// ItemRef identifies an issue or pull request within a repository.
type ItemRef struct {
	Owner  string `json:"owner"`
	Repo   string `json:"repo"`
	Number int    `json:"number"`
}

// FullName returns "owner/repo".
func (r ItemRef) FullName() string {
	return r.Owner + "/" + r.Repo
}

func (r ItemRef) String() string {
	return fmt.Sprintf("%s#%d", r.FullName(), r.Number)
}

// ParseRepoFullName splits an "owner/repo" locator.
func ParseRepoFullName(fullName string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(fullName, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("%w: invalid repository name %q", ErrMalformedResource, fullName)
	}
	return owner, repo, nil
}

// Item is an issue or pull request returned by a search query.
type Item struct {
	ItemRef
	Kind      ItemKind  `json:"kind"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsPullRequest reports whether the item can carry review comments.
func (i Item) IsPullRequest() bool {
	return i.Kind == KindPullRequest
}

// CommentKind tags the category a comment was fetched from.
type CommentKind string

const (
	// ConversationComment is a comment on the issue or PR timeline.
	ConversationComment CommentKind = "conversation"
	// ReviewComment is a comment attached to a line of a PR diff.
	ReviewComment CommentKind = "review"
)

// Comment is a single comment fetched for an item.
type Comment struct {
	Kind      CommentKind `json:"kind"`
	Author    string      `json:"author"`
	URL       string      `json:"url"`
	Timestamp time.Time   `json:"timestamp"`
}

// ItemActivity pairs an item with the links of the comments that matched a user.
type ItemActivity struct {
	Item  Item     `json:"item"`
	Links []string `json:"links"`
}

// Page is one page of a paginated resource. An empty Next marks the last page.
type Page[T any] struct {
	Items []T
	Next  string
}
