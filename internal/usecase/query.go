package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/naka-gawa/gh-activity/internal/domain"
)

// ErrEmptyScope is returned when a query that needs a repository or owner has none.
var ErrEmptyScope = errors.New("query scope must name a repository or an owner")

// QuerySpec describes what to search for.
type QuerySpec struct {
	// Scope is either "owner/repo" or a bare user or organization name.
	Scope string
	// Labels each produce one independent query. No labels means one unlabeled query.
	Labels []string
}

func scopeQualifier(scope string) (string, error) {
	scope = strings.TrimSpace(scope)
	if scope == "" {
		return "", nil
	}
	if strings.Contains(scope, "/") {
		owner, repo, err := domain.ParseRepoFullName(scope)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("repo:%s/%s", owner, repo), nil
	}
	return "user:" + scope, nil
}

// labelQualifier passes qualified filters such as "-label:wip" through and
// quotes plain label names.
func labelQualifier(label string) string {
	label = strings.TrimSpace(label)
	if label == "" || strings.Contains(label, ":") {
		return label
	}
	return fmt.Sprintf("label:%q", label)
}

// ReviewQuery builds the pull request search for one label.
func ReviewQuery(spec QuerySpec, cutoff domain.Cutoff, label string) (string, error) {
	scope, err := scopeQualifier(spec.Scope)
	if err != nil {
		return "", err
	}
	if scope == "" {
		return "", ErrEmptyScope
	}
	parts := []string{scope, "is:pr", "sort:created-asc", "updated:>=" + cutoff.Date()}
	if q := labelQualifier(label); q != "" {
		parts = append(parts, q)
	}
	return strings.Join(parts, " "), nil
}

// InvolvesQuery builds the search for every issue and pull request user took part in.
func InvolvesQuery(user string, spec QuerySpec, cutoff domain.Cutoff) (string, error) {
	if strings.TrimSpace(user) == "" {
		return "", errors.New("user name must not be empty")
	}
	parts := []string{"involves:" + strings.TrimSpace(user), "sort:created-asc", "updated:>=" + cutoff.Date()}
	scope, err := scopeQualifier(spec.Scope)
	if err != nil {
		return "", err
	}
	if scope != "" {
		parts = append(parts, scope)
	}
	return strings.Join(parts, " "), nil
}

// labelsOrUnlabeled returns the labels to query, one empty label when there are none.
func labelsOrUnlabeled(labels []string) []string {
	if len(labels) == 0 {
		return []string{""}
	}
	return labels
}
