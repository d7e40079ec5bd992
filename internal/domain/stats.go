// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"sort"
	"strings"
)

// ContributorStats holds the review activity counts for a single contributor.
// It is the core domain entity of this application.
type ContributorStats struct {
	Comments       int `json:"comments"`
	ReviewComments int `json:"review_comments"`
	Participated   int `json:"participated"`
}

// Total is the ranking key: conversation comments plus review comments.
func (s ContributorStats) Total() int {
	return s.Comments + s.ReviewComments
}

// Plus returns the point-wise sum of s and o.
func (s ContributorStats) Plus(o ContributorStats) ContributorStats {
	return ContributorStats{
		Comments:       s.Comments + o.Comments,
		ReviewComments: s.ReviewComments + o.ReviewComments,
		Participated:   s.Participated + o.Participated,
	}
}

// Stats maps a contributor login to their accumulated counts.
// The empty Stats is the identity of Merge.
type Stats map[string]ContributorStats

// Add folds fragment into s in place.
func (s Stats) Add(fragment Stats) {
	for login, v := range fragment {
		s[login] = s[login].Plus(v)
	}
}

// Merge returns a new Stats holding the point-wise sum of a and b.
// Neither operand is modified.
func Merge(a, b Stats) Stats {
	out := make(Stats, len(a)+len(b))
	out.Add(a)
	out.Add(b)
	return out
}

// Contributor is one ranked row of a report.
type Contributor struct {
	Login string `json:"login"`
	ContributorStats
}

// Ranked returns the contributors sorted by Total descending.
// Ties fall back to Participated descending, then to the login.
func (s Stats) Ranked() []Contributor {
	ranked := make([]Contributor, 0, len(s))
	for login, v := range s {
		ranked = append(ranked, Contributor{Login: login, ContributorStats: v})
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Total() != b.Total() {
			return a.Total() > b.Total()
		}
		if a.Participated != b.Participated {
			return a.Participated > b.Participated
		}
		la, lb := strings.ToLower(a.Login), strings.ToLower(b.Login)
		if la != lb {
			return la < lb
		}
		return a.Login < b.Login
	})
	return ranked
}

// IgnoreSet holds logins that must never be attributed any activity.
// GitHub logins are case-insensitive, so membership is too.
type IgnoreSet map[string]struct{}

// NewIgnoreSet builds an IgnoreSet from the given logins.
func NewIgnoreSet(logins ...string) IgnoreSet {
	set := make(IgnoreSet, len(logins))
	for _, login := range logins {
		if login = strings.TrimSpace(login); login != "" {
			set[strings.ToLower(login)] = struct{}{}
		}
	}
	return set
}

// Contains reports whether login is ignored. A nil set ignores nobody.
func (s IgnoreSet) Contains(login string) bool {
	_, ok := s[strings.ToLower(login)]
	return ok
}
