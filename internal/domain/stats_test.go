package domain

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomFragments(r *rand.Rand, n int) []Stats {
	logins := []string{"alice", "bob", "carol", "dave", "erin", "frank"}
	fragments := make([]Stats, n)
	for i := range fragments {
		fragment := make(Stats)
		for _, login := range logins {
			if r.Intn(2) == 0 {
				continue
			}
			fragment[login] = ContributorStats{
				Comments:       r.Intn(5),
				ReviewComments: r.Intn(5),
				Participated:   1,
			}
		}
		fragments[i] = fragment
	}
	return fragments
}

func fold(fragments []Stats) Stats {
	total := make(Stats)
	for _, f := range fragments {
		total.Add(f)
	}
	return total
}

func TestMerge_OrderDoesNotMatter(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for round := 0; round < 20; round++ {
		fragments := randomFragments(r, 1+r.Intn(12))
		want := fold(fragments)

		for perm := 0; perm < 10; perm++ {
			shuffled := append([]Stats(nil), fragments...)
			r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
			assert.Equal(t, want, fold(shuffled), "round %d permutation %d", round, perm)
		}
	}
}

func TestMerge_PartitionIndependence(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for round := 0; round < 50; round++ {
		fragments := randomFragments(r, 2+r.Intn(10))
		split := r.Intn(len(fragments) + 1)

		left, right := fold(fragments[:split]), fold(fragments[split:])

		assert.Equal(t, fold(fragments), Merge(left, right))
		assert.Equal(t, Merge(left, right), Merge(right, left))
	}
}

func TestMerge_IdentityAndPurity(t *testing.T) {
	a := Stats{"alice": {Comments: 2, Participated: 1}}
	b := Stats{"alice": {ReviewComments: 1, Participated: 1}, "bob": {Comments: 1, Participated: 1}}

	assert.Equal(t, a, Merge(a, Stats{}))
	assert.Equal(t, a, Merge(nil, a))

	merged := Merge(a, b)
	assert.Equal(t, Stats{
		"alice": {Comments: 2, ReviewComments: 1, Participated: 2},
		"bob":   {Comments: 1, Participated: 1},
	}, merged)
	assert.Equal(t, Stats{"alice": {Comments: 2, Participated: 1}}, a, "operands must not change")
}

func TestStats_Ranked(t *testing.T) {
	stats := Stats{
		"bob":   {Comments: 1, ReviewComments: 2, Participated: 1},
		"Carol": {Comments: 3, Participated: 1},
		"alice": {Comments: 3, Participated: 1},
		"dave":  {ReviewComments: 3, Participated: 3},
		"erin":  {Comments: 10, Participated: 4},
	}

	var order []string
	for _, c := range stats.Ranked() {
		order = append(order, c.Login)
	}

	assert.Equal(t, []string{"erin", "dave", "alice", "bob", "Carol"}, order)
	assert.Empty(t, Stats{}.Ranked())
}

func TestIgnoreSet(t *testing.T) {
	set := NewIgnoreSet("Dependabot[bot]", " ", "rust-highfive")

	assert.True(t, set.Contains("dependabot[bot]"))
	assert.True(t, set.Contains("RUST-HIGHFIVE"))
	assert.False(t, set.Contains("alice"))
	assert.False(t, set.Contains(""))
	assert.False(t, IgnoreSet(nil).Contains("alice"))
}

func TestCutoff(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	cutoff := NewCutoff(now, 14*24*time.Hour)

	assert.Equal(t, time.Date(2026, 10, 5, 12, 0, 0, 0, time.UTC), cutoff.Time())
	assert.Equal(t, "2026-10-05", cutoff.Date())
	assert.True(t, cutoff.Includes(cutoff.Time()))
	assert.False(t, cutoff.Includes(cutoff.Time().Add(-time.Microsecond)))
	assert.True(t, cutoff.Includes(now))
}

func TestParseRepoFullName(t *testing.T) {
	owner, repo, err := ParseRepoFullName("rust-lang/rust")
	require.NoError(t, err)
	assert.Equal(t, "rust-lang", owner)
	assert.Equal(t, "rust", repo)

	for _, bad := range []string{"", "rust", "/rust", "rust-lang/", "a/b/c"} {
		t.Run(fmt.Sprintf("invalid %q", bad), func(t *testing.T) {
			_, _, err := ParseRepoFullName(bad)
			assert.ErrorIs(t, err, ErrMalformedResource)
		})
	}
}
