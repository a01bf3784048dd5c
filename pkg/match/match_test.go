package match

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gcderrors "github.com/tristanpoland/GCD/pkg/errors"
	"github.com/tristanpoland/GCD/pkg/index"
)

var seen = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newIndex(paths ...string) *index.Index {
	x := index.New()
	for _, p := range paths {
		x.Put(index.NewRecord(p, seen))
	}
	return x
}

func paths(candidates []Candidate) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.Record.Path
	}
	return out
}

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		s       string
		matched []int
		want    int
		tier    Tier
	}{
		{name: "exact", query: "gcd", s: "gcd", want: 4100, tier: TierExact},
		{name: "prefix", query: "awe", s: "awesome-project", want: 3020, tier: TierPrefix},
		{name: "substring", query: "some", s: "awesome", want: 2054, tier: TierSubstring},
		{name: "subsequence", query: "awp", s: "awesome-project", matched: []int{0, 1, 8}, want: 1068, tier: TierSubsequence},
		{name: "subsequence floor", query: "az", s: "a" + strings.Repeat("x", 600) + "z", matched: []int{0, 601}, want: 1, tier: TierSubsequence},
		{name: "no alignment", query: "xyz", s: "awesome", tier: TierNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, tier := score(tt.query, tt.s, tt.matched)
			assert.Equal(t, tt.tier, tier)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScore_TiersDoNotOverlap(t *testing.T) {
	exact, tier := score("ab", "ab", []int{0, 1})
	require.Equal(t, TierExact, tier)
	assert.GreaterOrEqual(t, exact, baseExact)

	seq, tier := score("ac", "abc", []int{0, 2})
	require.Equal(t, TierSubsequence, tier)

	str, tier := score("c", "abc", nil)
	require.Equal(t, TierSubstring, tier)
	assert.Greater(t, str, seq)
	assert.Less(t, seq, baseSubstring)
}

func TestGapStats(t *testing.T) {
	gaps, skipped := gapStats([]int{0, 1, 2})
	assert.Zero(t, gaps)
	assert.Zero(t, skipped)

	gaps, skipped = gapStats([]int{0, 3, 4, 9})
	assert.Equal(t, 2, gaps)
	assert.Equal(t, 6, skipped)
}

func TestAlign(t *testing.T) {
	tests := []struct {
		name  string
		query string
		s     string
		want  []int
	}{
		{name: "contiguous", query: "awe", s: "awesome", want: []int{0, 1, 2}},
		{name: "leftmost on tie", query: "ab", s: "abab", want: []int{0, 1}},
		{name: "adjacent pair later", query: "ab", s: "axbab", want: []int{3, 4}},
		{name: "tight later run", query: "awp", s: "azzzzawzp", want: []int{5, 6, 8}},
		{name: "fewer gaps", query: "ace", s: "a-c-e-ace", want: []int{6, 7, 8}},
		{name: "multibyte runes", query: "éb", s: "é-éb", want: []int{2, 3}},
		{name: "not a subsequence", query: "xyz", s: "awesome"},
		{name: "query longer", query: "abcd", s: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, align(tt.query, tt.s))
		})
	}
}

func TestMatcher_ScoresBestAlignment(t *testing.T) {
	// Scanning left to right pairs "awp" with a0 w6 p8 in the first name;
	// a5 w6 p8 is tighter than anything the second name allows
	x := newIndex("/src/azzzzawzp", "/src/azwzzzzpz")

	got := NewMatcher(true).Match(x, "awp")
	require.Len(t, got, 2)
	assert.Equal(t, []string{"/src/azzzzawzp", "/src/azwzzzzpz"}, paths(got))
	assert.Equal(t, 1143, got[0].Score)
	assert.Equal(t, 1115, got[1].Score)
}

func TestMatcher_AwesomeProject(t *testing.T) {
	x := newIndex("/home/u/projects/awesome-project", "/home/u/other/awesome-proj2")
	m := NewMatcher(true)

	got, err := m.Resolve(x, "awesome-project")
	require.NoError(t, err)
	assert.Equal(t, "/home/u/projects/awesome-project", got.Record.Path)
	assert.Equal(t, TierExact, got.Tier)

	// Both names align the same way; the shorter name covers more
	first, err := m.Resolve(x, "awp")
	require.NoError(t, err)
	assert.Equal(t, "/home/u/other/awesome-proj2", first.Record.Path)
	assert.Equal(t, TierSubsequence, first.Tier)

	for range 10 {
		again, err := m.Resolve(x, "awp")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestMatcher_ExactWinsCaseInsensitive(t *testing.T) {
	x := newIndex("/src/GCD", "/src/gcd-tools", "/src/my-gcd")
	m := NewMatcher(true)

	for _, q := range []string{"gcd", "GCD", "Gcd", "  gCd "} {
		got := m.Match(x, q)
		require.NotEmpty(t, got, q)
		assert.Equal(t, "/src/GCD", got[0].Record.Path, q)
		assert.Equal(t, TierExact, got[0].Tier, q)
	}
}

func TestMatcher_TierOrdering(t *testing.T) {
	x := newIndex(
		"/src/api-server",   // subsequence of "apis"
		"/src/apis",         // exact
		"/src/apis-gateway", // prefix
		"/src/old-apis",     // substring
	)

	got := NewMatcher(true).Match(x, "apis")
	assert.Equal(t, []string{"/src/apis", "/src/apis-gateway", "/src/old-apis", "/src/api-server"}, paths(got))

	tiers := make([]Tier, len(got))
	for i, c := range got {
		tiers[i] = c.Tier
	}
	assert.Equal(t, []Tier{TierExact, TierPrefix, TierSubstring, TierSubsequence}, tiers)
}

func TestMatcher_SubsequenceBelowSubstring(t *testing.T) {
	// "core" is contiguous in the long name and only scattered in the short one
	x := newIndex("/src/c-o-r-e", "/src/platform-core-services-monorepo")

	got := NewMatcher(true).Match(x, "core")
	require.Len(t, got, 2)
	assert.Equal(t, "/src/platform-core-services-monorepo", got[0].Record.Path)
	assert.Equal(t, TierSubstring, got[0].Tier)
	assert.Equal(t, TierSubsequence, got[1].Tier)
}

func TestMatcher_TighterClusterScoresHigher(t *testing.T) {
	x := newIndex("/src/abxc", "/src/axxc")

	got := NewMatcher(true).Match(x, "abc")
	require.Len(t, got, 1, "axxc has no b")

	x = newIndex("/src/ab-c-x", "/src/a-b-c-")
	got = NewMatcher(true).Match(x, "abc")
	require.Len(t, got, 2)
	assert.Equal(t, "/src/ab-c-x", got[0].Record.Path)
	assert.Greater(t, got[0].Score, got[1].Score)
}

func TestMatcher_NoMatch(t *testing.T) {
	x := newIndex("/home/u/projects/awesome-project", "/home/u/other/awesome-proj2")

	_, err := NewMatcher(true).Resolve(x, "xyz123notarepo")
	require.Error(t, err)
	assert.True(t, gcderrors.IsNoMatchError(err))
	assert.Equal(t, gcderrors.ExitNoMatch, gcderrors.ExitCode(err))

	var nm *gcderrors.NoMatchError
	require.ErrorAs(t, err, &nm)
	assert.Equal(t, "xyz123notarepo", nm.Query)
	assert.Equal(t, 2, nm.Indexed)
}

func TestMatcher_EmptyQuery(t *testing.T) {
	x := newIndex("/src/app")
	m := NewMatcher(true)

	assert.Empty(t, m.Match(x, ""))
	assert.Empty(t, m.Match(x, "   \t"))

	_, err := m.Resolve(x, "")
	assert.True(t, gcderrors.IsNoMatchError(err))
}

func TestMatcher_EmptyIndex(t *testing.T) {
	_, err := NewMatcher(true).Resolve(index.New(), "app")
	var nm *gcderrors.NoMatchError
	require.ErrorAs(t, err, &nm)
	assert.Zero(t, nm.Indexed)
}

func TestMatcher_PathFallback(t *testing.T) {
	x := newIndex("/work/clients/acme/site", "/work/internal/tools")

	t.Run("used when no name matches", func(t *testing.T) {
		got := NewMatcher(true).Match(x, "acme")
		require.Len(t, got, 1)
		assert.Equal(t, "/work/clients/acme/site", got[0].Record.Path)
		assert.Equal(t, FieldPath, got[0].Field)
	})

	t.Run("ignored when some name matches", func(t *testing.T) {
		got := NewMatcher(true).Match(x, "tools")
		require.Len(t, got, 1)
		assert.Equal(t, FieldName, got[0].Field)
	})

	t.Run("disabled", func(t *testing.T) {
		assert.Empty(t, NewMatcher(false).Match(x, "acme"))
	})
}

func TestCompare_TieBreak(t *testing.T) {
	older := seen.Add(-time.Hour)

	tests := []struct {
		name string
		a, b Candidate
	}{
		{
			name: "higher score",
			a:    Candidate{Score: 2050, Record: index.Record{Path: "/zzz/long/path/app", LastSeen: older}},
			b:    Candidate{Score: 2049, Record: index.Record{Path: "/a/app", LastSeen: seen}},
		},
		{
			name: "more recently seen",
			a:    Candidate{Score: 4100, Record: index.Record{Path: "/zzz/long/path/app", LastSeen: seen}},
			b:    Candidate{Score: 4100, Record: index.Record{Path: "/a/app", LastSeen: older}},
		},
		{
			name: "shorter path",
			a:    Candidate{Score: 4100, Record: index.Record{Path: "/z/app", LastSeen: seen}},
			b:    Candidate{Score: 4100, Record: index.Record{Path: "/aa/app", LastSeen: seen}},
		},
		{
			name: "lexicographic path",
			a:    Candidate{Score: 4100, Record: index.Record{Path: "/a/app", LastSeen: seen}},
			b:    Candidate{Score: 4100, Record: index.Record{Path: "/b/app", LastSeen: seen}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Negative(t, Compare(tt.a, tt.b))
			assert.Positive(t, Compare(tt.b, tt.a))

			ranked := []Candidate{tt.b, tt.a}
			Rank(ranked)
			assert.Equal(t, tt.a.Record.Path, ranked[0].Record.Path)
		})
	}
}

func TestMatcher_SharedNamesResolveDeterministically(t *testing.T) {
	x := index.New()
	x.Put(index.NewRecord("/home/u/work/app", seen.Add(-time.Hour)))
	x.Put(index.NewRecord("/home/u/app", seen.Add(-time.Hour)))
	x.Put(index.NewRecord("/home/u/old/deep/app", seen))

	got, err := NewMatcher(true).Resolve(x, "app")
	require.NoError(t, err)
	assert.Equal(t, "/home/u/old/deep/app", got.Record.Path, "most recently seen wins among equal scores")

	x.Touch("/home/u/old/deep/app", seen.Add(-time.Hour))
	got, err = NewMatcher(true).Resolve(x, "app")
	require.NoError(t, err)
	assert.Equal(t, "/home/u/app", got.Record.Path, "then the shortest path")
}
