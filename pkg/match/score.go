package match

import (
	"strings"
	"unicode/utf8"
)

// Tier classifies how a query corresponds to a candidate string. Higher
// tiers always outrank lower ones.
type Tier int

const (
	TierNone Tier = iota
	TierSubsequence
	TierSubstring
	TierPrefix
	TierExact
)

func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierPrefix:
		return "prefix"
	case TierSubstring:
		return "substring"
	case TierSubsequence:
		return "subsequence"
	default:
		return "none"
	}
}

// Tier bases. Each tier's scores stay inside [base, base+999] so tiers never
// overlap.
const (
	baseExact       = 4000
	basePrefix      = 3000
	baseSubstring   = 2000
	baseSubsequence = 1000

	gapPenalty     = 20 // per run of skipped characters
	skipPenalty    = 2  // per skipped character
	coverageWeight = 5  // subsequence scores lean on coverage to favour short names
)

// coverage is the share of the candidate consumed by the query, 0..100.
func coverage(query, s string) int {
	n := utf8.RuneCountInString(s)
	if n == 0 {
		return 0
	}
	return 100 * utf8.RuneCountInString(query) / n
}

// score ranks a lowercased query against a lowercased candidate s. matched
// holds the rune positions of s aligned with each query character; it is
// only consulted for subsequence matches. A zero tier means no match.
func score(query, s string, matched []int) (int, Tier) {
	cov := coverage(query, s)

	switch {
	case s == query:
		return baseExact + cov, TierExact
	case strings.HasPrefix(s, query):
		return basePrefix + cov, TierPrefix
	}

	if pos := strings.Index(s, query); pos >= 0 {
		pos = utf8.RuneCountInString(s[:pos])
		return clamp(baseSubstring+cov-pos, baseSubstring, baseSubstring+999), TierSubstring
	}

	if len(matched) == 0 {
		return 0, TierNone
	}

	gaps, skipped := gapStats(matched)
	sc := baseSubsequence + coverageWeight*cov - gapPenalty*gaps - skipPenalty*skipped
	// Never reach the substring tier, never drop to zero
	return clamp(sc, 1, baseSubstring-1), TierSubsequence
}

// gapStats counts the breaks between consecutive matched positions and the
// total number of characters skipped inside them.
func gapStats(matched []int) (gaps, skipped int) {
	for i := 1; i < len(matched); i++ {
		if d := matched[i] - matched[i-1] - 1; d > 0 {
			gaps++
			skipped += d
		}
	}
	return gaps, skipped
}

// align returns the rune positions in s of the subsequence alignment of
// query with the smallest gap penalty, preferring the leftmost on ties. It
// returns nil when query is not a subsequence of s.
func align(query, s string) []int {
	q, r := []rune(query), []rune(s)
	m, n := len(q), len(r)
	if m == 0 || m > n {
		return nil
	}

	const unreachable = -1
	// cost[i][j] is the least penalty of aligning q[:i+1] with q[i] at r[j];
	// from[i][j] is where q[i-1] sat on that path.
	cost := make([][]int, m)
	from := make([][]int, m)
	for i := range m {
		cost[i] = make([]int, n)
		from[i] = make([]int, n)
		for j := range n {
			cost[i][j] = unreachable
			if r[j] != q[i] {
				continue
			}
			if i == 0 {
				cost[i][j] = 0
				continue
			}
			for k := i - 1; k < j; k++ {
				if cost[i-1][k] == unreachable {
					continue
				}
				c := cost[i-1][k]
				if d := j - k - 1; d > 0 {
					c += gapPenalty + skipPenalty*d
				}
				if cost[i][j] == unreachable || c < cost[i][j] {
					cost[i][j] = c
					from[i][j] = k
				}
			}
		}
	}

	end := unreachable
	for j := range n {
		if c := cost[m-1][j]; c != unreachable && (end == unreachable || c < cost[m-1][end]) {
			end = j
		}
	}
	if end == unreachable {
		return nil
	}

	matched := make([]int, m)
	for i := m - 1; i >= 0; i-- {
		matched[i] = end
		end = from[i][end]
	}
	return matched
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
