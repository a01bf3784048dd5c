// Package match ranks indexed working directories against a query.
//
// Matching is case-insensitive and works on the record name first. Only
// when no name matches at all are full paths considered. Every returned
// candidate has a positive score; records the query cannot be aligned with
// are left out.
package match

import (
	"strings"

	"github.com/sahilm/fuzzy"

	gcderrors "github.com/tristanpoland/GCD/pkg/errors"
	"github.com/tristanpoland/GCD/pkg/index"
)

// Field names the record attribute a candidate matched on.
type Field string

const (
	FieldName Field = "name"
	FieldPath Field = "path"
)

// Candidate is a scored record.
type Candidate struct {
	Record index.Record
	Score  int
	Tier   Tier
	Field  Field
}

// Matcher scores queries against an index.
type Matcher struct {
	PathFallback bool
}

// NewMatcher creates a matcher. With pathFallback set, a query no name
// matches is retried against full paths.
func NewMatcher(pathFallback bool) *Matcher {
	return &Matcher{PathFallback: pathFallback}
}

// Match returns the candidates for query in resolution order, best first.
// An empty or blank query matches nothing.
func (m *Matcher) Match(x *index.Index, query string) []Candidate {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || x == nil || x.Len() == 0 {
		return nil
	}

	records := x.Records()

	candidates := matchField(records, query, FieldName)
	if len(candidates) == 0 && m.PathFallback {
		candidates = matchField(records, query, FieldPath)
	}

	Rank(candidates)
	return candidates
}

// Resolve picks the single best candidate for query. It fails with a
// NoMatchError when nothing matches.
func (m *Matcher) Resolve(x *index.Index, query string) (Candidate, error) {
	candidates := m.Match(x, query)
	if len(candidates) == 0 {
		indexed := 0
		if x != nil {
			indexed = x.Len()
		}
		return Candidate{}, gcderrors.NewNoMatchError(query, indexed)
	}
	return candidates[0], nil
}

// fieldSource adapts records to fuzzy.Source over one lowercased field.
type fieldSource struct {
	values []string
}

func newFieldSource(records []index.Record, field Field) fieldSource {
	values := make([]string, len(records))
	for i, r := range records {
		v := r.Name
		if field == FieldPath {
			v = r.Path
		}
		values[i] = strings.ToLower(v)
	}
	return fieldSource{values: values}
}

func (s fieldSource) String(i int) string { return s.values[i] }
func (s fieldSource) Len() int            { return len(s.values) }

func matchField(records []index.Record, query string, field Field) []Candidate {
	src := newFieldSource(records, field)

	var candidates []Candidate
	for _, fm := range fuzzy.FindFrom(query, src) {
		// fuzzy reports the leftmost alignment; gaps are scored on the tightest
		sc, tier := score(query, fm.Str, align(query, fm.Str))
		if tier == TierNone {
			continue
		}
		candidates = append(candidates, Candidate{
			Record: records[fm.Index],
			Score:  sc,
			Tier:   tier,
			Field:  field,
		})
	}
	return candidates
}
