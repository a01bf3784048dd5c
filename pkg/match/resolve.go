package match

import (
	"cmp"
	"slices"
)

// Compare orders candidates for resolution: higher score first, then the
// most recently seen, then the shorter path, then the lexically smaller
// path. Paths are unique, so the order is total.
func Compare(a, b Candidate) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	if c := b.Record.LastSeen.Compare(a.Record.LastSeen); c != 0 {
		return c
	}
	if c := cmp.Compare(len(a.Record.Path), len(b.Record.Path)); c != 0 {
		return c
	}
	return cmp.Compare(a.Record.Path, b.Record.Path)
}

// Rank sorts candidates into resolution order in place.
func Rank(candidates []Candidate) {
	slices.SortFunc(candidates, Compare)
}
