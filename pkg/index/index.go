// Package index holds the set of known working directories and persists it.
//
// An Index is a plain in-memory value keyed by absolute path. It is loaded
// from a Store once per process, mutated by the discovery engine and handed
// read-only to the matcher. There is no package-level state.
package index

import (
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Record is one indexed working directory.
type Record struct {
	Path     string    `json:"path"`                // Absolute path to the working-directory root
	Name     string    `json:"name"`                // Last path segment, the primary match key
	LastSeen time.Time `json:"last_seen,omitzero"` // Last scan that confirmed the marker
}

// NewRecord builds a record for path, deriving its name from the last
// path segment.
func NewRecord(path string, seen time.Time) Record {
	path = filepath.Clean(path)
	return Record{Path: path, Name: filepath.Base(path), LastSeen: seen}
}

// Index is the in-memory set of records, unique by path.
type Index struct {
	records map[string]Record
}

// New returns an empty index.
func New() *Index {
	return &Index{records: make(map[string]Record)}
}

// Put inserts or replaces the record for r.Path. Paths are cleaned and a
// missing name is derived from the path.
func (x *Index) Put(r Record) {
	r.Path = filepath.Clean(r.Path)
	if r.Name == "" {
		r.Name = filepath.Base(r.Path)
	}
	x.records[r.Path] = r
}

// Get returns the record stored for path.
func (x *Index) Get(path string) (Record, bool) {
	r, ok := x.records[filepath.Clean(path)]
	return r, ok
}

// Remove deletes the record for path and reports whether it existed.
func (x *Index) Remove(path string) bool {
	path = filepath.Clean(path)
	if _, ok := x.records[path]; !ok {
		return false
	}
	delete(x.records, path)
	return true
}

// Touch refreshes LastSeen for an existing record.
func (x *Index) Touch(path string, seen time.Time) bool {
	path = filepath.Clean(path)
	r, ok := x.records[path]
	if !ok {
		return false
	}
	r.LastSeen = seen
	x.records[path] = r
	return true
}

// Len returns the number of records.
func (x *Index) Len() int {
	return len(x.records)
}

// Records returns all records sorted by path.
func (x *Index) Records() []Record {
	out := make([]Record, 0, len(x.records))
	for _, r := range x.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Under returns the records located at root or anywhere below it, sorted
// by path.
func (x *Index) Under(root string) []Record {
	var out []Record
	for _, r := range x.Records() {
		if Within(r.Path, root) {
			out = append(out, r)
		}
	}
	return out
}

// Within reports whether path equals root or lies inside it. Both are
// compared as cleaned paths, so "/src/app2" is not within "/src/app".
func Within(path, root string) bool {
	path = filepath.Clean(path)
	root = filepath.Clean(root)
	if path == root {
		return true
	}
	if !strings.HasSuffix(root, string(filepath.Separator)) {
		root += string(filepath.Separator)
	}
	return strings.HasPrefix(path, root)
}
