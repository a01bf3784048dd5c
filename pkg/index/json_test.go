package index

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeIndexFile(t *testing.T, content string) *JSONStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return NewJSONStore(path)
}

func TestJSONStore_ForwardCompatible(t *testing.T) {
	s := writeIndexFile(t, `{
  "version": 7,
  "future_setting": {"a": 1},
  "repos": [
    {"path": "/src/app", "name": "app", "last_seen": "2026-02-01T10:00:00Z", "stars": 3},
    {"path": "/src/lib"},
    {"name": "pathless"}
  ]
}`)

	x, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, 2, x.Len())

	app, ok := x.Get("/src/app")
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC), app.LastSeen)

	lib, ok := x.Get("/src/lib")
	require.True(t, ok)
	assert.Equal(t, "lib", lib.Name)
	assert.True(t, lib.LastSeen.IsZero())
}

func TestJSONStore_LegacyLayout(t *testing.T) {
	s := writeIndexFile(t, `{"repos": {"gcd": "/home/u/src/gcd", "dotfiles": "/home/u/dotfiles"}}`)

	x, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, 2, x.Len())

	r, ok := x.Get("/home/u/dotfiles")
	require.True(t, ok)
	assert.Equal(t, "dotfiles", r.Name)
}

func TestJSONStore_EmptyFile(t *testing.T) {
	s := writeIndexFile(t, "  \n")

	x, err := s.Load()
	require.NoError(t, err)
	assert.Zero(t, x.Len())
}

func TestJSONStore_NullRepos(t *testing.T) {
	s := writeIndexFile(t, `{"version": 1, "repos": null}`)

	x, err := s.Load()
	require.NoError(t, err)
	assert.Zero(t, x.Len())
}

func TestJSONStore_SaveFormat(t *testing.T) {
	s := NewJSONStore(filepath.Join(t.TempDir(), "index.json"))

	x := New()
	x.Put(NewRecord("/src/app", time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)))
	x.Put(Record{Path: "/src/unseen"})
	require.NoError(t, s.Save(x))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, `"version": 1`)
	assert.Contains(t, out, `"path": "/src/app"`)
	assert.Contains(t, out, `"last_seen": "2026-02-01T10:00:00Z"`)
	// Zero timestamps are omitted rather than written as year 1
	assert.Equal(t, 1, strings.Count(out, "last_seen"))

	// No temp files left behind
	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
