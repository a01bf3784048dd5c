package git

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsWorkingDir(t *testing.T) {
	tmpDir := t.TempDir()

	clone := filepath.Join(tmpDir, "clone")
	mustMkdir(t, filepath.Join(clone, ".git"))

	worktree := filepath.Join(tmpDir, "worktree")
	mustMkdir(t, worktree)
	mustWriteFile(t, filepath.Join(worktree, ".git"), "gitdir: /elsewhere/.git/worktrees/wt\n")

	hg := filepath.Join(tmpDir, "hg")
	mustMkdir(t, filepath.Join(hg, ".hg"))

	plain := filepath.Join(tmpDir, "plain")
	mustMkdir(t, plain)

	linked := filepath.Join(tmpDir, "linked")
	mustMkdir(t, linked)
	if err := os.Symlink(filepath.Join(clone, ".git"), filepath.Join(linked, ".git")); err != nil {
		t.Logf("Skipping symlink marker case: %v", err)
		linked = ""
	}

	tests := []struct {
		name    string
		path    string
		markers []string
		want    bool
	}{
		{name: "clone with .git dir", path: clone, want: true},
		{name: "worktree with .git file", path: worktree, want: true},
		{name: "plain directory", path: plain, want: false},
		{name: "missing directory", path: filepath.Join(tmpDir, "missing"), want: false},
		{name: "hg ignored by default", path: hg, want: false},
		{name: "hg with custom markers", path: hg, markers: []string{".git", ".hg"}, want: true},
	}
	if linked != "" {
		tests = append(tests, struct {
			name    string
			path    string
			markers []string
			want    bool
		}{name: "symlinked marker", path: linked, want: false})
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWorkingDir(tt.path, tt.markers); got != tt.want {
				t.Errorf("IsWorkingDir(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestMarker(t *testing.T) {
	tmpDir := t.TempDir()
	mustMkdir(t, filepath.Join(tmpDir, ".hg"))

	if got := Marker(tmpDir, []string{".git", ".hg"}); got != ".hg" {
		t.Errorf("Marker() = %q, want %q", got, ".hg")
	}
	if got := Marker(tmpDir, nil); got != "" {
		t.Errorf("Marker() with default markers = %q, want empty", got)
	}
}

func TestIsMarker(t *testing.T) {
	if !IsMarker(".git", nil) {
		t.Error("IsMarker(.git) with defaults = false")
	}
	if IsMarker(".hg", nil) {
		t.Error("IsMarker(.hg) with defaults = true")
	}
	if !IsMarker(".svn", []string{".svn"}) {
		t.Error("IsMarker(.svn) with custom markers = false")
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
}

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
}
