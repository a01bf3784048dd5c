package git

import (
	"os"
	"path/filepath"
)

// DefaultMarkers are the metadata entries that identify a working directory.
var DefaultMarkers = []string{".git"}

// IsWorkingDir checks if path is the root of a version-control checkout,
// i.e. it directly contains one of the marker entries. A marker may be a
// directory (regular clone) or a file (git worktree or submodule gitlink).
// Markers that are symlinks do not count.
func IsWorkingDir(path string, markers []string) bool {
	return Marker(path, markers) != ""
}

// Marker returns the name of the first marker present in path, or "" if
// path is not a working directory.
func Marker(path string, markers []string) string {
	if len(markers) == 0 {
		markers = DefaultMarkers
	}
	for _, m := range markers {
		info, err := os.Lstat(filepath.Join(path, m))
		if err != nil {
			continue
		}
		if info.IsDir() || info.Mode().IsRegular() {
			return m
		}
	}
	return ""
}

// IsMarker reports whether name is one of the marker entry names.
func IsMarker(name string, markers []string) bool {
	if len(markers) == 0 {
		markers = DefaultMarkers
	}
	for _, m := range markers {
		if name == m {
			return true
		}
	}
	return false
}
