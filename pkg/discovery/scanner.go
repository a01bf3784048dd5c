package discovery

import (
	"context"
	"iter"
	"log/slog"
	"os"
	"path/filepath"

	gcderrors "github.com/tristanpoland/GCD/pkg/errors"
	"github.com/tristanpoland/GCD/pkg/git"
)

// DefaultExclusions are directory names never descended into.
var DefaultExclusions = []string{"node_modules", "target", "vendor"}

// Scanner finds working directories below a root
type Scanner struct {
	MaxDepth   int // 0 means unlimited
	Markers    []string
	Exclusions map[string]bool
	Logger     *slog.Logger
}

// NewScanner creates a new scanner. Nil markers or exclusions fall back to
// the defaults.
func NewScanner(markers, exclude []string, depth int, logger *slog.Logger) *Scanner {
	if markers == nil {
		markers = git.DefaultMarkers
	}
	if exclude == nil {
		exclude = DefaultExclusions
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	exclusions := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		exclusions[name] = true
	}

	return &Scanner{
		MaxDepth:   depth,
		Markers:    markers,
		Exclusions: exclusions,
		Logger:     logger,
	}
}

// Walk validates root and returns a lazy traversal of it. Nothing below the
// root is read until the walk is consumed.
func (s *Scanner) Walk(root string) (*Walk, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, gcderrors.NewRootErrorWithCause(root, "cannot resolve path", err)
	}

	// Resolve symlinks for root only; links below it are never followed
	realRoot, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, gcderrors.NewRootErrorWithCause(root, "does not exist", err)
	}

	info, err := os.Stat(realRoot)
	if err != nil {
		return nil, gcderrors.NewRootErrorWithCause(root, "cannot stat", err)
	}
	if !info.IsDir() {
		return nil, gcderrors.NewRootError(root, "not a directory")
	}

	return &Walk{
		scanner: s,
		root:    realRoot,
		stack:   []frame{{path: realRoot}},
	}, nil
}

type frame struct {
	path  string
	depth int
}

// Walk is a single depth-first traversal. It can be consumed once; a
// drained walk yields nothing further.
type Walk struct {
	scanner  *Scanner
	root     string
	stack    []frame
	scanned  int
	warnings []Warning
	err      error
}

// Root returns the absolute, symlink-resolved root of the walk.
func (w *Walk) Root() string {
	return w.root
}

// Repos yields working-directory paths in lexical depth-first order. The
// walk stops early when ctx is cancelled; check Err afterwards.
func (w *Walk) Repos(ctx context.Context) iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			path, ok := w.next(ctx)
			if !ok || !yield(path) {
				return
			}
		}
	}
}

// Scanned returns the number of directories visited so far.
func (w *Walk) Scanned() int {
	return w.scanned
}

// Warnings returns the directories that could not be read.
func (w *Walk) Warnings() []Warning {
	return w.warnings
}

// Err returns the context error that interrupted the walk, if any.
func (w *Walk) Err() error {
	return w.err
}

func (w *Walk) next(ctx context.Context) (string, bool) {
	s := w.scanner

	for len(w.stack) > 0 {
		if err := ctx.Err(); err != nil {
			w.err = err
			w.stack = nil
			return "", false
		}

		f := w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]
		w.scanned++

		// A working directory is emitted and never descended into, so
		// nested checkouts are not indexed separately
		if git.IsWorkingDir(f.path, s.Markers) {
			return f.path, true
		}

		if s.MaxDepth > 0 && f.depth >= s.MaxDepth {
			continue
		}

		entries, err := os.ReadDir(f.path)
		if err != nil {
			w.warnings = append(w.warnings, Warning{Path: f.path, Err: err})
			s.Logger.Warn("skipping unreadable directory", "path", f.path, "error", err)
			if len(entries) == 0 {
				continue
			}
		}

		// Push in reverse so children pop in lexical order
		for i := len(entries) - 1; i >= 0; i-- {
			e := entries[i]
			// DirEntry types come from lstat, so symlinks are never IsDir
			if !e.IsDir() {
				continue
			}
			if s.Exclusions[e.Name()] || git.IsMarker(e.Name(), s.Markers) {
				continue
			}
			w.stack = append(w.stack, frame{path: filepath.Join(f.path, e.Name()), depth: f.depth + 1})
		}
	}

	return "", false
}
