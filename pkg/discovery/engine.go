package discovery

import (
	"context"
	"log/slog"
	"time"

	gcderrors "github.com/tristanpoland/GCD/pkg/errors"
	"github.com/tristanpoland/GCD/pkg/git"
	"github.com/tristanpoland/GCD/pkg/index"
)

// Engine orchestrates scans and keeps the persisted index in step with them.
// Every mutating operation holds the writer lock for its whole
// load-modify-save cycle and saves exactly once, at the end.
type Engine struct {
	Store   index.Store
	Scanner *Scanner
	Logger  *slog.Logger
	Now     func() time.Time
}

// NewEngine creates a new discovery engine
func NewEngine(store index.Store, scanner *Scanner, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		Store:   store,
		Scanner: scanner,
		Logger:  logger,
		Now:     time.Now,
	}
}

// Load reads the index, treating a corrupt store as empty.
func (e *Engine) Load() (*index.Index, error) {
	return index.Load(e.Store, e.Logger)
}

// Save persists x.
func (e *Engine) Save(x *index.Index) error {
	return e.Store.Save(x)
}

// Build replaces everything indexed under root with the result of a fresh
// scan. Records outside root are untouched.
func (e *Engine) Build(ctx context.Context, root string) (*Result, error) {
	return e.scan(ctx, root, true)
}

// Update merges a scan of root into the index. Records under root that were
// not found are removed only if their marker is gone; records that still
// hold one (excluded, or beyond max depth) are kept as they are.
func (e *Engine) Update(ctx context.Context, root string) (*Result, error) {
	return e.scan(ctx, root, false)
}

func (e *Engine) scan(ctx context.Context, root string, rebuild bool) (*Result, error) {
	start := time.Now()

	walk, err := e.Scanner.Walk(root)
	if err != nil {
		return nil, err
	}

	unlock, err := e.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	x, err := e.Load()
	if err != nil {
		return nil, err
	}

	var found []string
	for path := range walk.Repos(ctx) {
		e.Logger.Debug("found repository", "path", path)
		found = append(found, path)
	}
	if err := walk.Err(); err != nil {
		// Leave the saved index as it was
		return nil, gcderrors.Wrap(err, "scan interrupted")
	}

	result := &Result{
		Root:     walk.Root(),
		Warnings: walk.Warnings(),
		Scanned:  walk.Scanned(),
	}

	seen := make(map[string]bool, len(found))
	now := e.Now()
	for _, path := range found {
		seen[path] = true
		if x.Touch(path, now) {
			result.Refreshed = append(result.Refreshed, path)
			continue
		}
		x.Put(index.NewRecord(path, now))
		result.Added = append(result.Added, path)
	}

	for _, r := range x.Under(walk.Root()) {
		if seen[r.Path] {
			continue
		}
		if !rebuild && git.IsWorkingDir(r.Path, e.Scanner.Markers) {
			continue
		}
		x.Remove(r.Path)
		result.Removed = append(result.Removed, r.Path)
	}

	if err := e.Save(x); err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)
	return result, nil
}

// Prune drops every record whose directory no longer holds a marker,
// wherever it is.
func (e *Engine) Prune(ctx context.Context) (*Result, error) {
	start := time.Now()

	unlock, err := e.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	x, err := e.Load()
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, r := range x.Records() {
		if err := ctx.Err(); err != nil {
			return nil, gcderrors.Wrap(err, "prune interrupted")
		}
		result.Scanned++
		if git.IsWorkingDir(r.Path, e.Scanner.Markers) {
			continue
		}
		x.Remove(r.Path)
		result.Removed = append(result.Removed, r.Path)
	}

	if len(result.Removed) > 0 {
		if err := e.Save(x); err != nil {
			return nil, err
		}
	}

	result.Duration = time.Since(start)
	return result, nil
}

func (e *Engine) lock() (func(), error) {
	l := index.NewLock(e.Store.Path())
	if err := l.Lock(); err != nil {
		return nil, err
	}
	return func() {
		if err := l.Unlock(); err != nil {
			e.Logger.Warn("failed to release index lock", "error", err)
		}
	}, nil
}
