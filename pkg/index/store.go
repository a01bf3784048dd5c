package index

import (
	"fmt"
	"log/slog"

	gcderrors "github.com/tristanpoland/GCD/pkg/errors"
)

// Store persists an Index.
type Store interface {
	// Load reads the index. Missing storage yields an empty index and no
	// error. Undecodable storage yields an empty index together with a
	// corrupt StoreError; other failures return a StoreError and no index.
	Load() (*Index, error)
	// Save replaces the persisted index with x.
	Save(x *Index) error
	// Path returns the storage location.
	Path() string
}

// Open returns the Store for the named backend ("json" or "sqlite").
func Open(backend, path string) (Store, error) {
	switch backend {
	case "", "json":
		return NewJSONStore(path), nil
	case "sqlite":
		return NewSQLiteStore(path), nil
	default:
		return nil, gcderrors.NewConfigError("index.backend", fmt.Sprintf("unknown backend %q", backend))
	}
}

// Load reads s, recovering from corruption by starting over with an empty
// index so the user can always re-index. Corruption is logged, I/O failures
// are returned.
func Load(s Store, logger *slog.Logger) (*Index, error) {
	x, err := s.Load()
	if err == nil {
		return x, nil
	}
	if gcderrors.IsCorrupt(err) {
		logger.Warn("index is unreadable, starting with an empty index", "path", s.Path(), "error", err)
		return New(), nil
	}
	return nil, err
}
