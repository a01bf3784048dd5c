//go:build !windows

package index

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	gcderrors "github.com/tristanpoland/GCD/pkg/errors"
)

// Lock serialises index writers across processes with an advisory flock on
// a sibling "<index>.lock" file.
type Lock struct {
	path string
	file *os.File
}

// NewLock creates the writer lock for the index stored at indexPath.
func NewLock(indexPath string) *Lock {
	return &Lock{path: indexPath + ".lock"}
}

// Lock acquires the exclusive lock, blocking until it is available.
func (l *Lock) Lock() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return gcderrors.NewStoreError("lock", l.path, err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return gcderrors.NewStoreError("lock", l.path, err)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		f.Close()
		return gcderrors.NewStoreError("lock", l.path, err)
	}

	l.file = f
	return nil
}

// Unlock releases the lock and closes the lock file.
func (l *Lock) Unlock() error {
	if l.file == nil {
		return nil
	}

	err := unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
	closeErr := l.file.Close()
	l.file = nil
	if err != nil {
		return gcderrors.NewStoreError("unlock", l.path, err)
	}
	return closeErr
}
