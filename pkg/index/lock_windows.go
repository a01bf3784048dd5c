//go:build windows

package index

// Lock is a no-op on Windows; concurrent writers are not guarded there.
type Lock struct {
	path string
}

// NewLock creates the writer lock for the index stored at indexPath.
func NewLock(indexPath string) *Lock {
	return &Lock{path: indexPath + ".lock"}
}

// Lock does nothing on Windows.
func (l *Lock) Lock() error {
	return nil
}

// Unlock does nothing on Windows.
func (l *Lock) Unlock() error {
	return nil
}
