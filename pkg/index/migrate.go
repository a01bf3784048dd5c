package index

import (
	"os"
	"path/filepath"

	gcderrors "github.com/tristanpoland/GCD/pkg/errors"
)

// MigrateLegacy seeds dst from the name-to-path file written by earlier
// releases. It only acts when dst has never been written and the legacy
// file holds at least one entry, and reports whether it copied anything.
// The legacy file is left in place.
func MigrateLegacy(dst Store, legacyPath string) (bool, error) {
	if filepath.Clean(legacyPath) == filepath.Clean(dst.Path()) {
		return false, nil
	}
	if _, err := os.Stat(dst.Path()); !os.IsNotExist(err) {
		return false, nil
	}
	if _, err := os.Stat(legacyPath); err != nil {
		return false, nil
	}

	x, err := NewJSONStore(legacyPath).Load()
	if err != nil {
		return false, err
	}
	if x.Len() == 0 {
		return false, nil
	}

	lock := NewLock(dst.Path())
	if err := lock.Lock(); err != nil {
		return false, err
	}
	defer lock.Unlock()

	// Another process may have written the index while we waited
	if _, err := os.Stat(dst.Path()); !os.IsNotExist(err) {
		return false, nil
	}

	if err := dst.Save(x); err != nil {
		return false, gcderrors.Wrap(err, "failed to migrate legacy index")
	}
	return true, nil
}
