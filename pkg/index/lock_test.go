//go:build !windows

package index

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLock_Exclusive(t *testing.T) {
	indexPath := filepath.Join(t.TempDir(), "index.json")

	first := NewLock(indexPath)
	require.NoError(t, first.Lock())

	_, err := os.Stat(indexPath + ".lock")
	require.NoError(t, err, "lock file should exist")

	acquired := make(chan struct{})
	go func() {
		second := NewLock(indexPath)
		if err := second.Lock(); err != nil {
			t.Errorf("second Lock failed: %v", err)
			close(acquired)
			return
		}
		close(acquired)
		_ = second.Unlock()
	}()

	select {
	case <-acquired:
		t.Fatal("second lock acquired while first was held")
	case <-time.After(100 * time.Millisecond):
	}

	require.NoError(t, first.Unlock())

	select {
	case <-acquired:
	case <-time.After(5 * time.Second):
		t.Fatal("second lock not acquired after release")
	}
}

func TestLock_UnlockWithoutLock(t *testing.T) {
	l := NewLock(filepath.Join(t.TempDir(), "index.json"))
	assert.NoError(t, l.Unlock())
}
