package index

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	gcderrors "github.com/tristanpoland/GCD/pkg/errors"
)

// FormatVersion is written into every JSON index file.
const FormatVersion = 1

// JSONStore keeps the index in a single JSON document.
type JSONStore struct {
	path string
}

// NewJSONStore creates a store backed by the file at path.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Path returns the index file location.
func (s *JSONStore) Path() string {
	return s.path
}

// document is the on-disk layout. Repos is decoded lazily because older
// files store a name -> path object instead of a record list.
type document struct {
	Version int             `json:"version"`
	Repos   json.RawMessage `json:"repos"`
}

type savedDocument struct {
	Version int      `json:"version"`
	Repos   []Record `json:"repos"`
}

// Load reads the index file.
func (s *JSONStore) Load() (*Index, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return New(), nil // Not an error, just empty
	}
	if err != nil {
		return nil, gcderrors.NewStoreError("load", s.path, err)
	}

	x, err := decode(data)
	if err != nil {
		return New(), gcderrors.NewCorruptError(s.path, err)
	}
	return x, nil
}

func decode(data []byte) (*Index, error) {
	x := New()
	if len(bytes.TrimSpace(data)) == 0 {
		return x, nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	raw := bytes.TrimSpace(doc.Repos)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		return x, nil
	case raw[0] == '{':
		// Legacy layout: {"repos": {"<name>": "<path>"}}
		var legacy map[string]string
		if err := json.Unmarshal(raw, &legacy); err != nil {
			return nil, err
		}
		for name, path := range legacy {
			if path == "" {
				continue
			}
			x.Put(Record{Path: path, Name: name})
		}
	default:
		var records []Record
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, err
		}
		for _, r := range records {
			if r.Path == "" {
				continue
			}
			x.Put(r)
		}
	}
	return x, nil
}

// Save writes the index atomically: the document goes to a temp file in the
// same directory which is then renamed over the index file.
func (s *JSONStore) Save(x *Index) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return gcderrors.NewStoreError("save", s.path, err)
	}

	data, err := json.MarshalIndent(savedDocument{Version: FormatVersion, Repos: x.Records()}, "", "  ")
	if err != nil {
		return gcderrors.NewStoreError("save", s.path, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(dir, ".index-*.tmp")
	if err != nil {
		return gcderrors.NewStoreError("save", s.path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return gcderrors.NewStoreError("save", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return gcderrors.NewStoreError("save", s.path, err)
	}

	// Atomic rename
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath) // Clean up temp file on failure
		return gcderrors.NewStoreError("save", s.path, err)
	}
	return nil
}
