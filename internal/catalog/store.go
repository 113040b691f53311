package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"snakeidle/internal/models"
)

// Store reads and writes the whole catalog file. There is no locking:
// concurrent writers race and the last rename wins.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load returns every record in file order. A missing file is an empty catalog;
// a file that exists but does not parse is an *UnreadableError.
func (s *Store) Load() ([]models.VersionRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []models.VersionRecord{}, nil
		}
		return nil, &UnreadableError{Path: s.path, Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &UnreadableError{Path: s.path, Err: errors.New("empty file")}
	}
	var records []models.VersionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &UnreadableError{Path: s.path, Err: err}
	}
	if records == nil {
		records = []models.VersionRecord{}
	}
	return records, nil
}

// Save replaces the catalog file with records, pretty printed.
func (s *Store) Save(records []models.VersionRecord) error {
	if records == nil {
		records = []models.VersionRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return writeFileAtomic(s.path, data, 0o644)
}

// writeFileAtomic writes through a temp file in the same directory and renames
// it over path, so readers see either the old or the new catalog.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
