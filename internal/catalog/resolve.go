package catalog

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"snakeidle/internal/models"
)

// Artifact is an opened download. The caller owns File and must close it.
type Artifact struct {
	Record models.VersionRecord
	Path   string
	Name   string
	Size   int64
	File   *os.File
}

func (a *Artifact) Close() error {
	if a == nil || a.File == nil {
		return nil
	}
	return a.File.Close()
}

// Find returns the first record whose version equals versionID exactly.
func Find(versionID string, records []models.VersionRecord) (models.VersionRecord, error) {
	if i := IndexOf(records, versionID); i >= 0 {
		return records[i], nil
	}
	return models.VersionRecord{}, ErrNotFound
}

// Resolve maps versionID to the artifact path inside dir.
// It returns ErrNotFound when no record matches and an error matching
// ErrArtifactMissing when the record's file is absent or its name is unsafe.
func Resolve(versionID string, records []models.VersionRecord, dir string) (string, error) {
	rec, err := Find(versionID, records)
	if err != nil {
		return "", err
	}
	path, err := artifactPath(rec, dir)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &MissingError{Version: rec.Version, Path: path}
		}
		return "", err
	}
	if info.IsDir() {
		return "", &MissingError{Version: rec.Version, Path: path, Reason: "is a directory"}
	}
	return path, nil
}

// Open resolves like Resolve but opens the file instead of probing it first,
// so a file removed between lookup and transfer is reported as missing.
func Open(versionID string, records []models.VersionRecord, dir string) (*Artifact, error) {
	rec, err := Find(versionID, records)
	if err != nil {
		return nil, err
	}
	path, err := artifactPath(rec, dir)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingError{Version: rec.Version, Path: path}
		}
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, &MissingError{Version: rec.Version, Path: path, Reason: "is a directory"}
	}
	return &Artifact{Record: rec, Path: path, Name: rec.Filename, Size: info.Size(), File: f}, nil
}

func artifactPath(rec models.VersionRecord, dir string) (string, error) {
	if reason := unsafeFilename(rec.Filename); reason != "" {
		return "", &MissingError{Version: rec.Version, Path: rec.Filename, Reason: reason}
	}
	return filepath.Join(dir, rec.Filename), nil
}

// unsafeFilename returns why name cannot be used as a single path segment,
// or "" when it can.
func unsafeFilename(name string) string {
	switch {
	case name == "":
		return "empty filename"
	case name == "." || name == "..":
		return "filename is not a file name"
	case strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0):
		return "filename must not contain path separators"
	case filepath.IsAbs(name) || filepath.VolumeName(name) != "":
		return "filename must be relative"
	}
	return ""
}

// ValidFilename reports whether name can be stored in a record.
func ValidFilename(name string) bool { return unsafeFilename(name) == "" }
