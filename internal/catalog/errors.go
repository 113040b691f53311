package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means no catalog record has the requested version id.
	ErrNotFound = errors.New("version not found")
	// ErrArtifactMissing means the record exists but its file is not in the downloads dir.
	ErrArtifactMissing = errors.New("artifact file not found")
	// ErrCatalogUnreadable means the catalog file exists but cannot be read or parsed.
	ErrCatalogUnreadable = errors.New("catalog unreadable")
)

// UnreadableError carries the catalog path and the underlying read/parse failure.
type UnreadableError struct {
	Path string
	Err  error
}

func (e *UnreadableError) Error() string {
	return fmt.Sprintf("catalog %q unreadable: %v", e.Path, e.Err)
}

func (e *UnreadableError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrCatalogUnreadable) match without losing the cause.
func (e *UnreadableError) Is(target error) bool { return target == ErrCatalogUnreadable }

// MissingError reports which version and path failed to resolve to a file.
type MissingError struct {
	Version string
	Path    string
	Reason  string
}

func (e *MissingError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("version %s: artifact %q: %s", e.Version, e.Path, e.Reason)
	}
	return fmt.Sprintf("version %s: artifact %q does not exist", e.Version, e.Path)
}

func (e *MissingError) Is(target error) bool { return target == ErrArtifactMissing }
