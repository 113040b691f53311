package models

// DefaultPlatform is stored when a release is not tied to one platform.
const DefaultPlatform = "All Platforms"

// UnknownSize is stored when the artifact could not be measured at authoring time.
const UnknownSize = "Unknown"

// VersionRecord represents one published release of the game (catalog entry).
type VersionRecord struct {
	Version     string `json:"version"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Filename    string `json:"filename"` // looked up inside the downloads dir
	Size        string `json:"size"`     // human readable, computed when the record was added
	Platform    string `json:"platform"`

	Legacy    bool     `json:"legacy,omitempty"`
	Changelog []string `json:"changelog,omitempty"`
}

// PlatformLabel returns the platform or the all-platforms sentinel when blank.
func (v VersionRecord) PlatformLabel() string {
	if v.Platform == "" {
		return DefaultPlatform
	}
	return v.Platform
}
