package packaging

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest lists what goes into a release archive. Paths are relative to the
// source root and use forward slashes.
type Manifest struct {
	// ArchivePrefix is prepended to the version label to name the archive.
	ArchivePrefix string   `yaml:"archive_prefix"`
	Files         []string `yaml:"files"`    // required; a directory is accepted too
	Dirs          []string `yaml:"dirs"`     // required directories
	Optional      []string `yaml:"optional"` // added when present, silently skipped otherwise
}

// DefaultManifest is the game's release layout.
func DefaultManifest() Manifest {
	return Manifest{
		ArchivePrefix: "snake_idle_v",
		Files: []string{
			"snake_idle_pygame.py",
			"requirements.txt",
			"README.md",
		},
		Dirs: []string{
			"images",
		},
		Optional: []string{
			"background.png",
			"snaketummy.png",
			"education.png",
			"locked.png",
			"memes",
		},
	}
}

// LoadManifest reads a YAML manifest. Omitted keys keep their default values.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, err
	}
	m := DefaultManifest()
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("manifest %s: %w", path, err)
	}
	if err := m.validate(); err != nil {
		return Manifest{}, fmt.Errorf("manifest %s: %w", path, err)
	}
	return m, nil
}

func (m Manifest) validate() error {
	for _, group := range [][]string{m.Files, m.Dirs, m.Optional} {
		for _, item := range group {
			if item == "" || strings.HasPrefix(item, "/") || strings.Contains(item, "..") {
				return fmt.Errorf("item %q must be a relative path inside the source root", item)
			}
		}
	}
	return nil
}

// ArchiveName returns the archive file name for version.
func (m Manifest) ArchiveName(version string) string {
	return m.ArchivePrefix + version + ".zip"
}
