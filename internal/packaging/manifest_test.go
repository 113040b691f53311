package packaging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultManifest(t *testing.T) {
	m := DefaultManifest()
	assert.Equal(t, "snake_idle_v1.2.0.zip", m.ArchiveName("1.2.0"))
	assert.Contains(t, m.Files, "snake_idle_pygame.py")
	assert.Equal(t, []string{"images"}, m.Dirs)
	assert.Contains(t, m.Optional, "memes")
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "release.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
archive_prefix: snake_idle_demo_
files:
  - main.py
optional:
  - sounds
`), 0o644))

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, "snake_idle_demo_3.zip", m.ArchiveName("3"))
	assert.Equal(t, []string{"main.py"}, m.Files)
	assert.Equal(t, []string{"images"}, m.Dirs, "omitted keys keep defaults")
	assert.Equal(t, []string{"sounds"}, m.Optional)
}

func TestLoadManifestErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadManifest(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	for name, body := range map[string]string{
		"bad yaml": "files: [unterminated",
		"absolute": "files: [/etc/passwd]",
		"parent":   "dirs: [../outside]",
		"empty":    "optional: ['']",
	} {
		path := filepath.Join(dir, "m.yaml")
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		_, err := LoadManifest(path)
		assert.Error(t, err, name)
	}
}
