package catalog

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snakeidle/internal/models"
)

func TestResolveNotFound(t *testing.T) {
	_, err := Resolve("9.9.9", nil, t.TempDir())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrArtifactMissing)
}

func TestResolveArtifactMissing(t *testing.T) {
	records := []models.VersionRecord{{Version: "1.0.1", Filename: "game.zip"}}
	_, err := Resolve("1.0.1", records, t.TempDir())
	assert.ErrorIs(t, err, ErrArtifactMissing)
	assert.NotErrorIs(t, err, ErrNotFound)

	var me *MissingError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, "1.0.1", me.Version)
}

func TestResolveFirstMatchWins(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "first.zip"), []byte("one"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "second.zip"), []byte("two"), 0o644))
	records := []models.VersionRecord{
		{Version: "1.0", Filename: "first.zip"},
		{Version: "1.0", Filename: "second.zip"},
	}

	path, err := Resolve("1.0", records, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "first.zip"), path)
}

func TestResolveExactMatchOnly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.zip"), nil, 0o644))
	records := []models.VersionRecord{{Version: "1.0", Filename: "a.zip"}}

	for _, id := range []string{"1.0.0", "v1.0", " 1.0", "1"} {
		_, err := Resolve(id, records, dir)
		assert.ErrorIs(t, err, ErrNotFound, id)
	}
}

func TestResolveRejectsUnsafeFilenames(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "downloads")
	require.NoError(t, os.Mkdir(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "secret.txt"), []byte("x"), 0o644))

	for _, name := range []string{"../secret.txt", "..", ".", "", "sub/a.zip", `..\secret.txt`, "/etc/passwd"} {
		records := []models.VersionRecord{{Version: "1.0", Filename: name}}
		_, err := Resolve("1.0", records, dir)
		assert.ErrorIs(t, err, ErrArtifactMissing, name)
		_, err = Open("1.0", records, dir)
		assert.ErrorIs(t, err, ErrArtifactMissing, name)
		assert.False(t, ValidFilename(name), name)
	}
	assert.True(t, ValidFilename("snake_idle_v1.0.zip"))
}

func TestResolveDirectoryIsMissing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.zip"), 0o755))
	records := []models.VersionRecord{{Version: "1.0", Filename: "folder.zip"}}

	_, err := Resolve("1.0", records, dir)
	assert.ErrorIs(t, err, ErrArtifactMissing)
	_, err = Open("1.0", records, dir)
	assert.ErrorIs(t, err, ErrArtifactMissing)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "snake.zip"), []byte("payload"), 0o644))
	records := []models.VersionRecord{{Version: "2.0", Filename: "snake.zip", Size: "7.0 B"}}

	art, err := Open("2.0", records, dir)
	require.NoError(t, err)
	defer art.Close()

	assert.Equal(t, "snake.zip", art.Name)
	assert.Equal(t, int64(7), art.Size)
	assert.Equal(t, records[0], art.Record)
	body, err := io.ReadAll(art.File)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(body))

	_, err = Open("3.0", records, dir)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, os.Remove(filepath.Join(dir, "snake.zip")))
	_, err = Open("2.0", records, dir)
	assert.ErrorIs(t, err, ErrArtifactMissing)
}
