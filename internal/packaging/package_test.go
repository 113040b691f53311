package packaging

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
}

func readArchive(t *testing.T, path string) map[string]string {
	t.Helper()
	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	out := map[string]string{}
	for _, f := range r.File {
		assert.Equal(t, zip.Deflate, f.Method, f.Name)
		rc, err := f.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		out[f.Name] = string(body)
	}
	return out
}

func statuses(rep *Report) map[string]ItemStatus {
	out := map[string]ItemStatus{}
	for _, it := range rep.Items {
		out[it.Name] = it.Status
	}
	return out
}

func TestBuild(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, map[string]string{
		"snake_idle_pygame.py":    "print('snake')",
		"README.md":               "# Snake Idle",
		"images/egg.png":          "egg",
		"images/adult/python.png": "python",
		"background.png":          "bg",
		"memes/1.png":             "lol",
		"notes/private.txt":       "not shipped",
	})
	out := filepath.Join(t.TempDir(), "downloads")

	rep, err := Build(context.Background(), Options{Version: "1.0.0", SourceRoot: src, OutputDir: out})
	require.NoError(t, err)

	assert.Equal(t, "snake_idle_v1.0.0.zip", rep.Archive)
	assert.Equal(t, filepath.Join(out, "snake_idle_v1.0.0.zip"), rep.Path)
	assert.Equal(t, map[string]ItemStatus{
		"snake_idle_pygame.py": StatusAdded,
		"requirements.txt":     StatusSkipped,
		"README.md":            StatusAdded,
		"images":               StatusAddedDir,
		"background.png":       StatusAddedOptional,
		"snaketummy.png":       StatusAbsent,
		"education.png":        StatusAbsent,
		"locked.png":           StatusAbsent,
		"memes":                StatusAddedOptionalDir,
	}, statuses(rep))
	assert.Equal(t, []string{"requirements.txt"}, rep.Skipped())

	files := readArchive(t, rep.Path)
	names := make([]string, 0, len(files))
	for n := range files {
		names = append(names, n)
	}
	sort.Strings(names)
	assert.Equal(t, []string{
		"README.md",
		"background.png",
		"images/adult/python.png",
		"images/egg.png",
		"memes/1.png",
		"snake_idle_pygame.py",
	}, names)
	assert.Equal(t, "python", files["images/adult/python.png"])

	data, err := os.ReadFile(rep.Path)
	require.NoError(t, err)
	sum := sha256.Sum256(data)
	assert.Equal(t, hex.EncodeToString(sum[:]), rep.SHA256)
	assert.Equal(t, int64(len(data)), rep.Size)
}

func TestBuildArchiveInsideSourceTree(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, map[string]string{"images/a.png": "a"})
	m := Manifest{ArchivePrefix: "pkg-", Dirs: []string{"images"}}

	rep, err := Build(context.Background(), Options{
		Version:    "2",
		SourceRoot: src,
		OutputDir:  filepath.Join(src, "images"),
		Manifest:   m,
	})
	require.NoError(t, err)
	assert.Equal(t, "pkg-2.zip", rep.Archive)
	assert.Equal(t, map[string]string{"images/a.png": "a"}, readArchive(t, rep.Path))
}

func TestBuildOptions(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()

	_, err := Build(context.Background(), Options{SourceRoot: src, OutputDir: out})
	assert.Error(t, err, "version label required")

	_, err = Build(context.Background(), Options{Version: "1", ArchiveName: "../x.zip", SourceRoot: src, OutputDir: out})
	assert.Error(t, err)

	rep, err := Build(context.Background(), Options{Version: "beta", ArchiveName: "snake_idle_beta1.zip", SourceRoot: src, OutputDir: out})
	require.NoError(t, err)
	assert.Equal(t, "snake_idle_beta1.zip", rep.Archive)
	assert.Empty(t, readArchive(t, rep.Path))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Build(ctx, Options{Version: "1", SourceRoot: src, OutputDir: out})
	assert.ErrorIs(t, err, context.Canceled)
	_, statErr := os.Stat(filepath.Join(out, "snake_idle_v1.zip"))
	assert.True(t, os.IsNotExist(statErr), "partial archive is removed")
}

func git(t *testing.T, dir string, args ...string) string {
	t.Helper()
	args = append([]string{"-c", "user.name=test", "-c", "user.email=test@example.com", "-c", "commit.gpgsign=false"}, args...)
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
	return string(out)
}

func TestBuildFromRevision(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	src := t.TempDir()
	git(t, src, "init", "--quiet")
	writeTree(t, src, map[string]string{"snake_idle_pygame.py": "beta"})
	git(t, src, "add", ".")
	git(t, src, "commit", "--quiet", "-m", "beta")
	rev := git(t, src, "rev-parse", "HEAD")
	rev = rev[:len(rev)-1]

	writeTree(t, src, map[string]string{"snake_idle_pygame.py": "release"})
	git(t, src, "commit", "--quiet", "-am", "release")

	rep, err := Build(context.Background(), Options{
		Version:     "beta1",
		SourceRoot:  src,
		OutputDir:   t.TempDir(),
		Revision:    rev,
		ArchiveName: "snake_idle_beta1.zip",
	})
	require.NoError(t, err)
	assert.Equal(t, rev, rep.Revision)
	assert.Equal(t, "beta", readArchive(t, rep.Path)["snake_idle_pygame.py"])

	_, err = Build(context.Background(), Options{Version: "x", SourceRoot: src, OutputDir: t.TempDir(), Revision: "does-not-exist"})
	assert.Error(t, err)
	_, err = Build(context.Background(), Options{Version: "x", SourceRoot: src, OutputDir: t.TempDir(), Revision: "--upload-pack=evil"})
	assert.Error(t, err)
}

func TestBuildMissingGit(t *testing.T) {
	old := gitBinary
	gitBinary = filepath.Join(t.TempDir(), "no-git-here")
	t.Cleanup(func() { gitBinary = old })

	_, err := Build(context.Background(), Options{Version: "x", SourceRoot: t.TempDir(), OutputDir: t.TempDir(), Revision: "abc123"})
	assert.Error(t, err)
}
