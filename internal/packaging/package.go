package packaging

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"go.uber.org/zap"
)

// ItemStatus tells what happened to one manifest entry.
type ItemStatus string

const (
	StatusAdded            ItemStatus = "added"
	StatusAddedDir         ItemStatus = "added directory"
	StatusAddedOptional    ItemStatus = "added (optional)"
	StatusAddedOptionalDir ItemStatus = "added directory (optional)"
	StatusSkipped          ItemStatus = "skipped" // required item not found
	StatusAbsent           ItemStatus = "absent"  // optional item not found
)

type Item struct {
	Name   string
	Status ItemStatus
	Files  int
}

// Report is the outcome of Build.
type Report struct {
	Version  string
	Revision string
	Archive  string // file name
	Path     string
	Size     int64
	SHA256   string
	Items    []Item
}

// Skipped returns the required items that were not found.
func (r *Report) Skipped() []string {
	var out []string
	for _, it := range r.Items {
		if it.Status == StatusSkipped {
			out = append(out, it.Name)
		}
	}
	return out
}

type Options struct {
	Version    string
	SourceRoot string
	OutputDir  string
	Manifest   Manifest
	// ArchiveName overrides the name derived from the manifest prefix.
	ArchiveName string
	// Revision, when set, packages that git revision of SourceRoot instead of the working tree.
	Revision string
	Log      *zap.Logger
}

// Build writes a deflate-compressed zip of the manifest items. Missing
// required items are reported, not fatal; the archive is always produced.
func Build(ctx context.Context, opts Options) (*Report, error) {
	if strings.TrimSpace(opts.Version) == "" && opts.ArchiveName == "" {
		return nil, errors.New("version label is required")
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Manifest.ArchivePrefix == "" && len(opts.Manifest.Files) == 0 && len(opts.Manifest.Dirs) == 0 && len(opts.Manifest.Optional) == 0 {
		opts.Manifest = DefaultManifest()
	}

	name := opts.ArchiveName
	if name == "" {
		name = opts.Manifest.ArchiveName(opts.Version)
	}
	if strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("archive name %q must not contain path separators", name)
	}

	root := opts.SourceRoot
	if opts.Revision != "" {
		checkout, cleanup, err := checkoutRevision(ctx, opts.SourceRoot, opts.Revision, opts.Log)
		if err != nil {
			return nil, err
		}
		defer cleanup()
		root = checkout
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, err
	}
	outPath := filepath.Join(opts.OutputDir, name)
	absOut, _ := filepath.Abs(outPath)

	f, err := os.Create(outPath)
	if err != nil {
		return nil, err
	}
	hasher := sha256.New()
	counter := &countingWriter{}
	zw := zip.NewWriter(io.MultiWriter(f, hasher, counter))

	rep := &Report{Version: opts.Version, Revision: opts.Revision, Archive: name, Path: outPath}
	b := &builder{ctx: ctx, root: root, zw: zw, skip: absOut, log: opts.Log}

	err = b.addAll(rep, opts.Manifest)
	if cerr := zw.Close(); err == nil {
		err = cerr
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(outPath)
		return nil, err
	}

	rep.Size = counter.n
	rep.SHA256 = hex.EncodeToString(hasher.Sum(nil))
	opts.Log.Info("package created",
		zap.String("archive", outPath),
		zap.Int64("bytes", rep.Size),
		zap.String("sha256", rep.SHA256))
	return rep, nil
}

type builder struct {
	ctx  context.Context
	root string
	zw   *zip.Writer
	skip string
	log  *zap.Logger
}

func (b *builder) addAll(rep *Report, m Manifest) error {
	for _, item := range m.Files {
		it, err := b.addItem(item, StatusAdded, StatusAddedDir, StatusSkipped)
		if err != nil {
			return err
		}
		rep.Items = append(rep.Items, it)
	}
	for _, item := range m.Dirs {
		it, err := b.addItem(item, StatusAddedDir, StatusAddedDir, StatusSkipped)
		if err != nil {
			return err
		}
		rep.Items = append(rep.Items, it)
	}
	for _, item := range m.Optional {
		it, err := b.addItem(item, StatusAddedOptional, StatusAddedOptionalDir, StatusAbsent)
		if err != nil {
			return err
		}
		rep.Items = append(rep.Items, it)
	}
	return nil
}

func (b *builder) addItem(item string, fileStatus, dirStatus, missing ItemStatus) (Item, error) {
	if err := b.ctx.Err(); err != nil {
		return Item{}, err
	}
	path := filepath.Join(b.root, filepath.FromSlash(item))
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if missing == StatusSkipped {
				b.log.Warn("manifest item not found", zap.String("item", item))
			}
			return Item{Name: item, Status: missing}, nil
		}
		return Item{}, err
	}

	if info.IsDir() {
		n, err := b.addDir(path, item)
		if err != nil {
			return Item{}, err
		}
		return Item{Name: item, Status: dirStatus, Files: n}, nil
	}
	added, err := b.addFile(path, item, info)
	if err != nil {
		return Item{}, err
	}
	it := Item{Name: item, Status: fileStatus}
	if added {
		it.Files = 1
	}
	return it, nil
}

func (b *builder) addDir(dir, prefix string) (int, error) {
	n := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := b.ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		added, err := b.addFile(path, prefix+"/"+filepath.ToSlash(rel), info)
		if added {
			n++
		}
		return err
	})
	return n, err
}

// addFile stores one file under name. The archive being written is never
// added to itself.
func (b *builder) addFile(path, name string, info fs.FileInfo) (bool, error) {
	if abs, err := filepath.Abs(path); err == nil && abs == b.skip {
		return false, nil
	}
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return false, err
	}
	hdr.Name = name
	hdr.Method = zip.Deflate

	w, err := b.zw.CreateHeader(hdr)
	if err != nil {
		return false, err
	}
	src, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer src.Close()
	if _, err := io.Copy(w, src); err != nil {
		return false, fmt.Errorf("add %s: %w", name, err)
	}
	return true, nil
}

type countingWriter struct{ n int64 }

func (c *countingWriter) Write(p []byte) (int, error) {
	c.n += int64(len(p))
	return len(p), nil
}
