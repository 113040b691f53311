package entry

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"snakeidle/internal/catalog"
	"snakeidle/internal/models"
)

// ErrRequired is returned when a mandatory answer was left blank.
var ErrRequired = errors.New("required value missing")

// Options configures one run of the add-version dialog.
type Options struct {
	Store        *catalog.Store
	DownloadsDir string
	In           io.Reader
	Out          io.Writer
	Now          func() time.Time
	Log          *zap.Logger
}

// Result describes what the dialog did.
type Result struct {
	Record    models.VersionRecord
	Replaced  bool // an existing record with the same version was removed
	Cancelled bool // operator declined; catalog untouched
}

type styles struct {
	title, ok, warn lipgloss.Style
}

func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		title: r.NewStyle().Bold(true),
		ok:    r.NewStyle().Foreground(lipgloss.Color("10")),
		warn:  r.NewStyle().Foreground(lipgloss.Color("11")),
	}
}

// AddVersion asks for every field of a new catalog record and appends it.
//
// Re-using an existing version id asks for confirmation and drops the old
// record first. A filename that does not exist yet only produces a warning,
// the record is stored with an unknown size.
func AddVersion(opts Options) (Result, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	p := NewPrompter(opts.In, opts.Out)
	st := newStyles(opts.Out)

	p.Println(st.title.Render("Add New Version to Download Site"))
	p.Println("========================================")

	versions, err := opts.Store.Load()
	if err != nil {
		return Result{}, err
	}

	version, err := p.Ask("Version number (e.g., 1.0.1): ")
	if err != nil {
		return Result{}, err
	}
	if version == "" {
		p.Println("Version number is required!")
		return Result{}, fmt.Errorf("version: %w", ErrRequired)
	}

	replaced := false
	if catalog.IndexOf(versions, version) >= 0 {
		ok, err := p.Confirm(fmt.Sprintf("Version %s already exists. Overwrite? (y/n): ", version))
		if err != nil {
			return Result{}, err
		}
		if !ok {
			p.Println("Cancelled.")
			return Result{Cancelled: true}, nil
		}
		versions = catalog.Without(versions, version)
		replaced = true
	}

	description, err := p.Ask("Description: ")
	if err != nil {
		return Result{}, err
	}
	if description == "" {
		description = fmt.Sprintf("Version %s release", version)
	}

	filename, err := p.Ask(fmt.Sprintf("Filename in %s/ directory: ", filepath.Base(opts.DownloadsDir)))
	if err != nil {
		return Result{}, err
	}
	if filename == "" {
		p.Println("Filename is required!")
		return Result{}, fmt.Errorf("filename: %w", ErrRequired)
	}
	if !catalog.ValidFilename(filename) {
		p.Println("Filename must be a plain file name inside the downloads directory!")
		return Result{}, fmt.Errorf("filename %q: not a single path segment", filename)
	}

	path := filepath.Join(opts.DownloadsDir, filename)
	size, err := FileSize(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		p.Println(st.warn.Render(fmt.Sprintf("Warning: File %s does not exist!", path)))
		opts.Log.Warn("artifact missing at authoring time", zap.String("version", version), zap.String("path", path))
		ok, err := p.Confirm("Continue anyway? (y/n): ")
		if err != nil {
			return Result{}, err
		}
		if !ok {
			p.Println("Cancelled.")
			return Result{Cancelled: true}, nil
		}
		size = models.UnknownSize
	case err != nil:
		return Result{}, err
	}

	platform, err := p.Ask("Platform (optional, press Enter to skip): ")
	if err != nil {
		return Result{}, err
	}
	if platform == "" {
		platform = models.DefaultPlatform
	}

	legacy, err := p.Confirm("Legacy release? (y/N): ")
	if err != nil {
		return Result{}, err
	}

	p.Println("\nEnter changelog items (one per line, empty line to finish):")
	changelog, err := p.Lines("  - ")
	if err != nil {
		return Result{}, err
	}

	rec := models.VersionRecord{
		Version:     version,
		Date:        opts.Now().Format("2006-01-02"),
		Description: description,
		Filename:    filename,
		Size:        size,
		Platform:    platform,
		Legacy:      legacy,
		Changelog:   changelog,
	}
	versions = append(versions, rec)

	if err := opts.Store.Save(versions); err != nil {
		return Result{}, err
	}
	opts.Log.Info("version added",
		zap.String("version", version),
		zap.String("file", filename),
		zap.Bool("replaced", replaced))

	p.Println()
	p.Println(st.ok.Render(fmt.Sprintf("✓ Version %s added successfully!", version)))
	p.Printf("  File: %s\n", filename)
	p.Printf("  Size: %s\n", size)
	return Result{Record: rec, Replaced: replaced}, nil
}
