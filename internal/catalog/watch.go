package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"snakeidle/internal/models"
)

// Watcher reloads the catalog whenever its file changes on disk and logs the
// result. Handlers do not read from it; they load the file per request.
type Watcher struct {
	store    *Store
	mode     OrderMode
	log      *zap.Logger
	debounce time.Duration

	// OnReload is called after each reload; err is non-nil when the file did not parse.
	OnReload func(records []models.VersionRecord, err error)
}

func NewWatcher(store *Store, mode OrderMode, log *zap.Logger) *Watcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{store: store, mode: mode, log: log, debounce: 250 * time.Millisecond}
}

// SetDebounce changes how long the watcher waits for writes to settle.
func (w *Watcher) SetDebounce(d time.Duration) { w.debounce = d }

// Run blocks until ctx is done. It watches the catalog's directory, not the
// file, so replace-by-rename writes are seen.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	dir := filepath.Dir(w.store.Path())
	name := filepath.Base(w.store.Path())
	if err := fw.Add(dir); err != nil {
		return err
	}
	w.log.Info("watching catalog", zap.String("path", w.store.Path()))

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != name {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.reload()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				w.reload()
				continue
			}
			w.log.Warn("catalog watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	records, err := w.store.Load()
	if err != nil {
		w.log.Error("catalog changed but cannot be read", zap.String("path", w.store.Path()), zap.Error(err))
	} else {
		latest := ""
		if rec, ok := Latest(records, w.mode); ok {
			latest = rec.Version
		}
		w.log.Info("catalog reloaded",
			zap.Int("versions", len(records)),
			zap.String("latest", latest))
	}
	if w.OnReload != nil {
		w.OnReload(records, err)
	}
}
