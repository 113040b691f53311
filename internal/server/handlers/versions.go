package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"snakeidle/internal/catalog"
	"snakeidle/internal/config"
	"snakeidle/internal/models"
)

const (
	msgVersionNotFound = "Version not found"
	msgFileNotFound    = "File not found"
)

// Versions serves the catalog page, downloads and the JSON API.
type Versions struct {
	store *catalog.Store
	cfg   config.Config
	log   *zap.Logger
}

func NewVersions(store *catalog.Store, cfg config.Config, log *zap.Logger) *Versions {
	return &Versions{store: store, cfg: cfg, log: log}
}

func (h *Versions) ordered() ([]models.VersionRecord, error) {
	records, err := h.store.Load()
	if err != nil {
		return nil, err
	}
	return catalog.OrderWith(records, h.cfg.VersionOrder), nil
}

// Index renders the download page.
func (h *Versions) Index(c *fiber.Ctx) error {
	versions, err := h.ordered()
	if err != nil {
		return err
	}
	latest := ""
	if len(versions) > 0 && !versions[0].Legacy {
		latest = versions[0].Version
	}
	return c.Render("index", fiber.Map{
		"title":    h.cfg.SiteTitle,
		"year":     time.Now().Year(),
		"versions": versions,
		"latest":   latest,
	})
}

// Download streams the artifact of one version as an attachment.
func (h *Versions) Download(c *fiber.Ctx) error {
	version := c.Params("version")
	records, err := h.store.Load()
	if err != nil {
		return err
	}

	art, err := catalog.Open(version, records, h.cfg.DownloadsDir)
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, msgVersionNotFound)
	case errors.Is(err, catalog.ErrArtifactMissing):
		h.log.Warn("catalog entry has no artifact", zap.String("version", version), zap.Error(err))
		return fiber.NewError(fiber.StatusNotFound, msgFileNotFound)
	case err != nil:
		return err
	}

	h.log.Info("download",
		zap.String("version", art.Record.Version),
		zap.String("file", art.Name),
		zap.Int64("bytes", art.Size))
	c.Attachment(art.Name)
	// fasthttp closes the file once the body has been sent
	return c.SendStream(art.File, int(art.Size))
}

// List returns the ordered catalog as JSON.
func (h *Versions) List(c *fiber.Ctx) error {
	versions, err := h.ordered()
	if err != nil {
		return err
	}
	return c.JSON(versions)
}

// Latest returns the newest active release as JSON.
func (h *Versions) Latest(c *fiber.Ctx) error {
	records, err := h.store.Load()
	if err != nil {
		return err
	}
	latest, ok := catalog.Latest(records, h.cfg.VersionOrder)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, msgVersionNotFound)
	}
	return c.JSON(latest)
}
