package server

import (
	"io/fs"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"

	"snakeidle/internal/catalog"
	"snakeidle/internal/config"
	"snakeidle/internal/server/handlers"
	"snakeidle/internal/server/middleware"
	"snakeidle/web"
)

// New builds the fiber app for cfg. Nothing is read from process-wide state.
func New(cfg config.Config, log *zap.Logger) (*fiber.App, error) {
	views, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return nil, err
	}
	assets, err := fs.Sub(web.Assets, "assets")
	if err != nil {
		return nil, err
	}

	engine := html.NewFileSystem(http.FS(views), ".html")

	app := fiber.New(fiber.Config{
		Views:                 engine,
		ViewsLayout:           "layout",
		ServerHeader:          cfg.SiteTitle,
		AppName:               cfg.SiteTitle + " Downloads",
		UnescapePath:          true,
		DisableStartupMessage: true,
		ErrorHandler:          handlers.ErrorHandler(log),
	})

	app.Use(middleware.RequestLogger(log))

	app.Use("/assets", filesystem.New(filesystem.Config{Root: http.FS(assets)}))
	app.Static("/static", cfg.StaticDir)

	store := catalog.NewStore(cfg.CatalogFile)
	RegisterRoutes(app, handlers.NewVersions(store, cfg, log))
	return app, nil
}
