package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"snakeidle/internal/catalog"
	"snakeidle/internal/config"
	"snakeidle/internal/logging"
	"snakeidle/internal/server"
)

func main() {
	// Load environment variables
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Development())
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := os.MkdirAll(cfg.DownloadsDir, 0o755); err != nil {
		logger.Fatal("create downloads dir", zap.String("dir", cfg.DownloadsDir), zap.Error(err))
	}

	// An unreadable catalog is fatal at startup.
	if _, err := catalog.NewStore(cfg.CatalogFile).Load(); err != nil {
		logger.Fatal("catalog", zap.Error(err))
	}

	app, err := server.New(cfg, logger)
	if err != nil {
		logger.Fatal("build server", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening",
			zap.String("addr", ":"+cfg.Port),
			zap.String("catalog", cfg.CatalogFile),
			zap.String("downloads", cfg.DownloadsDir),
			zap.String("order", string(cfg.VersionOrder)))
		return app.Listen(":" + cfg.Port)
	})
	g.Go(func() error {
		<-ctx.Done()
		return app.ShutdownWithTimeout(10 * time.Second)
	})
	if cfg.WatchCatalog {
		watcher := catalog.NewWatcher(catalog.NewStore(cfg.CatalogFile), cfg.VersionOrder, logger)
		g.Go(func() error { return watcher.Run(ctx) })
	}

	if err := g.Wait(); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
