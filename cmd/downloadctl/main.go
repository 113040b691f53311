package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"snakeidle/internal/config"
	"snakeidle/internal/entry"
	"snakeidle/internal/logging"
)

var (
	// Global flags
	verbose      bool
	catalogFile  string
	downloadsDir string

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "downloadctl",
	Short: "Manage the download site's release catalog and packages",
	Long: `downloadctl is the operator tool for the download site.

It adds releases to the version catalog, builds release archives from the
game source tree and checks the catalog for problems.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if catalogFile != "" {
			cfg.CatalogFile = catalogFile
		}
		if downloadsDir != "" {
			cfg.DownloadsDir = downloadsDir
		}

		level := "warn"
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(level, true)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "Catalog file (default $CATALOG_FILE or versions.json)")
	rootCmd.PersistentFlags().StringVar(&downloadsDir, "downloads", "", "Downloads directory (default $DOWNLOADS_DIR or downloads)")

	rootCmd.AddCommand(addCmd, packageCmd, validateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, entry.ErrInterrupted) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
