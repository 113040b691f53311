package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"snakeidle/internal/catalog"
	"snakeidle/internal/entry"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Interactively add a version to the catalog",
	Long: `Prompts for the fields of a new release and appends it to the catalog.

The size is measured from the file in the downloads directory. Adding a
version id that already exists asks before replacing the old entry.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := entry.AddVersion(entry.Options{
			Store:        catalog.NewStore(cfg.CatalogFile),
			DownloadsDir: cfg.DownloadsDir,
			In:           cmd.InOrStdin(),
			Out:          cmd.OutOrStdout(),
			Log:          logger,
		})
		if errors.Is(err, entry.ErrInterrupted) {
			fmt.Fprintln(cmd.OutOrStdout(), "\n\nCancelled.")
		}
		return err
	},
}
