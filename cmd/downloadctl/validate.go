package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"snakeidle/internal/catalog"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the catalog file for schema errors, duplicates and missing artifacts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := catalog.NewStore(cfg.CatalogFile)
		problems, err := store.Check(cfg.DownloadsDir)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(problems) == 0 {
			fmt.Fprintf(out, "✓ %s is valid\n", cfg.CatalogFile)
			return nil
		}
		for _, p := range problems {
			fmt.Fprintf(out, "  - %s\n", p)
		}
		return fmt.Errorf("%d problem(s) in %s", len(problems), cfg.CatalogFile)
	},
}
