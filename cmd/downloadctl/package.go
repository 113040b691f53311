package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"snakeidle/internal/packaging"
)

var (
	pkgSource   string
	pkgOutput   string
	pkgRev      string
	pkgName     string
	pkgManifest string
)

var packageCmd = &cobra.Command{
	Use:   "package <version>",
	Short: "Build a release archive from the game source tree",
	Long: `Zips the files listed in the release manifest into <prefix><version>.zip.

Missing required items are reported and skipped. With --rev the archive is
built from that git revision of the source tree instead of the working copy.

Example:
  downloadctl package 1.0.0
  downloadctl package beta1 --rev 524bae9 --name snake_idle_beta1.zip`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		version := args[0]
		manifest := packaging.DefaultManifest()
		if pkgManifest != "" {
			m, err := packaging.LoadManifest(pkgManifest)
			if err != nil {
				return err
			}
			manifest = m
		}
		output := pkgOutput
		if output == "" {
			output = cfg.DownloadsDir
		}

		out := cmd.OutOrStdout()
		if pkgRev != "" {
			fmt.Fprintf(out, "Checking out commit %s...\n", pkgRev)
		}
		fmt.Fprintf(out, "Packaging game version %s...\n", version)

		// interrupting stops the git checkout and the archive walk
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		rep, err := packaging.Build(ctx, packaging.Options{
			Version:     version,
			SourceRoot:  pkgSource,
			OutputDir:   output,
			Manifest:    manifest,
			ArchiveName: pkgName,
			Revision:    pkgRev,
			Log:         logger,
		})
		if err != nil {
			return err
		}
		printReport(cmd, rep)
		return nil
	},
}

func init() {
	packageCmd.Flags().StringVar(&pkgSource, "source", ".", "Game source root")
	packageCmd.Flags().StringVarP(&pkgOutput, "output", "o", "", "Output directory (default: downloads directory)")
	packageCmd.Flags().StringVar(&pkgRev, "rev", "", "Package this git revision of the source root")
	packageCmd.Flags().StringVar(&pkgName, "name", "", "Archive file name (default: <prefix><version>.zip)")
	packageCmd.Flags().StringVar(&pkgManifest, "manifest", "", "YAML manifest overriding the default file list")
}

func printReport(cmd *cobra.Command, rep *packaging.Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Output: %s\n", rep.Path)
	for _, it := range rep.Items {
		switch it.Status {
		case packaging.StatusAdded:
			fmt.Fprintf(out, "  Added: %s\n", it.Name)
		case packaging.StatusAddedDir:
			fmt.Fprintf(out, "  Added directory: %s/\n", it.Name)
		case packaging.StatusAddedOptional:
			fmt.Fprintf(out, "  Added (optional): %s\n", it.Name)
		case packaging.StatusAddedOptionalDir:
			fmt.Fprintf(out, "  Added directory (optional): %s/\n", it.Name)
		case packaging.StatusSkipped:
			fmt.Fprintf(out, "  Warning: %s not found, skipping\n", it.Name)
		}
	}

	fmt.Fprintln(out, "\n✓ Package created successfully!")
	fmt.Fprintf(out, "  File: %s\n", rep.Archive)
	fmt.Fprintf(out, "  Size: %.2f MB (%s)\n", float64(rep.Size)/(1024*1024), humanize.IBytes(uint64(rep.Size)))
	fmt.Fprintf(out, "  SHA256: %s\n", rep.SHA256)
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "  1. Run: downloadctl add")
	fmt.Fprintf(out, "  2. Enter version: %s\n", rep.Version)
	fmt.Fprintf(out, "  3. Enter filename: %s\n", rep.Archive)
}
