// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/gourmet/internal/catalogue"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Snapshot the catalogue into SQLite and optional YAML/JSON files",
	Long: `Export fetches the whole catalogue, replaces the local SQLite snapshot
with it, and writes YAML and JSON exports when --yaml or --json-file is set.
The snapshot is what 'gourmet search' reads.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	recipes, err := newClient().ListRecipes(ctx)
	if err != nil {
		return err
	}

	store, err := openCatalogue(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Replace(ctx, recipes); err != nil {
		return err
	}
	logger.Info("catalogue snapshot written", zap.String("db", store.Path()), zap.Int("recipes", len(recipes)))
	fmt.Printf("stored %d recipes in %s\n", len(recipes), store.Path())

	if path, _ := cmd.Flags().GetString("yaml"); path != "" {
		if err := writeExport(ctx, path, store.ExportYAML); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
	}
	if path, _ := cmd.Flags().GetString("json-file"); path != "" {
		if err := writeExport(ctx, path, store.ExportJSON); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
	}
	return nil
}

func writeExport(ctx context.Context, path string, export func(context.Context, io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := export(ctx, f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func openCatalogue(cmd *cobra.Command) (*catalogue.Store, error) {
	path := cfg.Catalogue.DB
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		path = p
	}
	return catalogue.NewStore(path)
}

func init() {
	exportCmd.Flags().String("db", "", "snapshot database path (default from catalogue.db)")
	exportCmd.Flags().String("yaml", "", "also write a YAML export to this path")
	exportCmd.Flags().String("json-file", "", "also write a JSON export to this path")

	rootCmd.AddCommand(exportCmd)
}
