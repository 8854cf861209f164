// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Search the local catalogue snapshot",
	Long: `Search looks for text in the name, description and category of the
recipes stored by 'gourmet export'. It works offline.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := openCatalogue(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		at, ok, err := store.FetchedAt(cmd.Context())
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no snapshot in %s: run 'gourmet export' first", store.Path())
		}

		results, err := store.Search(cmd.Context(), strings.Join(args, " "), limit)
		if err != nil {
			return err
		}
		if jsonOutput(cmd) {
			return writeJSON(os.Stdout, results)
		}
		formatTable(os.Stdout, results)
		fmt.Printf("snapshot from %s\n", at.Local().Format(time.RFC1123))
		return nil
	},
}

func init() {
	searchCmd.Flags().String("db", "", "snapshot database path (default from catalogue.db)")
	searchCmd.Flags().Int("limit", 20, "maximum number of results")

	rootCmd.AddCommand(searchCmd)
}
