// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/gourmet/internal/apierr"
	"github.com/pdiddy/gourmet/internal/normalize"
)

var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "List the recipe catalogue",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		recipes, err := newClient().ListRecipes(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput(cmd) {
			return writeJSON(os.Stdout, recipes)
		}
		formatTable(os.Stdout, recipes)
		return nil
	},
}

var recipeCmd = &cobra.Command{
	Use:   "recipe <id>",
	Short: "Show one recipe",
	Long: `Recipe fetches a single recipe and prints it in full. The detail view
accepts the camelCase field names some records carry.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := newClient().RecipePayload(cmd.Context(), args[0])
		if errors.Is(err, apierr.ErrNotFound) {
			return fmt.Errorf("recipe %s not found", args[0])
		}
		if err != nil {
			return err
		}

		recipe := normalize.Detail(raw)
		if jsonOutput(cmd) {
			return writeJSON(os.Stdout, recipe)
		}
		formatRecipe(os.Stdout, recipe)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recipesCmd, recipeCmd)
}
