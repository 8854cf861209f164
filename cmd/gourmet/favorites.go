// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/gourmet/pkg/types"
)

var favoritesCmd = &cobra.Command{
	Use:     "favorites",
	Aliases: []string{"fav"},
	Short:   "List and manage the favorites of the logged-in user",
	Args:    cobra.NoArgs,
	RunE:    runFavoritesList,
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorites",
	Args:  cobra.NoArgs,
	RunE:  runFavoritesList,
}

func runFavoritesList(cmd *cobra.Command, args []string) error {
	cred, err := credential()
	if err != nil {
		return err
	}
	favorites, err := newClient().ListFavorites(cmd.Context(), cred)
	if err != nil {
		return err
	}
	if jsonOutput(cmd) {
		return writeJSON(os.Stdout, favorites)
	}
	formatTable(os.Stdout, favorites)
	return nil
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <recipe-id>",
	Short: "Add a recipe to favorites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cred, err := credential()
		if err != nil {
			return err
		}
		ack, err := newClient().AddFavorite(cmd.Context(), args[0], cred)
		if err != nil {
			return err
		}
		return report(cmd, ack, "Added %s to favorites\n", args[0])
	},
}

var favoritesRemoveCmd = &cobra.Command{
	Use:     "remove <recipe-id>",
	Aliases: []string{"rm"},
	Short:   "Remove a recipe from favorites",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cred, err := credential()
		if err != nil {
			return err
		}
		ack, err := newClient().RemoveFavorite(cmd.Context(), args[0], cred)
		if err != nil {
			return err
		}
		return report(cmd, ack, "Removed %s from favorites\n", args[0])
	},
}

var favoritesToggleCmd = &cobra.Command{
	Use:   "toggle <recipe-id>",
	Short: "Add a recipe to favorites, or remove it if already there",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cred, err := credential()
		if err != nil {
			return err
		}
		client := newClient()
		id := args[0]

		present, err := client.IsFavorite(cmd.Context(), id, cred)
		if err != nil {
			return err
		}
		if present {
			ack, err := client.RemoveFavorite(cmd.Context(), id, cred)
			if err != nil {
				return err
			}
			return report(cmd, ack, "Removed %s from favorites\n", id)
		}
		ack, err := client.AddFavorite(cmd.Context(), id, cred)
		if err != nil {
			return err
		}
		return report(cmd, ack, "Added %s to favorites\n", id)
	},
}

func report(cmd *cobra.Command, ack types.Ack, format string, args ...any) error {
	if jsonOutput(cmd) {
		return writeJSON(os.Stdout, ack)
	}
	fmt.Printf(format, args...)
	return nil
}

func init() {
	favoritesCmd.AddCommand(favoritesListCmd, favoritesAddCmd, favoritesRemoveCmd, favoritesToggleCmd)
	rootCmd.AddCommand(favoritesCmd)
}
