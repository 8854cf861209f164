// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/gourmet/internal/session"
)

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Log in and store the session",
	Long: `Login exchanges a username and password for a bearer token and stores
both under the session directory (default .secrets/).

The password is read from --password-stdin, then GOURMET_PASSWORD, then
--password.`,
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	username := args[0]
	password, err := readPassword(cmd)
	if err != nil {
		return err
	}

	result, err := newClient().Login(cmd.Context(), username, password)
	if err != nil {
		return err
	}

	if err := sessionStore().Save(result.Credential(username)); err != nil {
		return fmt.Errorf("storing session: %w", err)
	}
	logger.Info("logged in", zap.String("username", username), zap.String("session_dir", cfg.SessionDir))
	fmt.Printf("Logged in as %s\n", username)
	return nil
}

func readPassword(cmd *cobra.Command) (string, error) {
	if fromStdin, _ := cmd.Flags().GetBool("password-stdin"); fromStdin {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("reading password from stdin: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
	if p := viper.GetString("password"); p != "" {
		return p, nil
	}
	p, _ := cmd.Flags().GetString("password")
	if p == "" {
		return "", errors.New("no password given: use --password-stdin or GOURMET_PASSWORD")
	}
	return p, nil
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := sessionStore().Clear(); err != nil {
			return err
		}
		fmt.Println("Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cred, err := credential()
		if err != nil {
			return err
		}
		fmt.Println(cred.Username)

		exp, ok, err := session.Expiry(cred.Token)
		switch {
		case err != nil:
			logger.Debug("token is not a JWT", zap.Error(err))
		case !ok:
			fmt.Println("token has no expiry")
		case time.Now().After(exp):
			fmt.Printf("token expired %s\n", exp.Local().Format(time.RFC1123))
		default:
			fmt.Printf("token expires %s\n", exp.Local().Format(time.RFC1123))
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().String("password", "", "password (visible in the process list; prefer --password-stdin)")
	loginCmd.Flags().Bool("password-stdin", false, "read the password from stdin")

	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}
