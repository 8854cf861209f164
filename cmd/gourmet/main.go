// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the gourmet CLI. Each upstream
// resource is a subcommand; the stored session stands in for the browser's
// local storage.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/gourmet/internal/gourmet"
	"github.com/pdiddy/gourmet/internal/httputil"
	"github.com/pdiddy/gourmet/internal/logging"
	"github.com/pdiddy/gourmet/internal/session"
	"github.com/pdiddy/gourmet/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	cfg    types.Config
	logger = zap.NewNop()
)

// rootCmd is the base command for the gourmet CLI.
var rootCmd = &cobra.Command{
	Use:   "gourmet",
	Short: "Browse the Gourmet recipe catalogue and manage favorites",
	Long: `gourmet talks to the Gourmet recipe service. It lists and shows recipes,
logs in, manages the favorites of the logged-in user, and keeps a local
SQLite snapshot of the catalogue for offline search and export.

Settings come from gourmet.yaml, GOURMET_* environment variables and a .env
file in the working directory.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("decoding configuration: %w", err)
		}
		cfg.ApplyDefaults()

		if v, _ := cmd.Flags().GetBool("verbose"); v {
			cfg.Log.Level = "debug"
		}
		l, err := logging.New(cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./gourmet.yaml or ~/.config/gourmet/config.yaml)")
	rootCmd.PersistentFlags().String("base-url", "", "upstream service origin")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log every negotiation attempt")
	rootCmd.PersistentFlags().Bool("json", false, "print JSON instead of a table")

	viper.BindPFlag("base_url", rootCmd.PersistentFlags().Lookup("base-url"))

	viper.SetDefault("base_url", types.DefaultBaseURL)
	viper.SetDefault("timeout", "30s")
	viper.SetDefault("user_agent", "gourmet/"+version)
	viper.SetDefault("session_dir", ".secrets")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("negotiation.accept", []string{})
	viper.SetDefault("catalogue.db", "gourmet.db")
}

func initConfig() {
	// A missing .env is normal.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("gourmet")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "gourmet"))
		}
	}

	viper.SetEnvPrefix("GOURMET")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newClient builds the upstream client from the loaded configuration.
func newClient() *gourmet.Client {
	opts := []gourmet.Option{
		gourmet.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		gourmet.WithUserAgent(cfg.UserAgent),
		gourmet.WithLogger(logger),
	}
	if len(cfg.Negotiation.Accept) > 0 {
		opts = append(opts, gourmet.WithVariants(httputil.AcceptVariants(cfg.Negotiation.Accept)))
	}
	return gourmet.New(cfg.BaseURL, opts...)
}

func sessionStore() session.Store {
	return session.Store{Dir: cfg.SessionDir}
}

// credential loads the stored session for commands that need one.
func credential() (types.Credential, error) {
	cred, err := sessionStore().Load()
	if err != nil {
		return types.Credential{}, fmt.Errorf("%w: run 'gourmet login' first", err)
	}
	return cred, nil
}

func jsonOutput(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func main() {
	ctx := context.Background()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
