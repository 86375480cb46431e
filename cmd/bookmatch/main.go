// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the bookmatch CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bookmatch/internal/logging"
	"github.com/pdiddy/bookmatch/internal/secrets"
	"github.com/pdiddy/bookmatch/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the bookmatch CLI.
var rootCmd = &cobra.Command{
	Use:   "bookmatch",
	Short: "Recommend books from a local catalog",
	Long: `bookmatch asks a generative text service for a book that fits a reader's
preferences and checks the answer against a local catalog. When the suggested
book is not in the catalog it asks once more for a different one.

Use "catalog import" to load books, then "recommend" to get a suggestion.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Init(logging.Config{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
		})

		dir := viper.GetString("secrets_dir")
		s, err := secrets.Load(dir)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			l := logging.Logger()
			l.Debug().Strs("keys", keys).Str("dir", dir).Msg("loaded secrets")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./bookmatch.yaml or ~/.config/bookmatch/bookmatch.yaml)")
	pf.String("catalog-dir", "catalog", "directory holding catalog.db")
	pf.String("log-level", "info", "log level: trace, debug, info, warn, error")
	pf.String("log-format", "console", "log format: console or json")

	viper.BindPFlag("catalog.dir", pf.Lookup("catalog-dir"))
	viper.BindPFlag("log.level", pf.Lookup("log-level"))
	viper.BindPFlag("log.format", pf.Lookup("log-format"))

	setDefaults()
}

func setDefaults() {
	viper.SetDefault("ai.backend", string(types.BackendClaude))
	viper.SetDefault("ai.timeout", 30*time.Second)
	viper.SetDefault("ai.max_tokens", 1024)
	viper.SetDefault("ai.max_retries", 3)
	viper.SetDefault("ai.user_agent", "bookmatch/"+version)
	viper.SetDefault("catalog.dir", "catalog")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("secrets_dir", secrets.DefaultDir)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("bookmatch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "bookmatch"))
		}
	}

	viper.SetEnvPrefix("BOOKMATCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the typed configuration from viper. API keys fall
// back to the loaded secrets when not configured directly.
func loadConfig() types.Config {
	cfg := types.Config{
		AI: types.AIConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("ai.timeout"),
				UserAgent: viper.GetString("ai.user_agent"),
			},
			Backend:    types.AIBackendName(strings.ToLower(viper.GetString("ai.backend"))),
			Model:      viper.GetString("ai.model"),
			BaseURL:    viper.GetString("ai.base_url"),
			APIKey:     viper.GetString("ai.api_key"),
			MaxTokens:  viper.GetInt("ai.max_tokens"),
			MaxRetries: viper.GetInt("ai.max_retries"),
		},
		Catalog: types.CatalogConfig{Dir: viper.GetString("catalog.dir")},
		Log: types.LogConfig{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
		},
		User: viper.GetString("user"),
	}
	if cfg.AI.APIKey == "" {
		cfg.AI.APIKey = secrets.APIKeyFor(loadedSecrets, cfg.AI.Backend)
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
