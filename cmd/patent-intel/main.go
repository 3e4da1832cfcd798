// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the patent-intel CLI.
package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/patent-intel/internal/search"
	"github.com/pdiddy/patent-intel/internal/secrets"
	"github.com/pdiddy/patent-intel/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "patent-intel/0.1"
)

// usptoAPIKey is loaded once at startup from the environment or .env.
var usptoAPIKey string

// rootCmd is the base command for the patent-intel CLI.
var rootCmd = &cobra.Command{
	Use:   "patent-intel",
	Short: "Patent intelligence for the access-control industry",
	Long: `patent-intel tracks competitor patent activity and technology trends.
It resolves patent records through tiered sources (USPTO Open Data Portal,
Google Patents, built-in samples), caches them as Snowflake upserts, and
runs audited analysis sessions that leave a reviewable paper trail.

Each capability is a subcommand: search, load, trends, and investigate.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		usptoAPIKey = secrets.APIKey("USPTO_API_KEY", secrets.DefaultEnvFile)
		if usptoAPIKey == "" {
			fmt.Fprintln(os.Stderr, "No USPTO_API_KEY found; USPTO tier will be skipped")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./patent-intel.yaml or ~/.config/patent-intel/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("patent-intel")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "patent-intel"))
		}
	}

	viper.SetEnvPrefix("PATENT_INTEL")
	viper.AutomaticEnv()

	viper.SetDefault("search.max_results", 20)
	viper.SetDefault("bigquery.country", "US")
	viper.SetDefault("workflow.base_dir", "analysis")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newResolver builds the tiered resolver from flags and loaded secrets.
func newResolver(noUSPTO, noGoogle bool) *search.Resolver {
	cfg := types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   defaultTimeout,
			UserAgent: defaultUserAgent,
		},
		MaxResults:          viper.GetInt("search.max_results"),
		USPTOAPIKey:         usptoAPIKey,
		EnableUSPTO:         !noUSPTO,
		EnableGooglePatents: !noGoogle,
	}
	client := &http.Client{Timeout: cfg.Timeout}
	return search.NewResolver(os.Stderr, search.NewDefaultTiers(cfg, client)...)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
