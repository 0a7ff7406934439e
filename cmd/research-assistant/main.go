// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the research-assistant CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/research-assistant/internal/secrets"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

var logger zerolog.Logger

// secretDefault returns fallback when set, otherwise the secret value
// for key if one was loaded.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the research-assistant CLI.
var rootCmd = &cobra.Command{
	Use:   "research-assistant",
	Short: "Academic search, page reading, and document drafting for research work",
	Long: `research-assistant searches academic paper databases (arXiv, Semantic
Scholar) through a configured API proxy, reads web pages and PDFs into
markdown, and manages a directory of named working documents that can be
reviewed with an LLM and exported to Word.

Each capability is a subcommand: search, read, doc, review, and send.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
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
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}

		level, err := zerolog.ParseLevel(viper.GetString("log_level"))
		if err != nil {
			return fmt.Errorf("parsing log_level: %w", err)
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			Level(level).
			With().Timestamp().Logger()
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./research-assistant.yaml or ~/.config/research-assistant/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level: trace, debug, info, warn, error")
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("research-assistant")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "research-assistant"))
		}
	}

	viper.SetEnvPrefix("RESEARCH_ASSISTANT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the component configuration from viper and the
// loaded secrets, with package defaults filled in.
func loadConfig() types.AssistantConfig {
	cfg := types.AssistantConfig{
		Scholar: types.ScholarConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("scholar.timeout"),
				UserAgent: viper.GetString("scholar.user_agent"),
			},
			ProxyBaseURL:          viper.GetString("scholar.proxy_base_url"),
			MaxResults:            viper.GetInt("scholar.max_results"),
			SemanticScholarAPIKey: secretDefault("semantic-scholar-api-key", viper.GetString("scholar.semantic_scholar_api_key")),
		},
		Reader: types.ReaderConfig{
			Timeout:   viper.GetDuration("reader.timeout"),
			UserAgent: viper.GetString("reader.user_agent"),
		},
		Store: types.StoreConfig{
			DocsDir: viper.GetString("store.docs_dir"),
		},
		Review: types.ReviewConfig{
			Model:     viper.GetString("review.model"),
			APIKey:    secretDefault("anthropic-api-key", viper.GetString("review.api_key")),
			BaseURL:   viper.GetString("review.base_url"),
			MaxSteps:  viper.GetInt("review.max_steps"),
			MaxTokens: viper.GetInt("review.max_tokens"),
			Timeout:   viper.GetDuration("review.timeout"),
		},
	}
	return cfg.WithDefaults()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
