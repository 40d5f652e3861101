// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pubmed-fetcher CLI.
// Subcommands: fetch (search, fetch details, export), search (identifiers
// only), version.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/pubmed-fetcher/internal/eutils"
	"github.com/pdiddy/pubmed-fetcher/internal/export"
	"github.com/pdiddy/pubmed-fetcher/internal/search"
	"github.com/pdiddy/pubmed-fetcher/internal/secrets"
	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "pubmed-fetcher/0.1"
)

// loadedSecrets holds values loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the pubmed-fetcher CLI.
var rootCmd = &cobra.Command{
	Use:   "pubmed-fetcher",
	Short: "Fetch PubMed article metadata and save it as CSV",
	Long: `pubmed-fetcher searches PubMed through the NCBI E-utilities API, fetches
title, publication date, authors, affiliations, and a corresponding-author
email for each matching article, and writes the records to a CSV file.

Settings are read from flags, PUBMED_FETCHER_* environment variables, and
pubmed-fetcher.yaml (in . or ~/.config/pubmed-fetcher), in that order.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(secrets.DefaultDir, cmd.ErrOrStderr())
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
			fmt.Fprintf(cmd.ErrOrStderr(), "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./pubmed-fetcher.yaml or ~/.config/pubmed-fetcher/pubmed-fetcher.yaml)")
	pf.Bool("verbose", false, "print debug diagnostics to stderr")
	pf.Int("max-results", search.DefaultMaxResults, "maximum number of PubMed identifiers to fetch")
	pf.Duration("timeout", defaultTimeout, "HTTP request timeout (0 disables)")
	pf.String("user-agent", defaultUserAgent, "User-Agent header for E-utilities requests")
	pf.String("base-url", eutils.DefaultBaseURL, "E-utilities base URL")
	pf.String("email", "", "contact email sent to NCBI (default: .secrets/ncbi-email)")
	pf.String("tool", "", "tool name sent to NCBI (default: .secrets/ncbi-tool)")

	bindFlag("verbose", pf.Lookup("verbose"))
	bindFlag("search.max_results", pf.Lookup("max-results"))
	bindFlag("http.timeout", pf.Lookup("timeout"))
	bindFlag("http.user_agent", pf.Lookup("user-agent"))
	bindFlag("eutils.base_url", pf.Lookup("base-url"))
	bindFlag("eutils.email", pf.Lookup("email"))
	bindFlag("eutils.tool", pf.Lookup("tool"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pubmed-fetcher")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pubmed-fetcher"))
		}
	}

	viper.SetEnvPrefix("PUBMED_FETCHER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func bindFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding flag for %s: %v", key, err))
	}
}

// pipelineConfig assembles the stage configuration from viper and the
// loaded secrets.
func pipelineConfig() (types.PipelineConfig, error) {
	httpCfg := types.HTTPConfig{
		Timeout:   viper.GetDuration("http.timeout"),
		UserAgent: viper.GetString("http.user_agent"),
	}
	eu := types.EUtilsConfig{
		BaseURL: viper.GetString("eutils.base_url"),
		Email:   viper.GetString("eutils.email"),
		Tool:    viper.GetString("eutils.tool"),
	}
	secrets.ApplyIdentification(loadedSecrets, &eu)

	format, err := export.ParseFormat(viper.GetString("export.format"))
	if err != nil {
		return types.PipelineConfig{}, err
	}

	maxResults := viper.GetInt("search.max_results")
	if maxResults < 0 {
		return types.PipelineConfig{}, fmt.Errorf("max-results must not be negative, got %d", maxResults)
	}
	concurrency := viper.GetInt("fetch.concurrency")
	if concurrency < 0 {
		return types.PipelineConfig{}, fmt.Errorf("concurrency must not be negative, got %d", concurrency)
	}

	return types.PipelineConfig{
		Search: types.SearchConfig{HTTPConfig: httpCfg, EUtilsConfig: eu, MaxResults: maxResults},
		Fetch:  types.FetchConfig{HTTPConfig: httpCfg, EUtilsConfig: eu, Concurrency: concurrency},
		Export: types.ExportConfig{Output: viper.GetString("export.output"), Format: format},
	}, nil
}

// newLogger returns a console debug logger on stderr when verbose is set,
// and a disabled logger otherwise.
func newLogger(verbose bool) zerolog.Logger {
	if !verbose {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(zerolog.DebugLevel).
		With().Timestamp().Logger()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
