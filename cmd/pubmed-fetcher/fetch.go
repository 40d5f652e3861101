// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pubmed-fetcher/internal/pipeline"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <query...>",
	Short: "Search PubMed, fetch article details, and write them to a file",
	Long: `Fetch runs the full pipeline: it searches PubMed for the query, fetches
the summary and full record of every returned article concurrently, and
writes one row per article to the output file.

Articles whose summary cannot be fetched are skipped. Articles whose full
record cannot be fetched or parsed are kept with Affiliations and
Corresponding Author Email set to N/A. No file is written when nothing
was found.`,
	Example: `  pubmed-fetcher fetch "cancer immunotherapy"
  pubmed-fetcher fetch crispr off-target --output crispr.csv --max-results 20`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringP("output", "o", "", "output file (default: pubmed_results.csv, or .json/.yaml to match --format)")
	fetchCmd.Flags().String("format", "csv", "output format: csv, json, or yaml")
	fetchCmd.Flags().Int("concurrency", 0, "identifiers fetched in parallel (0: one per CPU)")

	bindFlag("export.output", fetchCmd.Flags().Lookup("output"))
	bindFlag("export.format", fetchCmd.Flags().Lookup("format"))
	bindFlag("fetch.concurrency", fetchCmd.Flags().Lookup("concurrency"))

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return fmt.Errorf("provide a non-empty search query")
	}

	cfg, err := pipelineConfig()
	if err != nil {
		return err
	}

	_, err = pipeline.Run(cmd.Context(), pipeline.Options{
		Query:  query,
		Config: cfg,
		Log:    newLogger(viper.GetBool("verbose")),
	}, cmd.OutOrStdout())
	return err
}
