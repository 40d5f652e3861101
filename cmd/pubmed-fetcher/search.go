// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pubmed-fetcher/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "List the PubMed identifiers matching a query",
	Long: `Search runs only the first stage of the pipeline and prints the matching
PubMed identifiers in ranked order, one per line. Nothing is written to disk.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Bool("json", false, "output identifiers as a JSON array")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))

	cfg, err := pipelineConfig()
	if err != nil {
		return err
	}

	client := search.NewClient(cfg.Search, newLogger(viper.GetBool("verbose")))
	ids, err := client.Search(cmd.Context(), query, cfg.Search.MaxResults)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ids)
	}

	if len(ids) == 0 {
		fmt.Fprintln(w, "No results found for the query.")
		return nil
	}
	for _, id := range ids {
		fmt.Fprintln(w, id)
	}
	return nil
}
