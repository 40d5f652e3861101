// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one fetch-and-aggregate pass: search PubMed, fetch
// every returned identifier, and export the surviving records.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pubmed-fetcher/internal/export"
	"github.com/pdiddy/pubmed-fetcher/internal/fetch"
	"github.com/pdiddy/pubmed-fetcher/internal/search"
	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// Options configures a Run.
type Options struct {
	// Query is the free-text PubMed search term.
	Query string

	// Config holds the per-stage settings.
	Config types.PipelineConfig

	// HTTP, when set, replaces the per-stage HTTP clients.
	HTTP *http.Client

	// Log receives debug diagnostics.
	Log zerolog.Logger
}

// Summary holds the outcome of a Run.
type Summary struct {
	Identifiers int
	Records     int
	Degraded    int
	Skipped     int
	Written     bool
	Path        string
}

// Run searches, fetches, and exports, writing operator status lines to w.
//
// Only a failed search is returned as an error, together with export
// failures other than an empty record set. Zero search results and an
// all-skipped fetch are reported on w and leave Summary.Written false.
func Run(ctx context.Context, opts Options, w io.Writer) (Summary, error) {
	cfg := opts.Config
	path := cfg.Export.Output
	if path == "" {
		path = export.DefaultPath(cfg.Export.Format)
	}
	summary := Summary{Path: path}

	fmt.Fprintf(w, "Fetching PubMed data for query: %s...\n", opts.Query)

	client := search.NewClient(cfg.Search, opts.Log)
	if opts.HTTP != nil {
		client.HTTP = opts.HTTP
	}
	ids, err := client.Search(ctx, opts.Query, cfg.Search.MaxResults)
	if err != nil {
		return summary, fmt.Errorf("searching PubMed: %w", err)
	}
	summary.Identifiers = len(ids)
	if len(ids) == 0 {
		fmt.Fprintln(w, "No results found for the query.")
		return summary, nil
	}
	opts.Log.Debug().Strs("pmids", ids).Msg("search complete")

	fetcher := fetch.NewFetcher(cfg.Fetch, w, opts.Log)
	if opts.HTTP != nil {
		fetcher.HTTP = opts.HTTP
	}
	records := fetcher.FetchAll(ctx, ids)

	summary.Records = len(records)
	summary.Skipped = len(ids) - len(records)
	for _, r := range records {
		if r.Degraded {
			summary.Degraded++
		}
	}

	err = export.Write(records, path, cfg.Export.Format)
	switch {
	case errors.Is(err, export.ErrNoRecords):
		fmt.Fprintln(w, "No data to save!")
	case err != nil:
		printSummary(w, summary)
		return summary, fmt.Errorf("exporting results: %w", err)
	default:
		summary.Written = true
		fmt.Fprintf(w, "Data saved to %s\n", path)
	}

	printSummary(w, summary)
	return summary, nil
}

func printSummary(w io.Writer, s Summary) {
	fmt.Fprintf(w, "\nSummary: %d identifiers, %d records (%d degraded), %d skipped\n",
		s.Identifiers, s.Records, s.Degraded, s.Skipped)
}
