// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch retrieves per-article metadata from the PubMed esummary and
// efetch endpoints and turns each identifier into a types.Record.
//
// A failed summary fetch drops the identifier (the skip signal). A failed
// full-record fetch keeps the record with affiliations and email set to
// types.NotAvailable (degraded success). Neither surfaces as an error.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/iter"

	"github.com/pdiddy/pubmed-fetcher/internal/eutils"
	"github.com/pdiddy/pubmed-fetcher/internal/httputil"
	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// Fetcher fetches article details for PubMed identifiers. It holds no
// per-identifier state and is safe for concurrent use.
type Fetcher struct {
	HTTP *http.Client
	Cfg  types.FetchConfig
	Out  io.Writer
	Log  zerolog.Logger
}

// NewFetcher returns a Fetcher for cfg that writes status lines to w.
func NewFetcher(cfg types.FetchConfig, w io.Writer, log zerolog.Logger) *Fetcher {
	return &Fetcher{
		HTTP: &http.Client{Timeout: cfg.Timeout},
		Cfg:  cfg,
		Out:  &syncWriter{w: w},
		Log:  log,
	}
}

// Fetch produces the Record for pmid. The boolean is false when the summary
// could not be fetched or decoded, in which case the identifier must be
// dropped from the output.
func (f *Fetcher) Fetch(ctx context.Context, pmid string) (types.Record, bool) {
	w := f.out()
	fmt.Fprintf(w, "Fetching details for PMID: %s...\n", pmid)

	summary, err := f.fetchSummary(ctx, pmid)
	if err != nil {
		fmt.Fprintf(w, "warning: failed to fetch summary for PMID %s\n", pmid)
		f.Log.Debug().Str("pmid", pmid).Err(err).Msg("summary skipped")
		return types.Record{}, false
	}

	rec := types.Record{
		PMID:               pmid,
		Title:              summary.Title,
		PubDate:            summary.PubDate,
		Authors:            summary.Authors,
		LastAuthor:         summary.LastAuthor,
		Affiliations:       types.NotAvailable,
		CorrespondingEmail: types.NotAvailable,
	}

	body, err := f.fetchFullRecord(ctx, pmid)
	if err != nil {
		fmt.Fprintf(w, "warning: empty or invalid XML response for PMID %s\n", pmid)
		f.Log.Debug().Str("pmid", pmid).Err(err).Msg("full record unavailable")
		rec.Degraded = true
		return rec, true
	}

	authors, err := parseAuthors(body)
	if err != nil {
		fmt.Fprintf(w, "error: failed to parse XML for PMID %s\n", pmid)
		f.Log.Debug().Str("pmid", pmid).Err(err).Msg("full record unparseable")
		rec.Degraded = true
		return rec, true
	}

	rec.Affiliations = authors.joinedAffiliations()
	rec.CorrespondingEmail = authors.email()
	f.Log.Debug().Str("pmid", pmid).Int("affiliations", len(authors.Affiliations)).Msg("record complete")
	return rec, true
}

// FetchAll fetches every identifier through a bounded pool of
// Cfg.Concurrency goroutines (zero means GOMAXPROCS). The result keeps the
// order of ids; skipped identifiers are absent.
func (f *Fetcher) FetchAll(ctx context.Context, ids []string) []types.Record {
	if len(ids) == 0 {
		return []types.Record{}
	}
	workers := f.Cfg.Concurrency
	if workers < 0 {
		workers = 0
	}

	mapper := iter.Mapper[string, *types.Record]{MaxGoroutines: workers}
	results := mapper.Map(ids, func(id *string) *types.Record {
		rec, ok := f.Fetch(ctx, *id)
		if !ok {
			return nil
		}
		return &rec
	})

	records := make([]types.Record, 0, len(results))
	for _, r := range results {
		if r != nil {
			records = append(records, *r)
		}
	}
	return records
}

func (f *Fetcher) fetchSummary(ctx context.Context, pmid string) (summaryFields, error) {
	reqURL := eutils.URL(f.Cfg.EUtilsConfig, eutils.ESummary, url.Values{
		"id":      {pmid},
		"retmode": {"json"},
	})
	resp, err := f.get(ctx, reqURL)
	if err != nil {
		return summaryFields{}, err
	}
	if !resp.OK() {
		return summaryFields{}, fmt.Errorf("esummary returned HTTP %d", resp.StatusCode)
	}
	return parseSummary(resp.Body, pmid)
}

func (f *Fetcher) fetchFullRecord(ctx context.Context, pmid string) ([]byte, error) {
	reqURL := eutils.URL(f.Cfg.EUtilsConfig, eutils.EFetch, url.Values{
		"id":      {pmid},
		"retmode": {"xml"},
	})
	resp, err := f.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, fmt.Errorf("efetch returned HTTP %d", resp.StatusCode)
	}
	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil, fmt.Errorf("efetch returned an empty body")
	}
	return resp.Body, nil
}

func (f *Fetcher) get(ctx context.Context, reqURL string) (httputil.Response, error) {
	f.Log.Debug().Str("url", reqURL).Msg("request")
	resp, err := httputil.Get(ctx, f.HTTP, reqURL, f.Cfg.UserAgent)
	if err != nil {
		return resp, err
	}
	f.Log.Debug().Str("url", reqURL).Int("status", resp.StatusCode).Int("bytes", len(resp.Body)).Msg("response")
	return resp, nil
}

func (f *Fetcher) out() io.Writer {
	if f.Out == nil {
		return io.Discard
	}
	return f.Out
}

// syncWriter serializes writes from concurrent fetches so status lines do
// not interleave.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.w == nil {
		return len(p), nil
	}
	return s.w.Write(p)
}
