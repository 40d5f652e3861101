// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries the PubMed esearch endpoint and returns the ordered
// list of matching PubMed identifiers.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pubmed-fetcher/internal/eutils"
	"github.com/pdiddy/pubmed-fetcher/internal/httputil"
	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// DefaultMaxResults is the result cap applied when none is configured.
const DefaultMaxResults = 6

var (
	// ErrEmptyQuery is returned when the query is blank after trimming.
	ErrEmptyQuery = errors.New("query is empty: provide a search term")

	// ErrTransport matches any *TransportError.
	ErrTransport = errors.New("transport error")

	// ErrMalformedPayload is returned when the search response cannot be
	// decoded or lacks the esearchresult container.
	ErrMalformedPayload = errors.New("malformed esearch payload")
)

// TransportError reports a failed request or a non-success status from an
// E-utilities endpoint. StatusCode is zero when no response was received.
type TransportError struct {
	Stage      string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s returned HTTP %d", e.Stage, e.StatusCode)
	}
	return fmt.Sprintf("%s request failed: %v", e.Stage, e.Err)
}

// Is lets errors.Is(err, ErrTransport) match any TransportError.
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

func (e *TransportError) Unwrap() error { return e.Err }

// Client queries esearch.
type Client struct {
	HTTP *http.Client
	Cfg  types.SearchConfig
	Log  zerolog.Logger
}

// NewClient returns a Client for cfg with an HTTP client honouring cfg.Timeout.
func NewClient(cfg types.SearchConfig, log zerolog.Logger) *Client {
	return &Client{
		HTTP: &http.Client{Timeout: cfg.Timeout},
		Cfg:  cfg,
		Log:  log,
	}
}

// Search issues one esearch request for query and returns up to maxResults
// identifiers in the order the API ranked them. maxResults <= 0 falls back to
// the configured cap, then to DefaultMaxResults.
//
// A successful search with no matches returns an empty, non-nil slice and a
// nil error. A failed request or non-success status returns an error
// matching ErrTransport so callers can tell the two apart.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if maxResults <= 0 {
		maxResults = c.Cfg.MaxResults
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	reqURL := eutils.URL(c.Cfg.EUtilsConfig, eutils.ESearch, url.Values{
		"term":    {query},
		"retmode": {"json"},
		"retmax":  {strconv.Itoa(maxResults)},
	})
	c.Log.Debug().Str("url", reqURL).Msg("esearch request")

	resp, err := httputil.Get(ctx, c.HTTP, reqURL, c.Cfg.UserAgent)
	if err != nil {
		return nil, &TransportError{Stage: "esearch", Err: err}
	}
	c.Log.Debug().Int("status", resp.StatusCode).Int("bytes", len(resp.Body)).Msg("esearch response")
	if !resp.OK() {
		return nil, &TransportError{Stage: "esearch", StatusCode: resp.StatusCode}
	}

	var sr esearchResponse
	if err := json.Unmarshal(resp.Body, &sr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if sr.Result == nil {
		return nil, fmt.Errorf("%w: missing esearchresult", ErrMalformedPayload)
	}
	if sr.Result.Error != "" {
		c.Log.Debug().Str("error", sr.Result.Error).Msg("esearch reported an error")
	}

	ids := make([]string, 0, len(sr.Result.IDList))
	for _, id := range sr.Result.IDList {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) > maxResults {
		ids = ids[:maxResults]
	}
	return ids, nil
}

// esearch JSON structures.
type esearchResponse struct {
	Result *esearchResult `json:"esearchresult"`
}

type esearchResult struct {
	Count  string   `json:"count"`
	IDList []string `json:"idlist"`
	Error  string   `json:"ERROR"`
}
