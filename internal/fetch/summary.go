// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

var (
	errNoResultContainer = errors.New("missing result container")
	errNoSummaryEntry    = errors.New("no summary entry for identifier")
)

// esummary JSON structures. The result object mixes a "uids" array with one
// object per identifier, so entries are decoded lazily by key.
type esummaryResponse struct {
	Result map[string]json.RawMessage `json:"result"`
}

// summaryEntry uses pointers so an absent field can be told apart from an
// empty one.
type summaryEntry struct {
	Title      *string         `json:"title"`
	PubDate    *string         `json:"pubdate"`
	Authors    []summaryAuthor `json:"authors"`
	LastAuthor *string         `json:"lastauthor"`
	Error      string          `json:"error"`
}

type summaryAuthor struct {
	Name     string `json:"name"`
	AuthType string `json:"authtype"`
}

// summaryFields are the Record fields the esummary payload provides.
type summaryFields struct {
	Title      string
	PubDate    string
	Authors    string
	LastAuthor string
}

// parseSummary decodes an esummary body and extracts the fields for pmid.
func parseSummary(body []byte, pmid string) (summaryFields, error) {
	var sr esummaryResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return summaryFields{}, fmt.Errorf("decoding esummary: %w", err)
	}
	if sr.Result == nil {
		return summaryFields{}, errNoResultContainer
	}
	raw, ok := sr.Result[pmid]
	if !ok {
		return summaryFields{}, errNoSummaryEntry
	}

	var e summaryEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		return summaryFields{}, fmt.Errorf("decoding summary entry: %w", err)
	}
	if e.Error != "" {
		return summaryFields{}, fmt.Errorf("summary entry: %s", e.Error)
	}

	names := make([]string, 0, len(e.Authors))
	for _, a := range e.Authors {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}

	return summaryFields{
		Title:      orNA(e.Title),
		PubDate:    orNA(e.PubDate),
		Authors:    strings.Join(names, ", "),
		LastAuthor: orNA(e.LastAuthor),
	}, nil
}

func orNA(s *string) string {
	if s == nil {
		return types.NotAvailable
	}
	return *s
}
