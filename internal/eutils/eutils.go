// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package eutils builds request URLs for the NCBI E-utilities endpoints
// (esearch, esummary, efetch) against the pubmed database.
package eutils

import (
	"net/url"
	"strings"

	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// DefaultBaseURL is the public E-utilities root.
const DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// Database is the Entrez database every request targets.
const Database = "pubmed"

// Endpoint names.
const (
	ESearch  = "esearch.fcgi"
	ESummary = "esummary.fcgi"
	EFetch   = "efetch.fcgi"
)

// URL returns the request URL for endpoint with params. The db parameter is
// always set to pubmed, and the email and tool identification parameters are
// added when cfg carries them. An empty cfg.BaseURL falls back to
// DefaultBaseURL.
func URL(cfg types.EUtilsConfig, endpoint string, params url.Values) string {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}

	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("db", Database)
	if cfg.Email != "" {
		q.Set("email", cfg.Email)
	}
	if cfg.Tool != "" {
		q.Set("tool", cfg.Tool)
	}
	return base + "/" + endpoint + "?" + q.Encode()
}
