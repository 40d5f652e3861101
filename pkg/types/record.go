// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pubmed-fetcher pipeline:
// the per-article Record produced by the fetch stage and read by the export
// stage, and the configuration structs for each stage.
package types

// NotAvailable is the placeholder written for any field the remote API did
// not supply.
const NotAvailable = "N/A"

// CSVHeader is the fixed column schema of the CSV export. Record.CSVRow
// returns fields in the same order.
var CSVHeader = []string{
	"PubMed ID",
	"Title",
	"Publication Date",
	"Authors",
	"Last Author",
	"Affiliations",
	"Corresponding Author Email",
}

// Record holds the aggregated metadata for one PubMed article.
// A Record exists only for identifiers whose summary fetch succeeded; fields
// the API did not supply hold NotAvailable.
type Record struct {
	// PMID is the PubMed identifier returned by the search stage.
	PMID string `json:"pmid" yaml:"pmid"`

	// Title is the article title from the summary payload.
	Title string `json:"title" yaml:"title"`

	// PubDate is the raw publication date string, unparsed (e.g. "2023 Mar 14").
	PubDate string `json:"publication_date" yaml:"publication_date"`

	// Authors lists author names joined with ", " in source order.
	Authors string `json:"authors" yaml:"authors"`

	// LastAuthor is the last author as reported by the summary payload.
	LastAuthor string `json:"last_author" yaml:"last_author"`

	// Affiliations lists every author affiliation text joined with "; ".
	Affiliations string `json:"affiliations" yaml:"affiliations"`

	// CorrespondingEmail is the first affiliation text containing "@".
	CorrespondingEmail string `json:"corresponding_author_email" yaml:"corresponding_author_email"`

	// Degraded is set when the full-record fetch failed and Affiliations and
	// CorrespondingEmail were defaulted. It is not exported.
	Degraded bool `json:"-" yaml:"-"`
}

// CSVRow returns the record fields in CSVHeader order.
func (r Record) CSVRow() []string {
	return []string{
		r.PMID,
		r.Title,
		r.PubDate,
		r.Authors,
		r.LastAuthor,
		r.Affiliations,
		r.CorrespondingEmail,
	}
}
