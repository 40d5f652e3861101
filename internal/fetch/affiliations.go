// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

var errNoXMLElement = errors.New("no XML element found")

// xmlAuthor is the part of a PubMed <Author> element the fetcher reads.
type xmlAuthor struct {
	AffiliationInfo []struct {
		Affiliation *xmlText `xml:"Affiliation"`
	} `xml:"AffiliationInfo"`
}

type xmlText struct {
	Text string `xml:",chardata"`
}

// affiliation returns the author's first AffiliationInfo/Affiliation text.
func (a xmlAuthor) affiliation() (string, bool) {
	for _, info := range a.AffiliationInfo {
		if info.Affiliation != nil {
			return strings.TrimSpace(info.Affiliation.Text), true
		}
	}
	return "", false
}

// authorInfo holds what an efetch document yields.
type authorInfo struct {
	Affiliations []string
	Email        string
}

// parseAuthors walks every <Author> element of an efetch document in
// document order, wherever it is nested, and collects affiliation texts.
// The first affiliation text containing "@" is the corresponding-author
// email. Empty affiliation texts are ignored.
func parseAuthors(body []byte) (authorInfo, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))

	var info authorInfo
	sawElement := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return authorInfo{}, fmt.Errorf("parsing XML: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		sawElement = true
		if start.Name.Local != "Author" {
			continue
		}

		var a xmlAuthor
		if err := dec.DecodeElement(&a, &start); err != nil {
			return authorInfo{}, fmt.Errorf("parsing Author element: %w", err)
		}
		text, found := a.affiliation()
		if !found || text == "" {
			continue
		}
		info.Affiliations = append(info.Affiliations, text)
		if info.Email == "" && strings.Contains(text, "@") {
			info.Email = text
		}
	}

	if !sawElement {
		return authorInfo{}, errNoXMLElement
	}
	return info, nil
}

// joinedAffiliations returns the affiliations joined with "; ", or
// NotAvailable when there are none.
func (ai authorInfo) joinedAffiliations() string {
	if len(ai.Affiliations) == 0 {
		return types.NotAvailable
	}
	return strings.Join(ai.Affiliations, "; ")
}

// email returns the selected email text, or NotAvailable.
func (ai authorInfo) email() string {
	if ai.Email == "" {
		return types.NotAvailable
	}
	return ai.Email
}
