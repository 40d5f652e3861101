// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSummaryFullEntry(t *testing.T) {
	body := `{"header":{"type":"esummary","version":"0.3"},"result":{"uids":["111"],"111":{
		"uid":"111","pubdate":"2023 Mar 14","title":"Checkpoint inhibitors in practice.",
		"authors":[{"name":"Smith J","authtype":"Author"},{"name":"Doe A","authtype":"Author"}],
		"lastauthor":"Doe A"}}}`

	got, err := parseSummary([]byte(body), "111")
	require.NoError(t, err)
	assert.Equal(t, summaryFields{
		Title:      "Checkpoint inhibitors in practice.",
		PubDate:    "2023 Mar 14",
		Authors:    "Smith J, Doe A",
		LastAuthor: "Doe A",
	}, got)
}

func TestParseSummaryMissingFieldsDefault(t *testing.T) {
	body := `{"result":{"uids":["222"],"222":{"uid":"222"}}}`

	got, err := parseSummary([]byte(body), "222")
	require.NoError(t, err)
	assert.Equal(t, "N/A", got.Title)
	assert.Equal(t, "N/A", got.PubDate)
	assert.Equal(t, "", got.Authors)
	assert.Equal(t, "N/A", got.LastAuthor)
}

func TestParseSummaryEmptyStringIsKept(t *testing.T) {
	body := `{"result":{"333":{"title":"","pubdate":"2020","authors":[],"lastauthor":""}}}`

	got, err := parseSummary([]byte(body), "333")
	require.NoError(t, err)
	assert.Equal(t, "", got.Title)
	assert.Equal(t, "", got.LastAuthor)
}

func TestParseSummarySkipConditions(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<eSummaryResult/>`},
		{"missing result", `{"header":{}}`},
		{"missing entry", `{"result":{"uids":["999"],"999":{"title":"other"}}}`},
		{"entry error", `{"result":{"uids":["111"],"111":{"uid":"111","error":"cannot get document summary"}}}`},
		{"entry wrong shape", `{"result":{"111":"not an object"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseSummary([]byte(tt.body), "111")
			assert.Error(t, err)
		})
	}
}
