// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes fetched records to disk as CSV (the default), JSON,
// or YAML. Files are written through a temporary file and renamed into
// place, so an existing file is either fully replaced or left untouched.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// DefaultOutput is the output path used when none is given.
const DefaultOutput = "pubmed_results.csv"

var (
	// ErrNoRecords is returned when there is nothing to write. No file is
	// created in that case.
	ErrNoRecords = errors.New("no records to export")

	// ErrUnknownFormat is returned by ParseFormat for unsupported names.
	ErrUnknownFormat = errors.New("unknown export format")
)

// ParseFormat maps a format name to an ExportFormat. The empty string
// selects CSV.
func ParseFormat(name string) (types.ExportFormat, error) {
	switch types.ExportFormat(strings.ToLower(strings.TrimSpace(name))) {
	case "", types.FormatCSV:
		return types.FormatCSV, nil
	case types.FormatJSON:
		return types.FormatJSON, nil
	case types.FormatYAML, "yml":
		return types.FormatYAML, nil
	default:
		return "", fmt.Errorf("%w %q: use csv, json, or yaml", ErrUnknownFormat, name)
	}
}

// DefaultPath returns the default output path for format:
// pubmed_results.csv, pubmed_results.json, or pubmed_results.yaml.
func DefaultPath(format types.ExportFormat) string {
	if format == "" || format == types.FormatCSV {
		return DefaultOutput
	}
	return strings.TrimSuffix(DefaultOutput, filepath.Ext(DefaultOutput)) + "." + string(format)
}

// Write serializes records in format and writes them to path, replacing any
// existing file.
func Write(records []types.Record, path string, format types.ExportFormat) error {
	if len(records) == 0 {
		return ErrNoRecords
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case "", types.FormatCSV:
		var buf bytes.Buffer
		err = EncodeCSV(&buf, records)
		data = buf.Bytes()
	case types.FormatJSON:
		data, err = json.MarshalIndent(records, "", "  ")
		data = append(data, '\n')
	case types.FormatYAML:
		data, err = yaml.Marshal(records)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", format, err)
	}

	return writeFile(path, data)
}

// WriteCSV writes records to path as CSV.
func WriteCSV(records []types.Record, path string) error {
	return Write(records, path, types.FormatCSV)
}

// EncodeCSV writes the header row and one row per record to w. Fields are
// quoted per RFC 4180 and rows end in CRLF.
func EncodeCSV(w io.Writer, records []types.Record) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(types.CSVHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(r.CSVRow()); err != nil {
			return fmt.Errorf("writing CSV row for PMID %s: %w", r.PMID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeFile writes data to a temporary file next to path and renames it
// into place.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, ".export-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(data)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
