// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads per-user values from a directory of plain-text files.
// Each file in the directory is one value: the filename is the key and the
// trimmed file contents are the value.
//
// Recognised keys: ncbi-email, ncbi-tool. They become the E-utilities
// email and tool identification parameters.
package secrets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// DefaultDir is the directory read by the CLI.
const DefaultDir = ".secrets/"

// Key files.
const (
	KeyEmail = "ncbi-email"
	KeyTool  = "ncbi-tool"
)

// Load reads all files in dir and returns a map of filename to trimmed
// contents. A missing directory is not an error; Load returns an empty map.
// Unreadable files produce a warning on w and are skipped.
func Load(dir string, w io.Writer) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	values := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(w, "warning: could not read secret %s: %v\n", name, err)
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			values[name] = value
		}
	}
	return values, nil
}

// ApplyIdentification fills cfg.Email and cfg.Tool from values when cfg does
// not already set them. Explicit configuration wins over files.
func ApplyIdentification(values map[string]string, cfg *types.EUtilsConfig) {
	if cfg.Email == "" {
		cfg.Email = values[KeyEmail]
	}
	if cfg.Tool == "" {
		cfg.Tool = values[KeyTool]
	}
}
