// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  map[string]string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, KeyEmail, "  ops@example.org \n")
				writeFile(t, dir, KeyTool, "pubmed-fetcher")
				return dir
			},
			want: map[string]string{
				KeyEmail: "ops@example.org",
				KeyTool:  "pubmed-fetcher",
			},
		},
		{
			name: "returns empty map for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: map[string]string{},
		},
		{
			name: "skips empty files, dotfiles, and subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, KeyEmail, "a@b.c")
				writeFile(t, dir, KeyTool, "   \n\t ")
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, ".hidden", "x")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
				return dir
			},
			want: map[string]string{KeyEmail: "a@b.c"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.setup(t), &bytes.Buffer{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadUnreadableFileWarns(t *testing.T) {
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("file permissions are not enforced")
	}
	dir := t.TempDir()
	writeFile(t, dir, KeyEmail, "a@b.c")
	writeFile(t, dir, KeyTool, "tool")
	require.NoError(t, os.Chmod(filepath.Join(dir, KeyTool), 0o000))

	var w bytes.Buffer
	got, err := Load(dir, &w)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{KeyEmail: "a@b.c"}, got)
	assert.Contains(t, w.String(), "warning: could not read secret "+KeyTool)
}

func TestLoadPathIsFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "not-a-dir", "x")

	_, err := Load(filepath.Join(dir, "not-a-dir"), &bytes.Buffer{})
	assert.Error(t, err)
}

func TestApplyIdentification(t *testing.T) {
	values := map[string]string{KeyEmail: "file@example.org", KeyTool: "file-tool"}

	var empty types.EUtilsConfig
	ApplyIdentification(values, &empty)
	assert.Equal(t, "file@example.org", empty.Email)
	assert.Equal(t, "file-tool", empty.Tool)

	explicit := types.EUtilsConfig{Email: "flag@example.org"}
	ApplyIdentification(values, &explicit)
	assert.Equal(t, "flag@example.org", explicit.Email)
	assert.Equal(t, "file-tool", explicit.Tool)

	none := types.EUtilsConfig{}
	ApplyIdentification(map[string]string{}, &none)
	assert.Equal(t, types.EUtilsConfig{}, none)
}
