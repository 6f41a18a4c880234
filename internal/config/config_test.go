package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dledwards/ped/internal/config"
	"github.com/dledwards/ped/internal/editorerr"
)

func TestDefaultHasBuiltinSyntaxes(t *testing.T) {
	cfg := config.Default()
	rules, ok := cfg.Syntax("go")
	require.True(t, ok)
	require.NotEmpty(t, rules)
}

func TestUnknownSyntaxNotOK(t *testing.T) {
	cfg := config.Default()
	_, ok := cfg.Syntax("cobol")
	require.False(t, ok)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ped.yaml")
	err := os.WriteFile(path, []byte("show_line_numbers: false\ntab_width: 8\ncrlf: true\n"), 0o644)
	require.NoError(t, err)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.False(t, cfg.ShowLineNumbers)
	require.Equal(t, 8, cfg.TabWidth)
	require.True(t, cfg.CRLF)
	require.Equal(t, config.DefaultColors, cfg.Colors)
	// Built-in syntaxes survive the overlay since they aren't user-yaml driven.
	require.NotEmpty(t, cfg.Syntaxes)
}

func TestLoadMissingFileIsIOError(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	var ioErr *editorerr.ErrIO
	require.ErrorAs(t, err, &ioErr)
}
