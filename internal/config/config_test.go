package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/conform"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, conform.DefaultMaxDepth, cfg.MaxDepth)
	assert.Equal(t, conform.DefaultPatternTimeout, cfg.PatternTimeout)
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.Format)
	assert.False(t, cfg.Strict)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conform.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_depth: 8\npattern_timeout: 250ms\nlanguage: ja\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.MaxDepth)
	assert.Equal(t, 250*time.Millisecond, cfg.PatternTimeout)
	assert.Equal(t, "ja", cfg.Language)
	assert.Equal(t, "info", cfg.LogLevel)

	opt := cfg.Options()
	assert.Equal(t, 8, opt.MaxDepth)
	assert.Equal(t, 250*time.Millisecond, opt.PatternTimeout)
}

func TestLoad_EmptyPathAndEmptyFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o600))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDecode_RejectsBadValues(t *testing.T) {
	cases := []map[string]any{
		{"max_depth": int64(0)},
		{"pattern_timeout": "soon"},
		{"language": "fr"},
		{"unknown": true},
	}
	for _, raw := range cases {
		_, err := Decode(raw)
		require.Error(t, err, "%v", raw)
		_, ok := conform.AsIssues(err)
		assert.True(t, ok, "expected issues for %v", raw)
	}
	_, err := Decode([]any{})
	assert.ErrorIs(t, err, ErrNotMapping)
}

func TestLoad_DuplicateKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dup.yaml")
	require.NoError(t, os.WriteFile(path, []byte("language: en\nlanguage: ja\n"), 0o600))
	_, err := Load(path)
	assert.Error(t, err)
}
