// Package config loads CLI settings from an optional YAML file. The file is
// itself checked and defaulted with a conform schema before it is decoded
// into Config.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/reoring/conform"
	"github.com/reoring/conform/source"
)

// Config holds settings shared by every command.
type Config struct {
	MaxDepth       int           `mapstructure:"max_depth"`
	PatternTimeout time.Duration `mapstructure:"pattern_timeout"`
	Language       string        `mapstructure:"language"`
	LogLevel       string        `mapstructure:"log_level"`
	Format         string        `mapstructure:"format"`
	Strict         bool          `mapstructure:"strict"`
}

var schema = conform.MustSchemaFromMap(map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"properties": map[string]any{
		"max_depth":       map[string]any{"type": "integer", "minimum": 1, "default": conform.DefaultMaxDepth},
		"pattern_timeout": map[string]any{"type": "string", "pattern": `^([0-9]+(\.[0-9]+)?(ns|us|ms|s|m|h))+$`, "default": conform.DefaultPatternTimeout.String()},
		"language":        map[string]any{"enum": []any{"en", "ja"}, "default": "en"},
		"log_level":       map[string]any{"enum": []any{"debug", "info", "warn", "error"}, "default": "info"},
		"format":          map[string]any{"enum": []any{"json", "yaml"}, "default": "json"},
		"strict":          map[string]any{"type": "boolean", "default": false},
	},
})

// Default returns the configuration used when no file is given.
func Default() Config {
	cfg, err := Decode(map[string]any{})
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads path. An empty path yields Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	raw, err := source.DecodeYAML(f, source.Options{Strict: true})
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	cfg, err := Decode(raw)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ErrNotMapping is returned when the configuration document is not a mapping.
var ErrNotMapping = errors.New("config: document must be a mapping")

// Decode checks raw against the configuration schema, fills defaults for
// missing keys and decodes the result.
func Decode(raw any) (Config, error) {
	if _, ok := raw.(map[string]any); !ok {
		return Config{}, ErrNotMapping
	}
	if iss := conform.Validate(raw, schema); iss != nil {
		return Config{}, fmt.Errorf("config: %w", iss)
	}
	filled := conform.GetValidValueOrDefault(schema, raw)

	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &cfg,
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(filled); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Options converts the limits into evaluation options.
func (c Config) Options() conform.Options {
	return conform.Options{MaxDepth: c.MaxDepth, PatternTimeout: c.PatternTimeout}
}
