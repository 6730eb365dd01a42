// Package source loads schema and value documents from JSON or YAML into the
// in-memory trees interpreted by package conform, and writes results back.
//
// Decoded trees use nil, bool, json.Number (JSON) or int64/float64 (YAML),
// string, []any and map[string]any.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/reoring/conform"
)

// Format names a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml" in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("source: unknown format %q", s)
}

// FormatFromPath picks the format by file extension: .yaml and .yml are YAML,
// everything else is JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Options controls decoding.
type Options struct {
	// Strict rejects objects that repeat a key.
	Strict bool
}

// ErrTrailingData is returned when a document continues after its first value.
var ErrTrailingData = errors.New("source: unexpected data after top-level value")

// DuplicateKeyError reports a key repeated within one object. Line and Col are
// set for YAML input only.
type DuplicateKeyError struct {
	Key       string
	Path      string
	Line, Col int
	FirstLine int
	FirstCol  int
}

func (e *DuplicateKeyError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("source: duplicate key %q at %s (%d:%d, first at %d:%d)", e.Key, e.Path, e.Line, e.Col, e.FirstLine, e.FirstCol)
	}
	return fmt.Sprintf("source: duplicate key %q at %s", e.Key, e.Path)
}

// Decode reads one document in the given format.
func Decode(r io.Reader, f Format, opt Options) (any, error) {
	switch f {
	case FormatYAML:
		return DecodeYAML(r, opt)
	case FormatJSON, "":
		return DecodeJSON(r, opt)
	}
	return nil, fmt.Errorf("source: unknown format %q", f)
}

// ReadFile decodes the document at path, choosing the format by extension.
func ReadFile(path string, opt Options) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: read %s: %w", path, err)
	}
	v, err := Decode(bytes.NewReader(data), FormatFromPath(path), opt)
	if err != nil {
		return nil, fmt.Errorf("source: decode %s: %w", path, err)
	}
	return v, nil
}

// LoadSchema reads a schema document from path.
func LoadSchema(path string, opt Options) (*conform.Schema, error) {
	v, err := ReadFile(path, opt)
	if err != nil {
		return nil, err
	}
	return SchemaFromValue(v)
}

// SchemaFromValue interprets a decoded document as a schema. The root must be
// an object.
func SchemaFromValue(v any) (*conform.Schema, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("source: %w", conform.ErrNotSchemaObject)
	}
	return conform.SchemaFromMap(m)
}

// Encode writes v in the given format, indented for humans. Undefined is
// written as null.
func Encode(w io.Writer, v any, f Format) error {
	v = plain(v)
	switch f {
	case FormatYAML:
		return encodeYAML(w, v)
	case FormatJSON, "":
		return encodeJSON(w, v)
	}
	return fmt.Errorf("source: unknown format %q", f)
}

// plain converts conform-specific representations into values both encoders
// understand.
func plain(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = plain(val)
		}
		return out
	case *conform.Object:
		if t == nil {
			return nil
		}
		out := make(map[string]any, t.Len())
		for _, k := range t.Keys() {
			val, _ := t.Own(k)
			out[k] = plain(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = plain(val)
		}
		return out
	}
	if conform.IsUndefined(v) {
		return nil
	}
	return v
}

// pointer renders a JSON Pointer from path segments.
func pointer(segs []string) string {
	if len(segs) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, s := range segs {
		b.WriteByte('/')
		b.WriteString(strings.NewReplacer("~", "~0", "/", "~1").Replace(s))
	}
	return b.String()
}
