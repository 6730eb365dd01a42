package conform_test

import (
	"errors"
	"math"
	"testing"

	"github.com/reoring/conform"
)

func TestSchemaFromMap_NilRoot(t *testing.T) {
	if _, err := conform.SchemaFromMap(nil); !errors.Is(err, conform.ErrNotSchemaObject) {
		t.Fatalf("expected ErrNotSchemaObject, got %v", err)
	}
}

func TestSchemaFromMap_Keywords(t *testing.T) {
	s := conform.MustSchemaFromMap(map[string]any{
		"type":                 []any{"string", "bogus", 3},
		"minLength":            1.5,
		"maxLength":            4.9,
		"minimum":              true,
		"const":                nil,
		"default":              "d",
		"additionalProperties": true,
		"properties": map[string]any{
			"ok":  map[string]any{},
			"bad": "not a schema",
		},
		"anyOf": []any{"x", map[string]any{"type": "null"}},
		"then":  map[string]any{"type": "string"},
	})
	if len(s.Type) != 1 || s.Type[0] != conform.TypeString {
		t.Fatalf("type: %v", s.Type)
	}
	if s.MinLength == nil || *s.MinLength != 2 || s.MaxLength == nil || *s.MaxLength != 4 {
		t.Fatalf("count bounds must round inward: %v %v", s.MinLength, s.MaxLength)
	}
	if s.Minimum != nil {
		t.Fatalf("booleans are not numbers")
	}
	if !s.HasConst || s.Const != nil || !s.HasDefault || s.Default != "d" {
		t.Fatalf("const/default presence")
	}
	if s.AdditionalProperties != nil {
		t.Fatalf("additionalProperties true must accept unknown keys")
	}
	if _, ok := s.Properties["bad"]; ok || s.Properties["ok"] == nil {
		t.Fatalf("properties: %v", s.Properties)
	}
	if len(s.AnyOf) != 2 || len(s.AnyOf[0].Type) != 0 {
		t.Fatalf("non-object combinator entries become unconstrained: %v", s.AnyOf)
	}
	if s.Then != nil {
		t.Fatalf("then without if is ignored")
	}
}

func TestSchemaFromMap_CountBoundClamp(t *testing.T) {
	s := conform.MustSchemaFromMap(map[string]any{"maxItems": 1e12, "minItems": math.NaN()})
	if s.MaxItems == nil || *s.MaxItems != math.MaxInt32 {
		t.Fatalf("maxItems: %v", s.MaxItems)
	}
	if s.MinItems != nil {
		t.Fatalf("NaN bounds are ignored")
	}
}

func TestSchemaFromMap_ObjectNodes(t *testing.T) {
	props := conform.NewObject(nil).Set("n", map[string]any{"type": "integer"})
	s := conform.MustSchemaFromMap(map[string]any{"properties": props})
	if !conform.IsValid(map[string]any{"n": 1}, s) || conform.IsValid(map[string]any{"n": "x"}, s) {
		t.Fatalf("*Object schema nodes must be interpreted")
	}
}
