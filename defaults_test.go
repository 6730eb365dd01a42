package conform_test

import (
	"reflect"
	"testing"

	"github.com/reoring/conform"
)

func TestDefault_AdditionalPropertiesFalseDropsUnknownKeys(t *testing.T) {
	s := schemaOf(t, map[string]any{
		"type":                 "object",
		"properties":           map[string]any{"a": map[string]any{"type": "string"}},
		"additionalProperties": false,
	})
	got := conform.GetValidValueOrDefault(s, map[string]any{"a": "x", "b": 1, "c": nil})
	want := map[string]any{"a": "x"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v want %#v", got, want)
	}
}

func TestDefault_AdditionalPropertiesTrueKeepsUnknownKeys(t *testing.T) {
	s := schemaOf(t, map[string]any{
		"type": "object",
		"properties": map[string]any{
			"a": map[string]any{"type": "number", "default": 5},
			"b": map[string]any{"type": "string"},
		},
		"additionalProperties": true,
	})
	got := conform.GetValidValueOrDefault(s, map[string]any{"x": "keep", "y": nil})
	want := map[string]any{"a": 5, "x": "keep", "y": nil}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v want %#v", got, want)
	}
}

func TestDefault_AdditionalPropertiesSchemaDefaultsUnknownKeys(t *testing.T) {
	s := schemaOf(t, map[string]any{
		"type":                 "object",
		"additionalProperties": map[string]any{"type": "string", "default": "d"},
	})
	in := map[string]any{"p": nil, "q": conform.Undefined, "r": "ok", "s": 4}
	got := conform.GetValidValueOrDefault(s, in)
	want := map[string]any{"p": "d", "q": "d", "r": "ok", "s": "d"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v want %#v", got, want)
	}
}

func TestDefault_UndefinedUnknownKeysAreOmitted(t *testing.T) {
	for _, ap := range []any{nil, true} {
		m := map[string]any{"type": "object"}
		if ap != nil {
			m["additionalProperties"] = ap
		}
		s := schemaOf(t, m)
		got := conform.GetValidValueOrDefault(s, map[string]any{"x": conform.Undefined, "y": 1})
		want := map[string]any{"y": 1}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("additionalProperties=%v: got %#v want %#v", ap, got, want)
		}
	}
}

func TestDefault_InheritedPropertiesAreAbsent(t *testing.T) {
	s := schemaOf(t, map[string]any{
		"type":       "object",
		"properties": map[string]any{"name": map[string]any{"type": "string", "default": "anon"}},
	})
	proto := conform.NewObject(nil).Set("name", "inherited")
	got := conform.GetValidValueOrDefault(s, conform.NewObject(proto))
	want := map[string]any{"name": "anon"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v want %#v", got, want)
	}

	own := conform.NewObject(proto).Set("name", "mine").Set("extra", 1)
	got = conform.GetValidValueOrDefault(s, own)
	want = map[string]any{"name": "mine", "extra": 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v want %#v", got, want)
	}
}

func TestDefault_Precedence(t *testing.T) {
	brokenDefault := schemaOf(t, map[string]any{"type": "integer", "default": 1, "minimum": 2})
	if got := conform.GetValidValueOrDefault(brokenDefault, -1); got != -1 {
		t.Fatalf("an invalid default must not replace the input, got %#v", got)
	}
	goodDefault := schemaOf(t, map[string]any{"type": "integer", "default": 2, "minimum": 1})
	if got := conform.GetValidValueOrDefault(goodDefault, -1); got != 2 {
		t.Fatalf("a valid default must replace an invalid input, got %#v", got)
	}
	if got := conform.GetValidValueOrDefault(goodDefault, 7); got != 7 {
		t.Fatalf("a valid input must be kept, got %#v", got)
	}
}

func TestDefault_EnumMiss(t *testing.T) {
	s := schemaOf(t, map[string]any{"enum": []any{"a", "b"}, "default": "a"})
	if got := conform.GetValidValueOrDefault(s, "z"); got != "a" {
		t.Fatalf("got %#v", got)
	}
	if got := conform.GetValidValueOrDefault(s, "b"); got != "b" {
		t.Fatalf("got %#v", got)
	}
}

func TestDefault_UndefinedRoot(t *testing.T) {
	s := schemaOf(t, map[string]any{"type": "string", "default": "x"})
	if got := conform.GetValidValueOrDefault(s, conform.Undefined); got != "x" {
		t.Fatalf("got %#v", got)
	}
	bare := schemaOf(t, map[string]any{"type": "string"})
	if got := conform.GetValidValueOrDefault(bare, conform.Undefined); !conform.IsUndefined(got) {
		t.Fatalf("absent value without default must stay absent, got %#v", got)
	}
}

func TestDefault_RequiredAbsentWithoutDefaultIsOmitted(t *testing.T) {
	s := schemaOf(t, map[string]any{
		"type":       "object",
		"required":   []any{"id"},
		"properties": map[string]any{"id": map[string]any{"type": "integer"}},
	})
	got := conform.GetValidValueOrDefault(s, map[string]any{})
	if m, ok := got.(map[string]any); !ok || len(m) != 0 {
		t.Fatalf("got %#v", got)
	}
	if conform.IsValid(got, s) {
		t.Fatalf("nothing can satisfy required here")
	}
}

func TestDefault_NestedObjects(t *testing.T) {
	s := schemaOf(t, map[string]any{
		"type": "object",
		"properties": map[string]any{
			"cfg": map[string]any{
				"type":       "object",
				"required":   []any{"port"},
				"properties": map[string]any{"port": map[string]any{"type": "integer", "default": 80}},
			},
		},
	})
	got := conform.GetValidValueOrDefault(s, map[string]any{"cfg": map[string]any{}})
	want := map[string]any{"cfg": map[string]any{"port": 80}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v want %#v", got, want)
	}
	if !conform.IsValid(got, s) {
		t.Fatalf("result must validate")
	}
}

func TestDefault_DoesNotMutateInputOrSchema(t *testing.T) {
	s := schemaOf(t, map[string]any{
		"type":       "object",
		"properties": map[string]any{"a": map[string]any{"type": "integer", "default": 1}},
	})
	in := map[string]any{"a": nil}
	out := conform.GetValidValueOrDefault(s, in).(map[string]any)
	if in["a"] != nil {
		t.Fatalf("input mutated: %#v", in)
	}
	if out["a"] != 1 {
		t.Fatalf("got %#v", out)
	}

	dflt := map[string]any{"k": "v"}
	ds := schemaOf(t, map[string]any{"type": "object", "default": dflt})
	res := conform.GetValidValueOrDefault(ds, "not an object").(map[string]any)
	res["k"] = "changed"
	if dflt["k"] != "v" {
		t.Fatalf("default must be cloned before use")
	}
}

func TestDefault_ArraysAreNotDeepDefaulted(t *testing.T) {
	s := schemaOf(t, map[string]any{"type": "array", "items": map[string]any{"type": "integer", "default": 0}})
	in := []any{1, "x"}
	got := conform.GetValidValueOrDefault(s, in)
	if !conform.IdentityEqual(got, in) {
		t.Fatalf("invalid list without node default must pass through, got %#v", got)
	}
}

func TestDefault_WithMeta(t *testing.T) {
	s := schemaOf(t, map[string]any{
		"type": "object",
		"properties": map[string]any{
			"a": map[string]any{"type": "integer", "default": 1},
			"b": map[string]any{"type": "string"},
		},
		"additionalProperties": false,
	})
	dec := conform.GetValidValueOrDefaultWithMeta(s, map[string]any{"a": nil, "b": 3, "z": 1})
	want := map[string]any{"a": 1, "b": 3}
	if !reflect.DeepEqual(dec.Value, want) {
		t.Fatalf("got %#v want %#v", dec.Value, want)
	}
	checks := map[string]conform.Presence{
		"/":  conform.PresenceSeen | conform.PresenceInvalid,
		"/a": conform.PresenceSeen | conform.PresenceWasNull | conform.PresenceDefaultApplied,
		"/b": conform.PresenceSeen | conform.PresenceInvalid,
		"/z": conform.PresenceSeen | conform.PresenceDropped,
	}
	for ptr, flags := range checks {
		if got := dec.Presence[ptr]; got != flags {
			t.Fatalf("presence at %s: got %v want %v", ptr, got, flags)
		}
	}
	only := dec.Presence.Filter([]string{"/a"}, nil)
	if len(only) != 1 {
		t.Fatalf("filter: %v", only)
	}
}

func TestDefault_DepthCapStopsDefaulting(t *testing.T) {
	s := schemaOf(t, map[string]any{
		"type": "object",
		"properties": map[string]any{
			"a": map[string]any{
				"type":       "object",
				"properties": map[string]any{"b": map[string]any{"type": "integer", "default": 7}},
			},
		},
	})
	in := map[string]any{"a": map[string]any{}}
	full := conform.GetValidValueOrDefault(s, in)
	if !reflect.DeepEqual(full, map[string]any{"a": map[string]any{"b": 7}}) {
		t.Fatalf("got %#v", full)
	}
	capped := conform.GetValidValueOrDefault(s, in, conform.Options{MaxDepth: 1})
	if !reflect.DeepEqual(capped, map[string]any{"a": map[string]any{}}) {
		t.Fatalf("defaults below the depth cap must not be applied, got %#v", capped)
	}
}
