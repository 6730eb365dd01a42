// Package jsonschema renders a conform.Schema back into a JSON-Schema-like
// document. Keywords that were ignored while loading (wrong shape, unknown
// name) are absent from the output, so exporting shows what the engine
// actually enforces.
package jsonschema

import (
	"github.com/reoring/conform"
)

// Export converts s into a map suitable for JSON or YAML encoding. A nil
// schema exports as an empty document.
func Export(s *conform.Schema) map[string]any {
	out := map[string]any{}
	if s == nil {
		return out
	}
	switch len(s.Type) {
	case 0:
	case 1:
		out["type"] = string(s.Type[0])
	default:
		types := make([]any, len(s.Type))
		for i, t := range s.Type {
			types[i] = string(t)
		}
		out["type"] = types
	}
	if s.HasConst {
		out["const"] = s.Const
	}
	if s.Enum != nil {
		out["enum"] = s.Enum
	}
	if s.HasDefault {
		out["default"] = s.Default
	}

	putFloat(out, "minimum", s.Minimum)
	putFloat(out, "maximum", s.Maximum)
	putFloat(out, "exclusiveMinimum", s.ExclusiveMinimum)
	putFloat(out, "exclusiveMaximum", s.ExclusiveMaximum)
	putFloat(out, "multipleOf", s.MultipleOf)

	putInt(out, "minLength", s.MinLength)
	putInt(out, "maxLength", s.MaxLength)
	if s.Pattern != nil {
		out["pattern"] = *s.Pattern
		if s.PatternFlags != "" {
			out["patternFlags"] = s.PatternFlags
		}
	}

	if s.Items != nil {
		out["items"] = Export(s.Items)
	}
	if s.Contains != nil {
		out["contains"] = Export(s.Contains)
	}
	putInt(out, "minItems", s.MinItems)
	putInt(out, "maxItems", s.MaxItems)

	if s.Properties != nil {
		props := make(map[string]any, len(s.Properties))
		for name, ps := range s.Properties {
			props[name] = Export(ps)
		}
		out["properties"] = props
	}
	if s.Required != nil {
		req := make([]any, len(s.Required))
		for i, r := range s.Required {
			req[i] = r
		}
		out["required"] = req
	}
	if ap := s.AdditionalProperties; ap != nil {
		switch {
		case ap.Forbid:
			out["additionalProperties"] = false
		case ap.Schema != nil:
			out["additionalProperties"] = Export(ap.Schema)
		}
	}
	putInt(out, "minProperties", s.MinProperties)
	putInt(out, "maxProperties", s.MaxProperties)

	putList(out, "allOf", s.AllOf)
	putList(out, "anyOf", s.AnyOf)
	putList(out, "oneOf", s.OneOf)
	putList(out, "not", s.Not)
	if s.If != nil {
		out["if"] = Export(s.If)
		if s.Then != nil {
			out["then"] = Export(s.Then)
		}
		if s.Else != nil {
			out["else"] = Export(s.Else)
		}
	}
	return out
}

func putFloat(out map[string]any, key string, f *float64) {
	if f != nil {
		out[key] = *f
	}
}

func putInt(out map[string]any, key string, n *int) {
	if n != nil {
		out[key] = *n
	}
}

func putList(out map[string]any, key string, list []*conform.Schema) {
	if list == nil {
		return
	}
	items := make([]any, len(list))
	for i, s := range list {
		items[i] = Export(s)
	}
	out[key] = items
}
