package conform

import (
	"errors"
	"math"
	"sort"
)

// TypeName is a JSON type name a schema node can gate on.
type TypeName string

const (
	TypeNull    TypeName = "null"
	TypeBoolean TypeName = "boolean"
	TypeNumber  TypeName = "number"
	TypeInteger TypeName = "integer"
	TypeString  TypeName = "string"
	TypeArray   TypeName = "array"
	TypeObject  TypeName = "object"
)

func knownType(t TypeName) bool {
	switch t {
	case TypeNull, TypeBoolean, TypeNumber, TypeInteger, TypeString, TypeArray, TypeObject:
		return true
	}
	return false
}

// admits reports whether a value of kind k passes the gate t. An integer
// satisfies a number gate; a non-integer never satisfies an integer gate.
func (t TypeName) admits(k Kind) bool {
	switch t {
	case TypeNull:
		return k == KindNull
	case TypeBoolean:
		return k == KindBoolean
	case TypeNumber:
		return isNumberKind(k)
	case TypeInteger:
		return k == KindInteger
	case TypeString:
		return k == KindString
	case TypeArray:
		return k == KindArray
	case TypeObject:
		return k == KindObject
	}
	return false
}

// Additional describes how own properties not named in Properties are treated.
// A nil *Additional on a Schema accepts them unchanged.
type Additional struct {
	// Forbid rejects unknown properties during validation and strips them
	// during defaulting.
	Forbid bool
	// Schema, when non-nil, validates (and defaults) every unknown property.
	Schema *Schema
}

// Schema is an immutable, declaratively nested constraint description. Every
// field is optional; a nil pointer or nil slice means the keyword is absent.
// Empty but non-nil slices are present: an empty AnyOf matches nothing.
//
// Schemas are read-only once built and may be shared between goroutines.
type Schema struct {
	// Type restricts the kind of value. Several names mean any may match.
	Type []TypeName

	Const    any
	HasConst bool
	Enum     []any

	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum *float64
	ExclusiveMaximum *float64
	MultipleOf       *float64

	MinLength    *int
	MaxLength    *int
	Pattern      *string
	PatternFlags string

	Items    *Schema
	Contains *Schema
	MinItems *int
	MaxItems *int

	Properties           map[string]*Schema
	Required             []string
	AdditionalProperties *Additional
	MinProperties        *int
	MaxProperties        *int

	AllOf []*Schema
	AnyOf []*Schema
	OneOf []*Schema
	// Not holds alternatives of which none may match.
	Not []*Schema

	If   *Schema
	Then *Schema
	Else *Schema

	Default    any
	HasDefault bool
}

// admitsKind reports whether the type gate (if any) admits kind k.
func (s *Schema) admitsKind(k Kind) bool {
	if len(s.Type) == 0 {
		return true
	}
	for _, t := range s.Type {
		if t.admits(k) {
			return true
		}
	}
	return false
}

// property returns the declared schema for name, if any.
func (s *Schema) property(name string) (*Schema, bool) {
	ps, ok := s.Properties[name]
	return ps, ok && ps != nil
}

func (s *Schema) sortedPropertyNames() []string {
	names := make([]string, 0, len(s.Properties))
	for k, ps := range s.Properties {
		if ps != nil {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return names
}

// ErrNotSchemaObject is returned by SchemaFromMap for a nil root.
var ErrNotSchemaObject = errors.New("conform: schema root must be an object")

// SchemaFromMap interprets an already-parsed schema tree such as the result of
// decoding a JSON or YAML document. Unrecognized keywords are ignored, and so
// are recognized keywords whose value has the wrong shape: they contribute no
// constraint rather than failing the load.
func SchemaFromMap(m map[string]any) (*Schema, error) {
	if m == nil {
		return nil, ErrNotSchemaObject
	}
	return schemaFromMap(m), nil
}

// MustSchemaFromMap is like SchemaFromMap but panics on error. Intended for
// schemas declared as Go literals.
func MustSchemaFromMap(m map[string]any) *Schema {
	s, err := SchemaFromMap(m)
	if err != nil {
		panic(err)
	}
	return s
}

// schemaFromAny converts a nested schema value. Non-object nodes become the
// unconstrained schema.
func schemaFromAny(v any) *Schema {
	if m := mapOf(v); m != nil {
		return schemaFromMap(m)
	}
	return &Schema{}
}

func mapOf(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		return t
	case *Object:
		if t == nil {
			return nil
		}
		m := make(map[string]any, t.Len())
		for _, k := range t.Keys() {
			m[k], _ = t.Own(k)
		}
		return m
	}
	return nil
}

func schemaFromMap(m map[string]any) *Schema {
	s := &Schema{}
	s.Type = typeNames(m["type"])

	if c, ok := m["const"]; ok {
		s.Const, s.HasConst = c, true
	}
	if e, ok := m["enum"].([]any); ok {
		s.Enum = e
	}
	if d, ok := m["default"]; ok {
		s.Default, s.HasDefault = d, true
	}

	s.Minimum = floatField(m, "minimum")
	s.Maximum = floatField(m, "maximum")
	s.ExclusiveMinimum = floatField(m, "exclusiveMinimum")
	s.ExclusiveMaximum = floatField(m, "exclusiveMaximum")
	s.MultipleOf = floatField(m, "multipleOf")

	s.MinLength = lowerBoundField(m, "minLength")
	s.MaxLength = upperBoundField(m, "maxLength")
	if p, ok := m["pattern"].(string); ok {
		s.Pattern = &p
	}
	if f, ok := m["patternFlags"].(string); ok {
		s.PatternFlags = f
	}

	if mapOf(m["items"]) != nil {
		s.Items = schemaFromAny(m["items"])
	}
	if mapOf(m["contains"]) != nil {
		s.Contains = schemaFromAny(m["contains"])
	}
	s.MinItems = lowerBoundField(m, "minItems")
	s.MaxItems = upperBoundField(m, "maxItems")

	if props := mapOf(m["properties"]); props != nil {
		s.Properties = make(map[string]*Schema, len(props))
		for name, raw := range props {
			if mapOf(raw) == nil {
				continue
			}
			s.Properties[name] = schemaFromAny(raw)
		}
	}
	if req, ok := m["required"].([]any); ok {
		s.Required = make([]string, 0, len(req))
		for _, r := range req {
			if name, ok := r.(string); ok {
				s.Required = append(s.Required, name)
			}
		}
	}
	switch ap := m["additionalProperties"].(type) {
	case bool:
		if !ap {
			s.AdditionalProperties = &Additional{Forbid: true}
		}
	default:
		if mapOf(ap) != nil {
			s.AdditionalProperties = &Additional{Schema: schemaFromAny(ap)}
		}
	}
	s.MinProperties = lowerBoundField(m, "minProperties")
	s.MaxProperties = upperBoundField(m, "maxProperties")

	s.AllOf = schemaList(m["allOf"])
	s.AnyOf = schemaList(m["anyOf"])
	s.OneOf = schemaList(m["oneOf"])
	s.Not = schemaList(m["not"])

	if mapOf(m["if"]) != nil {
		s.If = schemaFromAny(m["if"])
		if mapOf(m["then"]) != nil {
			s.Then = schemaFromAny(m["then"])
		}
		if mapOf(m["else"]) != nil {
			s.Else = schemaFromAny(m["else"])
		}
	}
	return s
}

// typeNames accepts a single name or a list; unknown names are dropped, and a
// gate left without any known name imposes no restriction.
func typeNames(v any) []TypeName {
	var out []TypeName
	switch t := v.(type) {
	case string:
		if tn := TypeName(t); knownType(tn) {
			out = append(out, tn)
		}
	case []any:
		for _, raw := range t {
			if name, ok := raw.(string); ok && knownType(TypeName(name)) {
				out = append(out, TypeName(name))
			}
		}
	}
	return out
}

func schemaList(v any) []*Schema {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]*Schema, 0, len(list))
	for _, raw := range list {
		out = append(out, schemaFromAny(raw))
	}
	return out
}

func floatField(m map[string]any, key string) *float64 {
	raw, ok := m[key]
	if !ok {
		return nil
	}
	if _, isBool := raw.(bool); isBool {
		return nil
	}
	f, ok := numberOf(raw)
	if !ok {
		return nil
	}
	return &f
}

// lowerBoundField reads a count keyword used as "n >= bound". Fractional
// bounds round up, which keeps the comparison exact for integer counts.
func lowerBoundField(m map[string]any, key string) *int {
	f := floatField(m, key)
	if f == nil || math.IsNaN(*f) {
		return nil
	}
	return clampInt(math.Ceil(*f))
}

// upperBoundField reads a count keyword used as "n <= bound"; fractional
// bounds round down.
func upperBoundField(m map[string]any, key string) *int {
	f := floatField(m, key)
	if f == nil || math.IsNaN(*f) {
		return nil
	}
	return clampInt(math.Floor(*f))
}

func clampInt(f float64) *int {
	var n int
	switch {
	case f >= math.MaxInt32:
		n = math.MaxInt32
	case f <= math.MinInt32:
		n = math.MinInt32
	default:
		n = int(f)
	}
	return &n
}
