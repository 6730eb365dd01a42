// Package conform validates JSON-like value trees against a small declarative
// schema language and normalizes them with schema-declared defaults.
//
// A value is nil, a bool, a number (any Go numeric type or json.Number), a
// string, []any, map[string]any or *Object. Undefined stands for an absent
// value. A Schema is usually built with SchemaFromMap from an already-decoded
// document; package source decodes JSON and YAML text.
//
// Two operations form the core:
//
//	ok := conform.IsValid(v, s)
//	out := conform.GetValidValueOrDefault(s, v)
//
// Validate returns Issues (JSON Pointer, code, message) for diagnostics, and
// GetValidValueOrDefaultWithMeta reports which defaults were applied.
//
// Design policy:
//   - const and enum compare composites by identity, not structure: a map
//     literal equal to the schema's const is still a different instance.
//   - not is a list of alternatives, none of which may match.
//   - Only own properties count; *Object keeps inherited entries apart.
//   - Both operations are total and keep no state between calls.
package conform
