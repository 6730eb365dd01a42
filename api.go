package conform

// IsValid reports whether value conforms to schema. It never fails: malformed
// schema fragments contribute no constraint and malformed patterns are simply
// not satisfied. A nil schema accepts everything.
func IsValid(value any, schema *Schema, opts ...Options) bool {
	return newEvaluator(resolveOptions(opts), true).check(value, schema, rootPath, 0)
}

// Validate is IsValid with diagnostics: it returns one Issue per failed rule,
// or nil when value conforms. len(Validate(v, s)) == 0 iff IsValid(v, s).
func Validate(value any, schema *Schema, opts ...Options) Issues {
	ev := newEvaluator(resolveOptions(opts), false)
	if ev.check(value, schema, rootPath, 0) {
		return nil
	}
	return ev.issues
}

// GetValidValueOrDefault returns a value that conforms to schema wherever one
// can be produced from the declared defaults; otherwise the caller's value is
// passed through. Neither value nor schema is mutated, and objects in the
// result are fresh map[string]any values.
//
// Pass Undefined for an absent value.
func GetValidValueOrDefault(schema *Schema, value any, opts ...Options) any {
	r := &resolver{opt: resolveOptions(opts)}
	return r.resolve(schema, value, rootPath, 0)
}

// GetValidValueOrDefaultWithMeta is GetValidValueOrDefault that also reports,
// per JSON Pointer, which decision was taken.
func GetValidValueOrDefaultWithMeta(schema *Schema, value any, opts ...Options) Decoded {
	r := &resolver{opt: resolveOptions(opts), pm: PresenceMap{}}
	v := r.resolve(schema, value, rootPath, 0)
	return Decoded{Value: v, Presence: r.pm}
}
