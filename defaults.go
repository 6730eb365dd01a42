package conform

// resolver walks a schema and a value in lock-step and decides, per node,
// between keeping the value, substituting the default, or passing the value
// through unchanged.
type resolver struct {
	opt Options
	pm  PresenceMap // nil when presence is not collected
}

func (r *resolver) mark(p *pathRef, f Presence) {
	if r.pm == nil {
		return
	}
	r.pm[p.pointer()] |= f
}

func (r *resolver) valid(v any, s *Schema, depth int) bool {
	ev := newEvaluator(r.opt, true)
	ev.maxDepth = r.opt.MaxDepth - depth
	return ev.check(v, s, rootPath, 0)
}

// resolve returns the best value for s:
//
//   - KEEP: v (after object fan-out) validates.
//   - SUBSTITUTE: otherwise a clone of the default, when the default itself
//     validates.
//   - PASSTHROUGH: otherwise v, even though it is invalid. A broken default
//     never masks caller data.
//
// Object values fan out to one decision per declared property and one per
// unknown own property before the node's own decision is taken.
func (r *resolver) resolve(s *Schema, v any, p *pathRef, depth int) any {
	if !IsUndefined(v) {
		r.mark(p, PresenceSeen)
		if v == nil {
			r.mark(p, PresenceWasNull)
		}
	}
	if s == nil || depth > r.opt.MaxDepth {
		return v
	}

	candidate := v
	if ov, ok := asObject(v); ok && s.admitsKind(KindObject) {
		candidate = r.populate(s, ov, p, depth)
	}
	if r.valid(candidate, s, depth) {
		return candidate
	}

	if s.HasDefault && r.valid(s.Default, s, depth) {
		d := cloneValue(s.Default)
		if ov, ok := asObject(d); ok {
			// Populating may add defaulted properties; keep the plain clone if
			// that breaks a node-level rule such as maxProperties.
			// Presence describes the input, so the default is walked unrecorded.
			quiet := &resolver{opt: r.opt}
			if populated := quiet.populate(s, ov, p, depth); r.valid(populated, s, depth) {
				d = populated
			}
		}
		r.mark(p, PresenceDefaultApplied)
		return d
	}

	if !IsUndefined(v) {
		r.mark(p, PresenceInvalid)
	}
	return candidate
}

// populate builds a new map for an object value. Presence of a declared
// property is an own-property check; inherited entries count as absent.
func (r *resolver) populate(s *Schema, ov objectView, p *pathRef, depth int) map[string]any {
	out := make(map[string]any, ov.len())
	for _, name := range s.sortedPropertyNames() {
		ps := s.Properties[name]
		in, own := ov.own(name)
		if !own {
			in = Undefined
		}
		if res := r.resolve(ps, in, p.field(name), depth+1); !IsUndefined(res) {
			out[name] = res
		}
	}
	for _, k := range ov.keys() {
		if _, declared := s.property(k); declared {
			continue
		}
		val, _ := ov.own(k)
		kp := p.field(k)
		ap := s.AdditionalProperties
		switch {
		case ap == nil:
			if IsUndefined(val) {
				continue
			}
			r.mark(kp, PresenceSeen)
			out[k] = val
		case ap.Forbid:
			r.mark(kp, PresenceSeen|PresenceDropped)
		case ap.Schema != nil:
			if res := r.resolve(ap.Schema, val, kp, depth+1); !IsUndefined(res) {
				out[k] = res
			}
		default:
			if !IsUndefined(val) {
				out[k] = val
			}
		}
	}
	return out
}

// cloneValue deep-copies a value tree so substituted defaults never alias the
// schema. *Object values are flattened into maps of their own entries.
func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = cloneValue(val)
		}
		return out
	case *Object:
		if t == nil {
			return nil
		}
		out := make(map[string]any, t.Len())
		for _, k := range t.Keys() {
			val, _ := t.Own(k)
			out[k] = cloneValue(val)
		}
		return out
	case []any:
		if t == nil {
			return []any(nil)
		}
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = cloneValue(val)
		}
		return out
	default:
		return v
	}
}
