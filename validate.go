package conform

import (
	"time"

	"github.com/reoring/conform/i18n"
)

// evaluator walks a value against a schema. In fail-fast mode it stops at the
// first failed rule and records nothing; otherwise it collects the issues of
// every rule, descending into properties, items, allOf and if/then/else.
// anyOf, oneOf, not and contains branches are probed in isolation and only
// their overall verdict is reported.
type evaluator struct {
	failFast bool
	maxDepth int
	timeout  time.Duration
	issues   Issues
}

func newEvaluator(opt Options, failFast bool) *evaluator {
	return &evaluator{failFast: failFast, maxDepth: opt.MaxDepth, timeout: opt.PatternTimeout}
}

// reject records an issue and reports whether evaluation should stop.
func (e *evaluator) reject(p *pathRef, code string, params map[string]any) bool {
	if e.failFast {
		return true
	}
	e.issues = AppendIssues(e.issues, Issue{Path: p.pointer(), Code: code, Message: i18n.T(code, stringParams(params)), Params: params})
	return false
}

// matches probes a branch with a fail-fast evaluator.
func (e *evaluator) matches(v any, s *Schema, p *pathRef, depth int) bool {
	sub := &evaluator{failFast: true, maxDepth: e.maxDepth, timeout: e.timeout}
	return sub.check(v, s, p, depth)
}

// verdict accumulates the outcome of the rules at one schema node.
type verdict struct {
	e  *evaluator
	p  *pathRef
	ok bool
}

// fail marks the node invalid with an issue at the node's path; the result
// reports whether evaluation should stop.
func (vd *verdict) fail(code string, params map[string]any) bool {
	return vd.failAt(vd.p, code, params)
}

func (vd *verdict) failAt(p *pathRef, code string, params map[string]any) bool {
	vd.ok = false
	return vd.e.reject(p, code, params)
}

// child folds in the verdict of a nested check whose issues were already
// recorded by the nested call.
func (vd *verdict) child(valid bool) bool {
	if valid {
		return false
	}
	vd.ok = false
	return vd.e.failFast
}

// check runs every rule of s against v, top-down: type gate, const/enum, the
// keyword family of v's kind, then combinators.
func (e *evaluator) check(v any, s *Schema, p *pathRef, depth int) bool {
	if s == nil {
		return true
	}
	if depth > e.maxDepth {
		e.reject(p, CodeDepthExceeded, map[string]any{"max": e.maxDepth})
		return false
	}
	kind := Classify(v)
	if !s.admitsKind(kind) {
		e.reject(p, CodeInvalidType, map[string]any{"expected": s.Type, "got": kind.String()})
		return false
	}

	vd := &verdict{e: e, p: p, ok: true}
	if s.HasConst {
		if !IdentityEqual(v, s.Const) && vd.fail(CodeConst, nil) {
			return false
		}
	} else if s.Enum != nil {
		if !inEnum(v, s.Enum) && vd.fail(CodeInvalidEnum, map[string]any{"options": len(s.Enum)}) {
			return false
		}
	}

	var stop bool
	switch kind {
	case KindNumber, KindInteger:
		n, _ := numberOf(v)
		stop = e.checkNumber(n, s, vd)
	case KindString:
		stop = e.checkString(v.(string), s, vd)
	case KindArray:
		stop = e.checkArray(v.([]any), s, vd, depth)
	case KindObject:
		ov, _ := asObject(v)
		stop = e.checkObject(ov, s, vd, depth)
	}
	if stop || e.checkCombinators(v, s, vd, depth) {
		return false
	}
	return vd.ok
}

func (e *evaluator) checkNumber(n float64, s *Schema, vd *verdict) bool {
	if s.Minimum != nil && !satisfiesMinimum(n, *s.Minimum) && vd.fail(CodeTooSmall, map[string]any{"min": *s.Minimum, "got": n}) {
		return true
	}
	if s.ExclusiveMinimum != nil && !satisfiesExclusiveMinimum(n, *s.ExclusiveMinimum) && vd.fail(CodeTooSmall, map[string]any{"exclusiveMin": *s.ExclusiveMinimum, "got": n}) {
		return true
	}
	if s.Maximum != nil && !satisfiesMaximum(n, *s.Maximum) && vd.fail(CodeTooBig, map[string]any{"max": *s.Maximum, "got": n}) {
		return true
	}
	if s.ExclusiveMaximum != nil && !satisfiesExclusiveMaximum(n, *s.ExclusiveMaximum) && vd.fail(CodeTooBig, map[string]any{"exclusiveMax": *s.ExclusiveMaximum, "got": n}) {
		return true
	}
	if s.MultipleOf != nil && !satisfiesMultipleOf(n, *s.MultipleOf) && vd.fail(CodeNotMultiple, map[string]any{"multipleOf": *s.MultipleOf, "got": n}) {
		return true
	}
	return false
}

func (e *evaluator) checkString(str string, s *Schema, vd *verdict) bool {
	if s.MinLength != nil && !satisfiesMinLength(str, *s.MinLength) && vd.fail(CodeTooShort, map[string]any{"min": *s.MinLength, "got": stringLength(str)}) {
		return true
	}
	if s.MaxLength != nil && !satisfiesMaxLength(str, *s.MaxLength) && vd.fail(CodeTooLong, map[string]any{"max": *s.MaxLength, "got": stringLength(str)}) {
		return true
	}
	if s.Pattern != nil && !matchPattern(str, *s.Pattern, s.PatternFlags, e.timeout) && vd.fail(CodePattern, map[string]any{"pattern": *s.Pattern, "flags": s.PatternFlags}) {
		return true
	}
	return false
}

func (e *evaluator) checkArray(list []any, s *Schema, vd *verdict, depth int) bool {
	if s.MinItems != nil && len(list) < *s.MinItems && vd.fail(CodeTooFewItems, map[string]any{"min": *s.MinItems, "got": len(list)}) {
		return true
	}
	if s.MaxItems != nil && len(list) > *s.MaxItems && vd.fail(CodeTooManyItems, map[string]any{"max": *s.MaxItems, "got": len(list)}) {
		return true
	}
	if s.Items != nil {
		for i, item := range list {
			if vd.child(e.check(item, s.Items, vd.p.index(i), depth+1)) {
				return true
			}
		}
	}
	if s.Contains != nil {
		found := false
		for i, item := range list {
			if e.matches(item, s.Contains, vd.p.index(i), depth+1) {
				found = true
				break
			}
		}
		if !found && vd.fail(CodeContains, nil) {
			return true
		}
	}
	return false
}

func (e *evaluator) checkObject(ov objectView, s *Schema, vd *verdict, depth int) bool {
	for _, name := range s.Required {
		if _, own := ov.own(name); !own && vd.failAt(vd.p.field(name), CodeRequired, map[string]any{"key": name}) {
			return true
		}
	}
	n := ov.len()
	if s.MinProperties != nil && n < *s.MinProperties && vd.fail(CodeTooFewProps, map[string]any{"min": *s.MinProperties, "got": n}) {
		return true
	}
	if s.MaxProperties != nil && n > *s.MaxProperties && vd.fail(CodeTooManyProps, map[string]any{"max": *s.MaxProperties, "got": n}) {
		return true
	}
	for _, k := range ov.keys() {
		val, _ := ov.own(k)
		kp := vd.p.field(k)
		if ps, declared := s.property(k); declared {
			if vd.child(e.check(val, ps, kp, depth+1)) {
				return true
			}
			continue
		}
		ap := s.AdditionalProperties
		switch {
		case ap == nil:
		case ap.Forbid:
			if vd.failAt(kp, CodeUnknownKey, map[string]any{"key": k}) {
				return true
			}
		case ap.Schema != nil:
			if vd.child(e.check(val, ap.Schema, kp, depth+1)) {
				return true
			}
		}
	}
	return false
}

func (e *evaluator) checkCombinators(v any, s *Schema, vd *verdict, depth int) bool {
	for _, c := range s.AllOf {
		if vd.child(e.check(v, c, vd.p, depth+1)) {
			return true
		}
	}
	if s.AnyOf != nil {
		found := false
		for _, c := range s.AnyOf {
			if e.matches(v, c, vd.p, depth+1) {
				found = true
				break
			}
		}
		if !found && vd.fail(CodeAnyOf, map[string]any{"branches": len(s.AnyOf)}) {
			return true
		}
	}
	if s.OneOf != nil {
		matched := 0
		for _, c := range s.OneOf {
			if e.matches(v, c, vd.p, depth+1) {
				matched++
				if matched > 1 {
					break
				}
			}
		}
		switch {
		case matched == 0:
			if vd.fail(CodeOneOfNone, map[string]any{"branches": len(s.OneOf)}) {
				return true
			}
		case matched > 1:
			if vd.fail(CodeUnionAmbiguous, map[string]any{"branches": len(s.OneOf)}) {
				return true
			}
		}
	}
	for i, c := range s.Not {
		if e.matches(v, c, vd.p, depth+1) && vd.fail(CodeNot, map[string]any{"index": i}) {
			return true
		}
	}
	if s.If != nil {
		branch := s.Else
		if e.matches(v, s.If, vd.p, depth+1) {
			branch = s.Then
		}
		if branch != nil && vd.child(e.check(v, branch, vd.p, depth+1)) {
			return true
		}
	}
	return false
}
