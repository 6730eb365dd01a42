package conform

import (
	"encoding/json"
	"math"
	"reflect"
	"sort"
)

// Kind is the basic classification of a value.
type Kind int

const (
	KindUndefined Kind = iota // Absent value (see Undefined).
	KindNull
	KindBoolean
	KindNumber  // Any number with a fractional part, NaN or ±Inf.
	KindInteger // Finite number without a fractional part.
	KindString
	KindArray
	KindObject
	KindUnsupported // A Go value outside the JSON-like value model.
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindInteger:
		return "integer"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unsupported"
	}
}

type undefined struct{}

// Undefined marks an absent value. It is distinct from nil, which is JSON null.
// Defaulting treats a missing own property as Undefined and omits the key from
// its output when the result is still Undefined.
var Undefined any = undefined{}

// IsUndefined reports whether v is the Undefined sentinel.
func IsUndefined(v any) bool {
	_, ok := v.(undefined)
	return ok
}

// Classify maps v to exactly one Kind. Booleans are never numbers; a number is
// an integer iff it is finite and has no fractional part.
func Classify(v any) Kind {
	switch t := v.(type) {
	case undefined:
		return KindUndefined
	case nil:
		return KindNull
	case bool:
		return KindBoolean
	case string:
		return KindString
	case []any:
		return KindArray
	case map[string]any:
		return KindObject
	case *Object:
		if t == nil {
			return KindNull
		}
		return KindObject
	}
	if isIntegral(v) {
		return KindInteger
	}
	f, ok := numberOf(v)
	if !ok {
		return KindUnsupported
	}
	if isWholeFloat(f) {
		return KindInteger
	}
	return KindNumber
}

func isWholeFloat(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f) && math.Trunc(f) == f
}

func isIntegral(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr:
		return true
	}
	return false
}

// numberOf widens any supported number representation to float64.
func numberOf(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case uintptr:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func isNumberKind(k Kind) bool { return k == KindNumber || k == KindInteger }

// IdentityEqual reports whether a and b are the same value under the rules
// used by const and enum.
//
// Primitives are equal when their kinds match and their values are equal
// (numbers compare numerically across Go numeric types, and NaN is never
// equal to itself). Composites are equal only when they are the same
// instance: two maps built from equal literals are NOT equal. A map matches
// by its header pointer, a *Object by pointer, and a list by backing array,
// length and capacity. Zero-capacity lists own no storage and are never
// identical, not even to themselves.
func IdentityEqual(a, b any) bool {
	ka, kb := Classify(a), Classify(b)
	if isNumberKind(ka) && isNumberKind(kb) {
		fa, _ := numberOf(a)
		fb, _ := numberOf(b)
		return fa == fb
	}
	if ka != kb {
		return false
	}
	switch ka {
	case KindUndefined, KindNull:
		return true
	case KindBoolean:
		return a.(bool) == b.(bool)
	case KindString:
		return a.(string) == b.(string)
	case KindArray:
		return sameList(a.([]any), b.([]any))
	case KindObject:
		return sameObject(a, b)
	}
	return false
}

// sameList compares slice headers. Empty lists all share the runtime's
// zero-size storage, so any two non-nil empty lists are identical.
func sameList(x, y []any) bool {
	if x == nil || y == nil {
		return false
	}
	if len(x) != len(y) || cap(x) != cap(y) {
		return false
	}
	return reflect.ValueOf(x).UnsafePointer() == reflect.ValueOf(y).UnsafePointer()
}

func sameObject(a, b any) bool {
	switch x := a.(type) {
	case *Object:
		y, ok := b.(*Object)
		return ok && x == y
	case map[string]any:
		y, ok := b.(map[string]any)
		if !ok || x == nil || y == nil {
			return false
		}
		return reflect.ValueOf(x).UnsafePointer() == reflect.ValueOf(y).UnsafePointer()
	}
	return false
}

// Object is a string-keyed map value that separates own entries from entries
// inherited through Proto. Validation and defaulting only ever look at own
// entries; Get is provided for callers that want the resolved view.
//
// The zero value is an empty object without a prototype.
type Object struct {
	Proto *Object

	keys []string
	vals map[string]any
}

// NewObject returns an empty object inheriting from proto (which may be nil).
func NewObject(proto *Object) *Object {
	return &Object{Proto: proto}
}

// ObjectOf builds an object whose own entries are copied from m, in key order.
func ObjectOf(m map[string]any, proto *Object) *Object {
	o := NewObject(proto)
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	for _, k := range ks {
		o.Set(k, m[k])
	}
	return o
}

// Set assigns an own entry and returns o for chaining.
func (o *Object) Set(key string, v any) *Object {
	if o.vals == nil {
		o.vals = make(map[string]any)
	}
	if _, exists := o.vals[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
	return o
}

// Delete removes an own entry. Inherited entries are unaffected.
func (o *Object) Delete(key string) {
	if _, exists := o.vals[key]; !exists {
		return
	}
	delete(o.vals, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i:i], o.keys[i+1:]...)
			break
		}
	}
}

// Own returns the own entry for key.
func (o *Object) Own(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.vals[key]
	return v, ok
}

// HasOwn reports whether key is an own entry.
func (o *Object) HasOwn(key string) bool {
	_, ok := o.Own(key)
	return ok
}

// Get resolves key through the prototype chain.
func (o *Object) Get(key string) (any, bool) {
	for cur := o; cur != nil; cur = cur.Proto {
		if v, ok := cur.vals[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// Keys returns own keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return append([]string(nil), o.keys...)
}

// Len returns the number of own entries.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// objectView gives uniform own-property access over map[string]any and *Object.
type objectView struct {
	m map[string]any
	o *Object
}

func asObject(v any) (objectView, bool) {
	switch t := v.(type) {
	case map[string]any:
		return objectView{m: t}, true
	case *Object:
		if t == nil {
			return objectView{}, false
		}
		return objectView{o: t}, true
	}
	return objectView{}, false
}

func (ov objectView) own(key string) (any, bool) {
	if ov.o != nil {
		return ov.o.Own(key)
	}
	v, ok := ov.m[key]
	return v, ok
}

// keys returns own keys: insertion order for *Object, sorted for plain maps.
func (ov objectView) keys() []string {
	if ov.o != nil {
		return ov.o.Keys()
	}
	ks := make([]string, 0, len(ov.m))
	for k := range ov.m {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}

func (ov objectView) len() int {
	if ov.o != nil {
		return ov.o.Len()
	}
	return len(ov.m)
}
