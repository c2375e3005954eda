// Package value implements the tagged-union Value that flows through the
// container, compiler, and interpreter: numbers, strings, booleans, null,
// ordered objects and arrays, native callables, and opaque component
// handles.
package value

import (
	"fmt"
	"sort"
	"strconv"
)

// Kind identifies which alternative of Value is populated.
type Kind int

// The Value kinds, in the order the data model lists them.
const (
	KindNull Kind = iota
	KindNumber
	KindString
	KindBool
	KindObject
	KindArray
	KindFunc
	KindComponent
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindFunc:
		return "function"
	case KindComponent:
		return "component"
	default:
		return "unknown"
	}
}

// Func is a native callable bound to a receiver. It is invoked by the
// interpreter's Reference handler with the current input and resolved
// argument Values, and returns the next input.
type Func func(input Value, args ...Value) (Value, error)

// Value is the tagged union described by the data model. The zero Value
// is KindNull (absent).
type Value struct {
	kind    Kind
	num     float64
	str     string
	boolean bool
	obj     *Object
	arr     []Value
	fn      Func
	comp    any
}

// Null returns the absent Value.
func Null() Value { return Value{kind: KindNull} }

// Number wraps a float64.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, boolean: b} }

// NewObject wraps a freshly created, empty ordered Object.
func NewObject() Value { return Value{kind: KindObject, obj: NewOrderedObject()} }

// FromObject wraps an existing Object.
func FromObject(o *Object) Value {
	if o == nil {
		o = NewOrderedObject()
	}
	return Value{kind: KindObject, obj: o}
}

// NewArray wraps a slice of Values.
func NewArray(items []Value) Value { return Value{kind: KindArray, arr: items} }

// NewFunc wraps a native callable.
func NewFunc(fn Func) Value { return Value{kind: KindFunc, fn: fn} }

// NewComponent wraps an opaque component handle (a registered singleton or
// factory instance that is not itself a Value).
func NewComponent(c any) Value { return Value{kind: KindComponent, comp: c} }

// Kind reports which alternative is populated.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is absent.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Number returns the numeric payload (0 if not a number).
func (v Value) Number() float64 { return v.num }

// String returns the string payload; numbers and booleans are
// formatted, null yields "", and other kinds yield "<kind>".
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.boolean)
	case KindNull:
		return ""
	default:
		return fmt.Sprintf("<%s>", v.kind)
	}
}

// Bool returns the boolean payload (false if not a boolean).
func (v Value) Bool() bool { return v.boolean }

// Object returns the underlying Object, or nil if the value is not an
// object.
func (v Value) Object() *Object {
	if v.kind != KindObject {
		return nil
	}
	return v.obj
}

// Array returns the underlying slice, or nil if the value is not an
// array.
func (v Value) Array() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.arr
}

// Func returns the underlying callable, or nil if the value is not
// callable.
func (v Value) Func() Func {
	if v.kind != KindFunc {
		return nil
	}
	return v.fn
}

// Component returns the underlying opaque handle, or nil otherwise.
func (v Value) Component() any {
	if v.kind != KindComponent {
		return nil
	}
	return v.comp
}

// Callable reports whether the value is a non-nil KindFunc. Objects
// with a "run" member are not reported callable here; the interpreter
// looks that member up itself.
func (v Value) Callable() bool { return v.kind == KindFunc && v.fn != nil }

// Truthy implements the truthiness rule used by je/jne: any boolean
// carrying true, and (for convenience when other Value kinds flow
// through a comparison by mistake) any non-null, non-zero, non-empty
// value.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.boolean
	case KindNull:
		return false
	case KindNumber:
		return v.num != 0
	case KindString:
		return v.str != ""
	default:
		return true
	}
}

// Object is an insertion-ordered string-keyed map of Values.
type Object struct {
	keys   []string
	values map[string]Value
}

// NewOrderedObject returns an empty Object.
func NewOrderedObject() *Object {
	return &Object{values: make(map[string]Value)}
}

// Get returns the value at key and whether it was present.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Null(), false
	}
	v, ok := o.values[key]
	return v, ok
}

// Set inserts or updates key, preserving original insertion order on
// update.
func (o *Object) Set(key string, v Value) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Delete removes key if present.
func (o *Object) Delete(key string) {
	if _, exists := o.values[key]; !exists {
		return
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Len reports the number of entries.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// SortedKeys returns the keys in lexicographic order.
func (o *Object) SortedKeys() []string {
	keys := o.Keys()
	sort.Strings(keys)
	return keys
}
