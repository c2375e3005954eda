package value

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// FromAny converts a decoded JSON value (as produced by encoding/json,
// e.g. map[string]any, []any, float64, string, bool, nil) into a Value.
// Map keys are inserted in sorted order, so the result is deterministic
// but does not keep the source document's key order; callers that need
// a specific order should build Values directly with Object.Set.
func FromAny(a any) Value {
	switch t := a.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case int:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := NewOrderedObject()
		for _, k := range keys {
			obj.Set(k, FromAny(t[k]))
		}
		return FromObject(obj)
	case []any:
		items := make([]Value, len(t))
		for i, e := range t {
			items[i] = FromAny(e)
		}
		return NewArray(items)
	default:
		return String(fmt.Sprintf("%v", t))
	}
}

// ToAny converts a Value into plain Go data suitable for
// encoding/json.Marshal.
func ToAny(v Value) any {
	switch v.kind {
	case KindNull:
		return nil
	case KindNumber:
		return v.num
	case KindString:
		return v.str
	case KindBool:
		return v.boolean
	case KindObject:
		out := make(map[string]any, v.obj.Len())
		for _, k := range v.obj.Keys() {
			val, _ := v.obj.Get(k)
			out[k] = ToAny(val)
		}
		return out
	case KindArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = ToAny(e)
		}
		return out
	default:
		return nil
	}
}

// MarshalOrdered renders a Value as JSON text, preserving Object
// insertion order. Functions and components render as null since they
// have no JSON representation; this is used to build the stable
// registration tag for ad-hoc (uncompiled) pipelines and for CLI output.
func MarshalOrdered(v Value) string {
	var b strings.Builder
	writeOrdered(&b, v)
	return b.String()
}

func writeOrdered(b *strings.Builder, v Value) {
	switch v.kind {
	case KindNull, KindFunc, KindComponent:
		b.WriteString("null")
	case KindNumber:
		b.WriteString(strconv.FormatFloat(v.num, 'g', -1, 64))
	case KindString:
		b.WriteString(strconv.Quote(v.str))
	case KindBool:
		b.WriteString(strconv.FormatBool(v.boolean))
	case KindObject:
		b.WriteByte('{')
		for i, k := range v.obj.Keys() {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(k))
			b.WriteByte(':')
			val, _ := v.obj.Get(k)
			writeOrdered(b, val)
		}
		b.WriteByte('}')
	case KindArray:
		b.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				b.WriteByte(',')
			}
			writeOrdered(b, e)
		}
		b.WriteByte(']')
	}
}
