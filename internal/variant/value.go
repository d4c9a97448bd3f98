package variant

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Value is a dynamically typed config value. The zero Value is Null.
type Value struct {
	kind Kind
	// nil | bool | int64 | float64 | string | []Value | map[string]Value
	payload any
}

// Entry is one key/value pair for TableOf.
type Entry struct {
	Key   string
	Value Value
}

// Null returns the null value, same as the zero Value.
func Null() Value {
	return Value{}
}

// Bool wraps b.
func Bool(b bool) Value {
	return Value{kind: KindBool, payload: b}
}

// Int wraps n.
func Int(n int64) Value {
	return Value{kind: KindInt, payload: n}
}

// Real wraps f. NaN and infinities are stored as given.
func Real(f float64) Value {
	return Value{kind: KindReal, payload: f}
}

// String wraps s.
func String(s string) Value {
	return Value{kind: KindString, payload: s}
}

// List copies items; no items yields an empty, non-nil list.
func List(items ...Value) Value {
	return Value{kind: KindList, payload: slices.Clone(nonNilList(items))}
}

// Table copies m; a nil map yields an empty table.
func Table(m map[string]Value) Value {
	out := make(map[string]Value, len(m))
	maps.Copy(out, m)
	return Value{kind: KindTable, payload: out}
}

// TableOf builds a table from entries in order; a repeated key keeps the
// last value.
func TableOf(entries ...Entry) Value {
	out := make(map[string]Value, len(entries))
	for _, e := range entries {
		out[e.Key] = e.Value
	}
	return Value{kind: KindTable, payload: out}
}

func nonNilList(items []Value) []Value {
	if items == nil {
		return []Value{}
	}
	return items
}

// Kind returns the discriminant.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is Null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool coerces a scalar to bool: Null is false, Int and Real are true when non-zero.
func (v Value) AsBool() (bool, error) {
	switch v.kind {
	case KindNull:
		return false, nil
	case KindBool:
		return v.payload.(bool), nil
	case KindInt:
		return v.payload.(int64) != 0, nil
	case KindReal:
		return v.payload.(float64) != 0, nil
	case KindString, KindList, KindTable:
		return false, accessErr("AsBool", KindBool, v.kind)
	default:
		panic(fmt.Sprintf("variant: invalid kind %d", v.kind))
	}
}

// AsInt coerces a scalar to int64; Real truncates toward zero.
func (v Value) AsInt() (int64, error) {
	switch v.kind {
	case KindNull:
		return 0, nil
	case KindBool:
		if v.payload.(bool) {
			return 1, nil
		}
		return 0, nil
	case KindInt:
		return v.payload.(int64), nil
	case KindReal:
		return int64(v.payload.(float64)), nil
	case KindString, KindList, KindTable:
		return 0, accessErr("AsInt", KindInt, v.kind)
	default:
		panic(fmt.Sprintf("variant: invalid kind %d", v.kind))
	}
}

// AsReal coerces a scalar to float64.
func (v Value) AsReal() (float64, error) {
	switch v.kind {
	case KindNull:
		return 0, nil
	case KindBool:
		if v.payload.(bool) {
			return 1, nil
		}
		return 0, nil
	case KindInt:
		return float64(v.payload.(int64)), nil
	case KindReal:
		return v.payload.(float64), nil
	case KindString, KindList, KindTable:
		return 0, accessErr("AsReal", KindReal, v.kind)
	default:
		panic(fmt.Sprintf("variant: invalid kind %d", v.kind))
	}
}

func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", accessErr("AsString", KindString, v.kind)
	}
	return v.payload.(string), nil
}

// AsList returns a copy of the list elements.
func (v Value) AsList() ([]Value, error) {
	if v.kind != KindList {
		return nil, accessErr("AsList", KindList, v.kind)
	}
	return slices.Clone(v.payload.([]Value)), nil
}

// AsTable returns a copy of the table entries.
func (v Value) AsTable() (map[string]Value, error) {
	if v.kind != KindTable {
		return nil, accessErr("AsTable", KindTable, v.kind)
	}
	return maps.Clone(v.payload.(map[string]Value)), nil
}

// Len is the element count of a List or Table, 0 for anything else.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.payload.([]Value))
	case KindTable:
		return len(v.payload.(map[string]Value))
	default:
		return 0
	}
}

// Index returns the i-th list element.
func (v Value) Index(i int) (Value, error) {
	if v.kind != KindList {
		return Value{}, accessErr("Index", KindList, v.kind)
	}
	items := v.payload.([]Value)
	if i < 0 || i >= len(items) {
		return Value{}, fmt.Errorf("variant: index %d out of range [0,%d)", i, len(items))
	}
	return items[i], nil
}

// Get looks a key up in a Table. ok is false for a missing key or a
// non-table value.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindTable {
		return Value{}, false
	}
	item, ok := v.payload.(map[string]Value)[key]
	return item, ok
}

// Lookup walks nested tables along path.
func (v Value) Lookup(path ...string) (Value, bool) {
	cur := v
	for _, key := range path {
		next, ok := cur.Get(key)
		if !ok {
			return Value{}, false
		}
		cur = next
	}
	return cur, true
}

// Keys returns the table keys sorted; nil for non-tables.
func (v Value) Keys() []string {
	if v.kind != KindTable {
		return nil
	}
	return slices.Sorted(maps.Keys(v.payload.(map[string]Value)))
}

// Range calls fn for every list element (key is "") or table entry
// (index is -1, keys sorted) until fn returns false.
func (v Value) Range(fn func(key string, index int, item Value) bool) {
	switch v.kind {
	case KindList:
		for i, item := range v.payload.([]Value) {
			if !fn("", i, item) {
				return
			}
		}
	case KindTable:
		m := v.payload.(map[string]Value)
		for _, k := range v.Keys() {
			if !fn(k, -1, m[k]) {
				return
			}
		}
	}
}

// Clone returns a deep copy.
func (v Value) Clone() Value {
	switch v.kind {
	case KindList:
		src := v.payload.([]Value)
		out := make([]Value, len(src))
		for i, item := range src {
			out[i] = item.Clone()
		}
		return Value{kind: KindList, payload: out}
	case KindTable:
		src := v.payload.(map[string]Value)
		out := make(map[string]Value, len(src))
		for k, item := range src {
			out[k] = item.Clone()
		}
		return Value{kind: KindTable, payload: out}
	default:
		return v
	}
}

// Equal compares two trees structurally. Int and Real are distinct kinds.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool, KindInt, KindReal, KindString:
		return a.payload == b.payload
	case KindList:
		return slices.EqualFunc(a.payload.([]Value), b.payload.([]Value), Equal)
	case KindTable:
		return maps.EqualFunc(a.payload.(map[string]Value), b.payload.(map[string]Value), Equal)
	default:
		panic(fmt.Sprintf("variant: invalid kind %d", a.kind))
	}
}

// Equal is shorthand for Equal(v, other).
func (v Value) Equal(other Value) bool { return Equal(v, other) }

func (v Value) String() string {
	var sb strings.Builder
	v.writeDebug(&sb)
	return sb.String()
}

func (v Value) writeDebug(sb *strings.Builder) {
	switch v.kind {
	case KindNull:
		sb.WriteString("null")
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.payload.(bool)))
	case KindInt:
		sb.WriteString(strconv.FormatInt(v.payload.(int64), 10))
	case KindReal:
		sb.WriteString(formatReal(v.payload.(float64)))
	case KindString:
		sb.WriteString(strconv.Quote(v.payload.(string)))
	case KindList:
		sb.WriteByte('[')
		for i, item := range v.payload.([]Value) {
			if i > 0 {
				sb.WriteString(", ")
			}
			item.writeDebug(sb)
		}
		sb.WriteByte(']')
	case KindTable:
		sb.WriteByte('{')
		m := v.payload.(map[string]Value)
		for i, k := range v.Keys() {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(k)
			sb.WriteString(": ")
			m[k].writeDebug(sb)
		}
		sb.WriteByte('}')
	}
}

// formatReal keeps a decimal point so reals stay visually distinct from ints.
func formatReal(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
