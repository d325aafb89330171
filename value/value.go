// Package value implements the schema-typed settings values persisted by the
// auto-save engine: a closed set of immutable value kinds, explicit schema
// descriptors, and immutable settings snapshots edited through working copies.
package value

import (
	"fmt"
	"sort"
	"strings"
)

// Kind identifies one of the closed set of value kinds.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindString
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is an immutable tagged value. The zero Value is the boolean false.
// Values are safe to copy and to share across goroutines.
type Value struct {
	kind Kind
	b    bool
	i    int64
	s    string
	list []Value
	m    map[string]Value
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Int returns an integer value.
func Int(i int64) Value {
	return Value{kind: KindInt, i: i}
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// ListOf returns a list value holding the given elements.
func ListOf(elems ...Value) Value {
	list := make([]Value, len(elems))
	copy(list, elems)
	return Value{kind: KindList, list: list}
}

// MapOf returns a map value holding a copy of the given entries.
func MapOf(entries map[string]Value) Value {
	m := make(map[string]Value, len(entries))
	for k, v := range entries {
		m[k] = v
	}
	return Value{kind: KindMap, m: m}
}

// Kind returns the value's kind tag.
func (v Value) Kind() Kind {
	return v.kind
}

// AsBool returns the boolean payload. ok is false for other kinds.
func (v Value) AsBool() (b bool, ok bool) {
	return v.b, v.kind == KindBool
}

// AsInt returns the integer payload. ok is false for other kinds.
func (v Value) AsInt() (i int64, ok bool) {
	return v.i, v.kind == KindInt
}

// AsString returns the string payload. ok is false for other kinds.
func (v Value) AsString() (s string, ok bool) {
	return v.s, v.kind == KindString
}

// AsList returns the list elements. Callers must not mutate the result.
func (v Value) AsList() (elems []Value, ok bool) {
	return v.list, v.kind == KindList
}

// AsMap returns the map entries. Callers must not mutate the result.
func (v Value) AsMap() (entries map[string]Value, ok bool) {
	return v.m, v.kind == KindMap
}

// Len returns the element count for lists and maps, zero otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindMap:
		return len(v.m)
	default:
		return 0
	}
}

// Index returns the i-th list element. ok is false for other kinds or
// out-of-range indexes.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindList || i < 0 || i >= len(v.list) {
		return Value{}, false
	}
	return v.list[i], true
}

// Entry returns the map entry for key. ok is false for other kinds or
// missing keys.
func (v Value) Entry(key string) (Value, bool) {
	if v.kind != KindMap {
		return Value{}, false
	}
	e, ok := v.m[key]
	return e, ok
}

// Equal reports full structural equality.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindString:
		return v.s == other.s
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.m) != len(other.m) {
			return false
		}
		for k, e := range v.m {
			oe, ok := other.m[k]
			if !ok || !e.Equal(oe) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String returns a debug representation. It is not the wire format.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindString:
		return fmt.Sprintf("%q", v.s)
	case KindList:
		parts := make([]string, len(v.list))
		for i, e := range v.list {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMap:
		keys := sortedKeys(v.m)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%q: %s", k, v.m[k]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "<invalid>"
	}
}

func sortedKeys(m map[string]Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
