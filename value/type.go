package value

import "fmt"

// Type describes the shape a value must have. List and map types carry an
// element type; the closed kind set makes the descriptor a small tree.
type Type struct {
	kind Kind
	elem *Type
}

// BoolType returns the boolean type descriptor.
func BoolType() Type {
	return Type{kind: KindBool}
}

// IntType returns the integer type descriptor.
func IntType() Type {
	return Type{kind: KindInt}
}

// StringType returns the string type descriptor.
func StringType() Type {
	return Type{kind: KindString}
}

// ListType returns a list type with the given element type.
func ListType(elem Type) Type {
	e := elem
	return Type{kind: KindList, elem: &e}
}

// MapType returns a string-keyed map type with the given element type.
func MapType(elem Type) Type {
	e := elem
	return Type{kind: KindMap, elem: &e}
}

// Kind returns the kind this type describes.
func (t Type) Kind() Kind {
	return t.kind
}

// Elem returns the element type of a list or map type.
func (t Type) Elem() (Type, bool) {
	if t.elem == nil {
		return Type{}, false
	}
	return *t.elem, true
}

// Matches reports whether v conforms to t, recursing into list and map
// elements.
func (t Type) Matches(v Value) bool {
	if t.kind != v.kind {
		return false
	}
	switch t.kind {
	case KindList:
		for _, e := range v.list {
			if !t.elem.Matches(e) {
				return false
			}
		}
	case KindMap:
		for _, e := range v.m {
			if !t.elem.Matches(e) {
				return false
			}
		}
	}
	return true
}

func (t Type) String() string {
	switch t.kind {
	case KindList:
		return fmt.Sprintf("list<%s>", t.elem)
	case KindMap:
		return fmt.Sprintf("map<%s>", t.elem)
	default:
		return t.kind.String()
	}
}
