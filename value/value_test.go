package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValueKindsAndAccessors(t *testing.T) {
	b, ok := Bool(true).AsBool()
	require.True(t, ok)
	require.True(t, b)

	i, ok := Int(42).AsInt()
	require.True(t, ok)
	require.Equal(t, int64(42), i)

	s, ok := String("hi").AsString()
	require.True(t, ok)
	require.Equal(t, "hi", s)

	list, ok := ListOf(Int(1), Int(2)).AsList()
	require.True(t, ok)
	require.Len(t, list, 2)

	m, ok := MapOf(map[string]Value{"k": Bool(false)}).AsMap()
	require.True(t, ok)
	require.Len(t, m, 1)

	// Mismatched accessors report !ok
	_, ok = Int(1).AsBool()
	require.False(t, ok)
	_, ok = String("x").AsInt()
	require.False(t, ok)
}

func TestValueEqual(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Value
		equal bool
	}{
		{"equal bools", Bool(true), Bool(true), true},
		{"unequal bools", Bool(true), Bool(false), false},
		{"equal ints", Int(7), Int(7), true},
		{"unequal ints", Int(7), Int(8), false},
		{"equal strings", String("a"), String("a"), true},
		{"unequal strings", String("a"), String("b"), false},
		{"kind mismatch", Int(1), String("1"), false},
		{"equal lists", ListOf(Int(1), String("x")), ListOf(Int(1), String("x")), true},
		{"list length mismatch", ListOf(Int(1)), ListOf(Int(1), Int(2)), false},
		{"list element mismatch", ListOf(Int(1)), ListOf(Int(2)), false},
		{
			"equal maps",
			MapOf(map[string]Value{"a": Int(1), "b": Bool(true)}),
			MapOf(map[string]Value{"b": Bool(true), "a": Int(1)}),
			true,
		},
		{
			"map key mismatch",
			MapOf(map[string]Value{"a": Int(1)}),
			MapOf(map[string]Value{"b": Int(1)}),
			false,
		},
		{
			"nested structures",
			ListOf(MapOf(map[string]Value{"xs": ListOf(Int(1), Int(2))})),
			ListOf(MapOf(map[string]Value{"xs": ListOf(Int(1), Int(2))})),
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.equal, tt.a.Equal(tt.b))
			require.Equal(t, tt.equal, tt.b.Equal(tt.a))
		})
	}
}

func TestValueImmutableFromCaller(t *testing.T) {
	src := map[string]Value{"a": Int(1)}
	v := MapOf(src)
	src["b"] = Int(2)
	require.Equal(t, 1, v.Len())

	elems := []Value{Int(1)}
	l := ListOf(elems...)
	elems[0] = Int(99)
	e, ok := l.Index(0)
	require.True(t, ok)
	require.True(t, e.Equal(Int(1)))
}

func TestTypeMatches(t *testing.T) {
	tests := []struct {
		name    string
		typ     Type
		v       Value
		matches bool
	}{
		{"bool", BoolType(), Bool(true), true},
		{"bool vs int", BoolType(), Int(1), false},
		{"int list", ListType(IntType()), ListOf(Int(1), Int(2)), true},
		{"mixed list rejected", ListType(IntType()), ListOf(Int(1), String("x")), false},
		{"empty list matches any element type", ListType(StringType()), ListOf(), true},
		{"string map", MapType(StringType()), MapOf(map[string]Value{"k": String("v")}), true},
		{"map value mismatch", MapType(StringType()), MapOf(map[string]Value{"k": Int(3)}), false},
		{
			"nested list of maps",
			ListType(MapType(IntType())),
			ListOf(MapOf(map[string]Value{"n": Int(1)})),
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.matches, tt.typ.Matches(tt.v))
		})
	}
}
