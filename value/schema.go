package value

import "fmt"

// Property is a single named, typed schema entry with a default value.
type Property struct {
	Name    string
	Type    Type
	Default Value
}

// Schema is the declared set of properties a settings object may contain.
// Schemas are immutable once built; construct them with NewSchema.
type Schema struct {
	order []string
	props map[string]Property
}

// Property returns the named property descriptor.
func (s *Schema) Property(name string) (Property, bool) {
	p, ok := s.props[name]
	return p, ok
}

// Names returns the property names in declaration order. Callers must not
// mutate the result.
func (s *Schema) Names() []string {
	return s.order
}

// Len returns the number of declared properties.
func (s *Schema) Len() int {
	return len(s.order)
}

// sameShape reports whether both schemas declare the same property set.
func (s *Schema) sameShape(other *Schema) bool {
	if s == other {
		return true
	}
	if len(s.order) != len(other.order) {
		return false
	}
	for name := range s.props {
		if _, ok := other.props[name]; !ok {
			return false
		}
	}
	return true
}

// SchemaBuilder accumulates property declarations for a Schema. Declaration
// order is preserved and becomes the wire order of encoded objects.
type SchemaBuilder struct {
	order []string
	props map[string]Property
	err   error
}

// NewSchema returns an empty schema builder.
func NewSchema() *SchemaBuilder {
	return &SchemaBuilder{props: make(map[string]Property)}
}

// Prop declares a property with an explicit type descriptor and default.
func (b *SchemaBuilder) Prop(name string, t Type, def Value) *SchemaBuilder {
	if b.err != nil {
		return b
	}
	if name == "" {
		b.err = fmt.Errorf("schema property with empty name")
		return b
	}
	if _, dup := b.props[name]; dup {
		b.err = fmt.Errorf("schema property %q declared twice", name)
		return b
	}
	if !t.Matches(def) {
		b.err = fmt.Errorf("default for property %q is %s, want %s", name, def.Kind(), t)
		return b
	}
	b.order = append(b.order, name)
	b.props[name] = Property{Name: name, Type: t, Default: def}
	return b
}

// Bool declares a boolean property.
func (b *SchemaBuilder) Bool(name string, def bool) *SchemaBuilder {
	return b.Prop(name, BoolType(), Bool(def))
}

// Int declares an integer property.
func (b *SchemaBuilder) Int(name string, def int64) *SchemaBuilder {
	return b.Prop(name, IntType(), Int(def))
}

// String declares a string property.
func (b *SchemaBuilder) String(name string, def string) *SchemaBuilder {
	return b.Prop(name, StringType(), String(def))
}

// Build returns the immutable schema, or the first declaration error.
func (b *SchemaBuilder) Build() (*Schema, error) {
	if b.err != nil {
		return nil, b.err
	}
	order := make([]string, len(b.order))
	copy(order, b.order)
	props := make(map[string]Property, len(b.props))
	for k, v := range b.props {
		props[k] = v
	}
	return &Schema{order: order, props: props}, nil
}

// MustBuild is Build for schemas declared with constants; it panics on a
// declaration error.
func (b *SchemaBuilder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
