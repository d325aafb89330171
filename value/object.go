package value

import "fmt"

// Object is an immutable settings snapshot: a schema plus the properties
// explicitly set on top of it. Properties never set report their schema
// default. Objects are safe to share across goroutines.
type Object struct {
	schema *Schema
	set    map[string]Value
}

// NewObject returns a snapshot of sch with every property at its default.
func NewObject(sch *Schema) *Object {
	return &Object{schema: sch, set: map[string]Value{}}
}

// Schema returns the schema this object was built against.
func (o *Object) Schema() *Schema {
	return o.schema
}

// Get returns the effective value of the named property: the explicitly set
// value if present, the schema default otherwise. ok is false for names the
// schema does not declare.
func (o *Object) Get(name string) (Value, bool) {
	if v, ok := o.set[name]; ok {
		return v, true
	}
	p, ok := o.schema.Property(name)
	if !ok {
		return Value{}, false
	}
	return p.Default, true
}

// IsSet reports whether the named property was explicitly set, as opposed to
// reporting its default.
func (o *Object) IsSet(name string) bool {
	_, ok := o.set[name]
	return ok
}

// Equal reports whether both objects have the same effective value for every
// declared property. Objects over schemas with different property sets are
// never equal.
func (o *Object) Equal(other *Object) bool {
	if o == other {
		return true
	}
	if o == nil || other == nil {
		return false
	}
	if !o.schema.sameShape(other.schema) {
		return false
	}
	for _, name := range o.schema.Names() {
		a, _ := o.Get(name)
		b, _ := other.Get(name)
		if !a.Equal(b) {
			return false
		}
	}
	return true
}

// Edit returns a working copy seeded with this object's explicit properties.
func (o *Object) Edit() *Copy {
	set := make(map[string]Value, len(o.set))
	for k, v := range o.set {
		set[k] = v
	}
	return &Copy{schema: o.schema, set: set}
}

// Copy is a mutable working set staged on top of a schema. It is not safe
// for concurrent use; Commit produces an immutable Object that is.
type Copy struct {
	schema *Schema
	set    map[string]Value
}

// NewCopy returns an empty working copy for sch.
func NewCopy(sch *Schema) *Copy {
	return &Copy{schema: sch, set: map[string]Value{}}
}

// Set stages a value for the named property. Unknown names and values that do
// not match the declared type are rejected.
func (c *Copy) Set(name string, v Value) error {
	p, ok := c.schema.Property(name)
	if !ok {
		return fmt.Errorf("property %q not declared in schema", name)
	}
	if !p.Type.Matches(v) {
		return fmt.Errorf("property %q is %s, got %s", name, p.Type, v.Kind())
	}
	c.set[name] = v
	return nil
}

// Remove unsets the named property, reverting it to its schema default.
func (c *Copy) Remove(name string) {
	delete(c.set, name)
}

// Get returns the effective staged value of the named property.
func (c *Copy) Get(name string) (Value, bool) {
	if v, ok := c.set[name]; ok {
		return v, true
	}
	p, ok := c.schema.Property(name)
	if !ok {
		return Value{}, false
	}
	return p.Default, true
}

// Commit freezes the working set into an immutable Object. The copy remains
// usable for further staging.
func (c *Copy) Commit() *Object {
	set := make(map[string]Value, len(c.set))
	for k, v := range c.set {
		set[k] = v
	}
	return &Object{schema: c.schema, set: set}
}
