package introspect

import "reflect"

// Element is the annotation descriptor of one class level.
type Element struct {
	Type reflect.Type
	// Class holds directives declared on blank "_" fields.
	Class []Directive
	// Fields holds the fields declared at this level. The embedded parent field is not included.
	Fields []FieldElement
}

// FieldElement is a struct field with its parsed directives.
type FieldElement struct {
	Field      reflect.StructField
	Directives []Directive
}

// Lookup returns the first directive with the given name.
func (fe FieldElement) Lookup(name string) (Directive, bool) {
	return lookup(fe.Directives, name)
}

// Has reports whether a directive with the given name is present.
func (fe FieldElement) Has(name string) bool {
	_, ok := lookup(fe.Directives, name)
	return ok
}

func lookup(ds []Directive, name string) (Directive, bool) {
	for _, d := range ds {
		if d.Name == name {
			return d, true
		}
	}
	return Directive{}, false
}
