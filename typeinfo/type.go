package typeinfo

import (
	"reflect"
	"strings"
	"sync/atomic"
)

// Type is a type descriptor.
type Type interface {
	Kind() Kind
	String() string
	isType()
}

// Describer is implemented by user generic types that want to be matched structurally.
// It is called on the zero value of the type, so it must not depend on field values.
//
//	func (Box[T]) TypeDescriptor() typeinfo.Type {
//		return typeinfo.Param(BoxRaw, typeinfo.Of[T]())
//	}
type Describer interface {
	TypeDescriptor() Type
}

// Raw identifies a generic raw type. Two raws are the same only if they are the same pointer.
type Raw struct {
	id   uint64
	name string
}

var rawIDs atomic.Uint64

// NewRaw declares a raw generic type. Declare each raw once, usually in a package-level var.
func NewRaw(name string) *Raw {
	return &Raw{id: rawIDs.Add(1), name: name}
}

func (r *Raw) Name() string {
	if r == nil {
		return ""
	}
	return r.name
}

func (r *Raw) String() string { return r.Name() }

// Raws of built-in composite types.
var (
	Slice   = NewRaw("slice")
	Map     = NewRaw("map")
	Pointer = NewRaw("pointer")
	Chan    = NewRaw("chan")
)

type simple struct {
	rt reflect.Type
}

func (simple) Kind() Kind { return KindSimple }
func (simple) isType()    {}

func (s simple) String() string { return s.rt.String() }

// Reflect returns the reflect.Type of a simple descriptor.
func (s simple) Reflect() reflect.Type { return s.rt }

type parameterized struct {
	raw  *Raw
	args []Type
}

func (*parameterized) Kind() Kind { return KindParameterized }
func (*parameterized) isType()    {}

func (p *parameterized) String() string {
	var b strings.Builder
	b.WriteString(p.raw.Name())
	b.WriteByte('[')
	for i, a := range p.args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(typeString(a))
	}
	b.WriteByte(']')
	return b.String()
}

type variable struct {
	name string
}

func (variable) Kind() Kind { return KindVariable }
func (variable) isType()    {}

func (v variable) String() string { return v.name }

// Name returns the placeholder name.
func (v variable) Name() string { return v.name }

func typeString(t Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

// Simple describes rt as a simple type regardless of its shape.
// It returns nil for a nil rt.
func Simple(rt reflect.Type) Type {
	if rt == nil {
		return nil
	}
	return simple{rt: rt}
}

// Param describes a parameterized type. A nil raw yields nil.
func Param(raw *Raw, args ...Type) Type {
	if raw == nil {
		return nil
	}
	cp := make([]Type, len(args))
	copy(cp, args)
	return &parameterized{raw: raw, args: cp}
}

// Var describes an unbound type placeholder.
func Var(name string) Type {
	return variable{name: name}
}

// Of describes the static type T, interfaces included.
func Of[T any]() Type {
	return FromReflect(reflect.TypeOf((*T)(nil)).Elem())
}

var describerType = reflect.TypeOf((*Describer)(nil)).Elem()

// FromReflect builds a descriptor for rt.
// Unnamed slices, maps, pointers and channels become parameterized descriptors over the
// built-in raws; types implementing Describer describe themselves; everything else is simple.
func FromReflect(rt reflect.Type) Type {
	if rt == nil {
		return nil
	}
	if rt.Kind() != reflect.Interface && rt.Kind() != reflect.Pointer && rt.Implements(describerType) {
		if d, ok := reflect.Zero(rt).Interface().(Describer); ok {
			if t := d.TypeDescriptor(); t != nil {
				return t
			}
		}
	}
	if rt.Name() != "" {
		return simple{rt: rt}
	}
	switch rt.Kind() {
	case reflect.Slice:
		return Param(Slice, FromReflect(rt.Elem()))
	case reflect.Map:
		return Param(Map, FromReflect(rt.Key()), FromReflect(rt.Elem()))
	case reflect.Pointer:
		return Param(Pointer, FromReflect(rt.Elem()))
	case reflect.Chan:
		return Param(Chan, FromReflect(rt.Elem()))
	default:
		return simple{rt: rt}
	}
}

// ReflectOf returns the reflect.Type behind a simple descriptor.
func ReflectOf(t Type) (reflect.Type, bool) {
	s, ok := t.(simple)
	if !ok {
		return nil, false
	}
	return s.rt, true
}

// VariableName returns the placeholder name of a variable descriptor.
func VariableName(t Type) (string, bool) {
	v, ok := t.(variable)
	if !ok {
		return "", false
	}
	return v.name, true
}

// Decompose splits a parameterized descriptor into its raw type and arguments.
// The returned slice is a copy.
func Decompose(t Type) (*Raw, []Type, bool) {
	p, ok := t.(*parameterized)
	if !ok {
		return nil, nil, false
	}
	args := make([]Type, len(p.args))
	copy(args, p.args)
	return p.raw, args, true
}

// IsParameterized reports whether t is a parameterized descriptor.
func IsParameterized(t Type) bool {
	_, ok := t.(*parameterized)
	return ok
}

// HasVariables reports whether t contains a placeholder at any depth.
func HasVariables(t Type) bool {
	switch v := t.(type) {
	case variable:
		return true
	case *parameterized:
		for _, a := range v.args {
			if HasVariables(a) {
				return true
			}
		}
	}
	return false
}
