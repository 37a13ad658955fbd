package typeinfo

import "reflect"

// Equal reports structural equality of two descriptors.
// Simple descriptors are equal when they name the identical Go type. Parameterized descriptors
// are equal when their raws are identical and their argument lists are pairwise equal in order.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case simple:
		y, ok := b.(simple)
		return ok && x.rt == y.rt
	case variable:
		y, ok := b.(variable)
		return ok && x.name == y.name
	case *parameterized:
		y, ok := b.(*parameterized)
		return ok && x.raw == y.raw && argsEqual(x.args, y.args)
	default:
		return false
	}
}

func argsEqual(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// IsAssignable reports whether a value of the candidate type can be used where the binding
// type is declared. Only simple descriptors take part: the candidate must be identical to the
// binding type, assignable to it (interface implementation included) or carry it in its
// ancestor chain.
func IsAssignable(candidate, binding Type) bool {
	c, ok := candidate.(simple)
	if !ok {
		return false
	}
	b, ok := binding.(simple)
	if !ok {
		return false
	}
	if c.rt == b.rt || c.rt.AssignableTo(b.rt) {
		return true
	}
	for _, a := range Ancestors(c.rt) {
		if a == b.rt {
			return true
		}
	}
	return false
}

// Matches decides whether a component bound to the binding type applies to the runtime type.
//
// Equal descriptors always match. Anything broader is only considered when polymorphic is set:
// simple runtime types then match supertypes and implemented interfaces, and parameterized
// runtime types match bindings with the identical raw and exactly equal arguments.
// A parameterized descriptor never matches a simple one.
func Matches(runtime, binding Type, polymorphic bool) bool {
	if runtime == nil || binding == nil {
		return false
	}
	if Equal(runtime, binding) {
		return true
	}
	if !polymorphic {
		return false
	}
	if runtime.Kind() == KindSimple && binding.Kind() == KindSimple {
		return IsAssignable(runtime, binding)
	}
	r, ok := runtime.(*parameterized)
	if !ok {
		return false
	}
	b, ok := binding.(*parameterized)
	if !ok {
		return false
	}
	return r.raw == b.raw && argsEqual(r.args, b.args)
}

// Superclass returns the parent of rt in the ancestor chain: the type of the first field
// when that field is an embedded struct, or an embedded pointer to a struct.
// Any other type has no parent, and neither has a type whose chain of first-field embeddings
// leads back to itself.
func Superclass(rt reflect.Type) (reflect.Type, bool) {
	p, ok := embeddedFirst(rt)
	if !ok {
		return nil, false
	}
	seen := map[reflect.Type]struct{}{}
	for q, next := p, true; next; q, next = embeddedFirst(q) {
		if q == rt {
			return nil, false
		}
		if _, dup := seen[q]; dup {
			// The loop does not pass through rt.
			break
		}
		seen[q] = struct{}{}
	}
	return p, true
}

func embeddedFirst(rt reflect.Type) (reflect.Type, bool) {
	if rt == nil || rt.Kind() != reflect.Struct || rt.NumField() == 0 {
		return nil, false
	}
	f := rt.Field(0)
	if !f.Anonymous {
		return nil, false
	}
	ft := f.Type
	if ft.Kind() == reflect.Pointer {
		ft = ft.Elem()
	}
	if ft.Kind() != reflect.Struct || ft == rt {
		return nil, false
	}
	return ft, true
}

// Ancestors returns the ancestor chain of rt, nearest parent first. rt itself is not included.
func Ancestors(rt reflect.Type) []reflect.Type {
	var out []reflect.Type
	seen := map[reflect.Type]struct{}{rt: {}}
	for p, ok := Superclass(rt); ok; p, ok = Superclass(p) {
		// *T embedding can loop back through pointers.
		if _, dup := seen[p]; dup {
			break
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
