package component

import (
	"reflect"

	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/bind/errors"
	"github.com/ygrebnov/bind/typeinfo"
)

// Signature is the declared generic signature of a component: the type it binds to, the target
// type for adapters, and the scope used to resolve placeholders in both.
type Signature struct {
	Kind    Kind
	Binding typeinfo.Type
	Target  typeinfo.Type
	Scope   *typeinfo.Scope
}

// Declarer is implemented by components that declare their signature explicitly instead of
// having it read from their method set.
type Declarer interface {
	ComponentSignature() Signature
}

var (
	writerType = reflect.TypeOf((*Writer)(nil)).Elem()
	readerType = reflect.TypeOf((*Reader)(nil)).Elem()
	rtType     = reflect.TypeOf((*reflect.Type)(nil)).Elem()
	errorType  = reflect.TypeOf((*error)(nil)).Elem()
)

// Introspect derives the resolved signature of component c for the given kind.
func Introspect(kind Kind, c any) (Signature, error) {
	if c == nil {
		return Signature{}, errorc.With(errors.ErrNilComponent, errorc.String(errors.ErrorFieldComponentKind, kind.String()))
	}
	if d, ok := c.(Declarer); ok {
		return resolveDeclared(kind, reflect.TypeOf(c), d.ComponentSignature())
	}
	rt := reflect.TypeOf(c)
	if Receiver(kind, rt) != rt {
		return Signature{}, configError(kind, rt, "methods have pointer receivers, pass a pointer")
	}
	return IntrospectType(kind, rt)
}

// IntrospectType derives the signature from the method set of the component type rt.
// A component declared by type reference that implements Declarer is asked through its zero value.
// Methods with pointer receivers are found for a value type rt; see Receiver.
func IntrospectType(kind Kind, rt reflect.Type) (Signature, error) {
	if rt == nil {
		return Signature{}, errorc.With(errors.ErrNilType, errorc.String(errors.ErrorFieldComponentKind, kind.String()))
	}
	if d, ok := declarerOf(rt); ok {
		return resolveDeclared(kind, rt, d.ComponentSignature())
	}

	sig := Signature{Kind: kind}
	m, ok := methodOf(rt, kind.method())
	if !ok {
		return Signature{}, configError(kind, rt, "method not found")
	}
	ft := m.Type // receiver is In(0)
	switch kind {
	case KindSerializer:
		if ft.NumIn() != 3 || ft.In(2) != writerType || ft.NumOut() != 1 || ft.Out(0) != errorType {
			return Signature{}, configError(kind, rt, "want Serialize(T, Writer) error")
		}
		sig.Binding = typeinfo.FromReflect(ft.In(1))
	case KindDeserializer:
		if ft.NumIn() != 3 || ft.In(1) != readerType || ft.In(2) != rtType || ft.NumOut() != 2 || ft.Out(1) != errorType {
			return Signature{}, configError(kind, rt, "want Deserialize(Reader, reflect.Type) (T, error)")
		}
		sig.Binding = typeinfo.FromReflect(ft.Out(0))
	case KindAdapter:
		if ft.NumIn() != 2 || ft.NumOut() != 2 || ft.Out(1) != errorType {
			return Signature{}, configError(kind, rt, "want AdaptTo(Original) (Adapted, error)")
		}
		if _, ok := methodOf(rt, "AdaptFrom"); !ok {
			return Signature{}, configError(kind, rt, "AdaptFrom not found")
		}
		sig.Binding = typeinfo.FromReflect(ft.In(1))
		sig.Target = typeinfo.FromReflect(ft.Out(0))
	default:
		return Signature{}, configError(kind, rt, "unknown component kind")
	}
	return sig, nil
}

func methodOf(rt reflect.Type, name string) (reflect.Method, bool) {
	if name == "" || rt.Kind() == reflect.Interface {
		return reflect.Method{}, false
	}
	if m, ok := rt.MethodByName(name); ok {
		return m, true
	}
	if rt.Kind() != reflect.Pointer {
		return reflect.PointerTo(rt).MethodByName(name)
	}
	return reflect.Method{}, false
}

// Receiver returns the type whose values have the methods of the kind: rt itself, or *rt when
// those methods have pointer receivers. Components referenced by type are instantiated as Receiver.
func Receiver(kind Kind, rt reflect.Type) reflect.Type {
	if rt == nil || rt.Kind() == reflect.Pointer || rt.Kind() == reflect.Interface {
		return rt
	}
	if hasMethods(rt, kind.methods()) {
		return rt
	}
	if pt := reflect.PointerTo(rt); hasMethods(pt, kind.methods()) {
		return pt
	}
	return rt
}

func hasMethods(rt reflect.Type, names []string) bool {
	for _, name := range names {
		if _, ok := rt.MethodByName(name); !ok {
			return false
		}
	}
	return len(names) > 0
}

var declarerType = reflect.TypeOf((*Declarer)(nil)).Elem()

func declarerOf(rt reflect.Type) (Declarer, bool) {
	switch {
	case rt.Kind() == reflect.Interface:
		return nil, false
	case rt.Kind() != reflect.Pointer && rt.Implements(declarerType):
		d, ok := reflect.Zero(rt).Interface().(Declarer)
		return d, ok
	case rt.Kind() == reflect.Pointer && rt.Implements(declarerType):
		d, ok := reflect.New(rt.Elem()).Interface().(Declarer)
		return d, ok
	case rt.Kind() != reflect.Pointer && reflect.PointerTo(rt).Implements(declarerType):
		d, ok := reflect.New(rt).Interface().(Declarer)
		return d, ok
	}
	return nil, false
}

func resolveDeclared(kind Kind, rt reflect.Type, sig Signature) (Signature, error) {
	if sig.Kind != 0 && sig.Kind != kind {
		return Signature{}, errorc.With(
			errors.ErrComponentKindMismatch,
			errorc.String(errors.ErrorFieldComponentType, rt.String()),
			errorc.String(errors.ErrorFieldComponentKind, kind.String()),
		)
	}
	sig.Kind = kind
	if sig.Binding == nil {
		return Signature{}, configError(kind, rt, "declared signature has no binding type")
	}
	if kind == KindAdapter && sig.Target == nil {
		return Signature{}, configError(kind, rt, "declared adapter signature has no target type")
	}

	var err error
	if sig.Binding, err = typeinfo.Resolve(sig.Binding, sig.Scope); err != nil {
		return Signature{}, errorc.With(err, errorc.String(errors.ErrorFieldComponentType, rt.String()))
	}
	if sig.Target != nil {
		if sig.Target, err = typeinfo.Resolve(sig.Target, sig.Scope); err != nil {
			return Signature{}, errorc.With(err, errorc.String(errors.ErrorFieldComponentType, rt.String()))
		}
	}
	return sig, nil
}

func configError(kind Kind, rt reflect.Type, detail string) error {
	return errorc.With(
		errors.ErrConfiguration,
		errorc.String(errors.ErrorFieldComponentType, rt.String()),
		errorc.String(errors.ErrorFieldComponentKind, kind.String()),
		errorc.String(errors.ErrorFieldMethod, kind.method()),
		errorc.String(errors.ErrorFieldCause, detail),
	)
}
