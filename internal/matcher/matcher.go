package matcher

import (
	"reflect"

	"github.com/ygrebnov/errorc"
	"go.uber.org/zap"

	"github.com/ygrebnov/bind/component"
	"github.com/ygrebnov/bind/errors"
	"github.com/ygrebnov/bind/internal/store"
	"github.com/ygrebnov/bind/model"
	"github.com/ygrebnov/bind/typeinfo"
)

// Matcher registers user components into a store and resolves them for runtime types.
type Matcher struct {
	store   *store.Store
	factory component.Factory
	logger  *zap.Logger
}

func New(s *store.Store, f component.Factory, logger *zap.Logger) *Matcher {
	if f == nil {
		f = component.NewFactory()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{store: s, factory: f, logger: logger}
}

// Register introspects c and puts its binding into the store.
// c is either a component instance or a reflect.Type referencing a component type,
// which is then instantiated through the factory.
func (m *Matcher) Register(kind component.Kind, c any) error {
	rt, instance, err := split(kind, c)
	if err != nil {
		return err
	}

	var b component.Binding
	switch kind {
	case component.KindSerializer:
		b, err = m.IntrospectSerializer(rt, instance)
	case component.KindDeserializer:
		b, err = m.IntrospectDeserializer(rt, instance)
	case component.KindAdapter:
		b, err = m.IntrospectAdapter(rt, instance)
	default:
		err = errorc.With(errors.ErrConfiguration, errorc.String(errors.ErrorFieldComponentKind, kind.String()))
	}
	if err != nil {
		return err
	}

	m.store.Register(b)
	return nil
}

// split separates a class reference from a ready instance.
func split(kind component.Kind, c any) (reflect.Type, any, error) {
	switch v := c.(type) {
	case nil:
		return nil, nil, errorc.With(errors.ErrNilComponent, errorc.String(errors.ErrorFieldComponentKind, kind.String()))
	case reflect.Type:
		return v, nil, nil
	default:
		return reflect.TypeOf(c), c, nil
	}
}

// IntrospectSerializer returns the binding of the serializer of type rt. A value type whose
// methods have pointer receivers is taken as the pointer type. When the store already
// holds a serializer of the same type for the binding type, that binding is returned.
// Otherwise instance is used, or one is created through the factory when instance is nil.
// The returned binding is not registered.
func (m *Matcher) IntrospectSerializer(rt reflect.Type, instance any) (*component.SerializerBinding, error) {
	rt = reference(component.KindSerializer, rt, instance)
	sig, err := m.signature(component.KindSerializer, rt, instance)
	if err != nil {
		return nil, err
	}
	if g, ok := m.store.Group(sig.Binding); ok {
		if b := g.Serializer(); b != nil && b.ComponentType() == rt {
			return b, nil
		}
	}
	c, err := m.instance(rt, instance)
	if err != nil {
		return nil, err
	}
	return component.NewSerializerBinding(sig.Binding, c), nil
}

// IntrospectDeserializer is IntrospectSerializer for deserializers.
func (m *Matcher) IntrospectDeserializer(rt reflect.Type, instance any) (*component.DeserializerBinding, error) {
	rt = reference(component.KindDeserializer, rt, instance)
	sig, err := m.signature(component.KindDeserializer, rt, instance)
	if err != nil {
		return nil, err
	}
	if g, ok := m.store.Group(sig.Binding); ok {
		if b := g.Deserializer(); b != nil && b.ComponentType() == rt {
			return b, nil
		}
	}
	c, err := m.instance(rt, instance)
	if err != nil {
		return nil, err
	}
	return component.NewDeserializerBinding(sig.Binding, c), nil
}

// IntrospectAdapter is IntrospectSerializer for adapters.
func (m *Matcher) IntrospectAdapter(rt reflect.Type, instance any) (*component.AdapterBinding, error) {
	rt = reference(component.KindAdapter, rt, instance)
	sig, err := m.signature(component.KindAdapter, rt, instance)
	if err != nil {
		return nil, err
	}
	if g, ok := m.store.Group(sig.Binding); ok {
		if b := g.Adapter(); b != nil && b.ComponentType() == rt {
			return b, nil
		}
	}
	c, err := m.instance(rt, instance)
	if err != nil {
		return nil, err
	}
	return component.NewAdapterBinding(sig.Binding, sig.Target, c), nil
}

// reference turns a value type whose component methods have pointer receivers into the
// pointer type, so that the factory creates an instance implementing the contract.
func reference(kind component.Kind, rt reflect.Type, instance any) reflect.Type {
	if instance != nil {
		return rt
	}
	return component.Receiver(kind, rt)
}

func (m *Matcher) signature(kind component.Kind, rt reflect.Type, instance any) (component.Signature, error) {
	if instance != nil {
		return component.Introspect(kind, instance)
	}
	return component.IntrospectType(kind, rt)
}

func (m *Matcher) instance(rt reflect.Type, instance any) (any, error) {
	if instance != nil {
		return instance, nil
	}
	c, err := m.factory.GetOrCreate(rt)
	if err != nil {
		return nil, errorc.With(err, errorc.String(errors.ErrorFieldComponentType, rt.String()))
	}
	m.logger.Debug("component instantiated", zap.Stringer("type", rt))
	return c, nil
}

// ResolveSerializer returns the serializer applying to runtime.
// A serializer declared on bm wins, but only when it matches runtime; a declared serializer
// that does not match yields no serializer at all. Without a declared one, the store is scanned
// and the first matching group wins.
func (m *Matcher) ResolveSerializer(runtime typeinfo.Type, bm model.BindingModel) (*component.SerializerBinding, bool) {
	if b := customization(bm).SerializerBinding(); b != nil {
		return explicit(m, runtime, b)
	}
	return search(m, runtime, func(g *store.Group) (*component.SerializerBinding, bool) {
		b := g.Serializer()
		return b, b != nil
	})
}

// ResolveDeserializer is ResolveSerializer for deserializers.
func (m *Matcher) ResolveDeserializer(runtime typeinfo.Type, bm model.BindingModel) (*component.DeserializerBinding, bool) {
	if b := customization(bm).DeserializerBinding(); b != nil {
		return explicit(m, runtime, b)
	}
	return search(m, runtime, func(g *store.Group) (*component.DeserializerBinding, bool) {
		b := g.Deserializer()
		return b, b != nil
	})
}

// ResolveAdapter is ResolveSerializer for adapters. Properties of a model.TypeWrapper never get an adapter.
func (m *Matcher) ResolveAdapter(runtime typeinfo.Type, bm model.BindingModel) (*component.AdapterBinding, bool) {
	if pm, ok := bm.(*model.PropertyModel); ok && pm != nil && pm.ClassModel() != nil &&
		model.IsTypeWrapper(pm.ClassModel().Type()) {
		return nil, false
	}
	if b := customization(bm).AdapterBinding(); b != nil {
		return explicit(m, runtime, b)
	}
	return search(m, runtime, func(g *store.Group) (*component.AdapterBinding, bool) {
		b := g.Adapter()
		return b, b != nil
	})
}

// DateFormatter returns the date formatter declared on bm, or fallback.
func (m *Matcher) DateFormatter(bm model.BindingModel, fallback *model.DateFormatter) *model.DateFormatter {
	if f := customization(bm).DateFormatter(); f != nil {
		return f
	}
	return fallback
}

// HasGenericBindings reports whether polymorphic matching is enabled.
func (m *Matcher) HasGenericBindings() bool {
	return m.store.HasGenericBindings()
}

func (m *Matcher) matches(runtime, binding typeinfo.Type) bool {
	return typeinfo.Matches(runtime, binding, m.store.HasGenericBindings())
}

func customization(bm model.BindingModel) *model.Customization {
	if bm == nil {
		return nil
	}
	return bm.BindingCustomization()
}

func explicit[B component.Binding](m *Matcher, runtime typeinfo.Type, b B) (B, bool) {
	if m.matches(runtime, b.BindingType()) {
		return b, true
	}
	var zero B
	return zero, false
}

func search[B any](m *Matcher, runtime typeinfo.Type, get func(*store.Group) (B, bool)) (B, bool) {
	for g := range m.store.Groups() {
		if b, ok := get(g); ok && m.matches(runtime, g.BindingType()) {
			return b, true
		}
	}
	var zero B
	return zero, false
}
