package matcher

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ygrebnov/bind/component"
	"github.com/ygrebnov/bind/errors"
	"github.com/ygrebnov/bind/internal/store"
	"github.com/ygrebnov/bind/model"
	"github.com/ygrebnov/bind/typeinfo"
)

type item struct{ Name string }

type derived struct {
	item
	Extra int
}

type otherItem struct{}

type itemSerializer struct{}

func (itemSerializer) Serialize(item, component.Writer) error { return nil }

type altItemSerializer struct{}

func (altItemSerializer) Serialize(item, component.Writer) error { return nil }

type itemDeserializer struct{}

func (itemDeserializer) Deserialize(component.Reader, reflect.Type) (item, error) { return item{}, nil }

// ptrItemDeserializer has a pointer receiver: only *ptrItemDeserializer is a deserializer.
type ptrItemDeserializer struct{ calls int }

func (d *ptrItemDeserializer) Deserialize(component.Reader, reflect.Type) (item, error) {
	d.calls++
	return item{}, nil
}

type itemAdapter struct{}

func (itemAdapter) AdaptTo(item) (string, error)   { return "", nil }
func (itemAdapter) AdaptFrom(string) (item, error) { return item{}, nil }

type otherItemAdapter struct{}

func (otherItemAdapter) AdaptTo(otherItem) (string, error)   { return "", nil }
func (otherItemAdapter) AdaptFrom(string) (otherItem, error) { return otherItem{}, nil }

// intsSerializer binds to []int, a parameterized type.
type intsSerializer struct{}

func (intsSerializer) Serialize([]int, component.Writer) error { return nil }

var containerRaw = typeinfo.NewRaw("Container")

type containerAdapter struct{}

func (containerAdapter) ComponentSignature() component.Signature {
	return component.Signature{
		Kind:    component.KindAdapter,
		Binding: typeinfo.Param(containerRaw, typeinfo.Of[item]()),
		Target:  typeinfo.Of[string](),
	}
}

type noMethods struct{}

func newMatcher() *Matcher {
	return New(store.New(nil), component.NewFactory(), nil)
}

func propertyWith(t *testing.T, owner reflect.Type, field string, c *model.PropertyCustomization) *model.PropertyModel {
	t.Helper()
	var pm *model.PropertyModel
	_, err := model.NewClassModel(owner, nil, nil, func(cm *model.ClassModel) ([]*model.PropertyModel, error) {
		f, ok := owner.FieldByName(field)
		require.True(t, ok)
		pm = model.NewPropertyModel(cm, f, field, c)
		return []*model.PropertyModel{pm}, nil
	})
	require.NoError(t, err)
	return pm
}

func TestMatcher_Register(t *testing.T) {
	tests := []struct {
		name    string
		kind    component.Kind
		c       any
		wantErr error
	}{
		{"serializer instance", component.KindSerializer, itemSerializer{}, nil},
		{"serializer class reference", component.KindSerializer, reflect.TypeOf(itemSerializer{}), nil},
		{"deserializer", component.KindDeserializer, itemDeserializer{}, nil},
		{"adapter", component.KindAdapter, itemAdapter{}, nil},
		{"declared adapter", component.KindAdapter, containerAdapter{}, nil},
		{"nil component", component.KindSerializer, nil, errors.ErrNilComponent},
		{"no method", component.KindSerializer, noMethods{}, errors.ErrConfiguration},
		{"wrong kind", component.KindSerializer, itemAdapter{}, errors.ErrConfiguration},
		{"unknown kind", component.Kind(42), itemSerializer{}, errors.ErrConfiguration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMatcher()
			err := m.Register(tt.kind, tt.c)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 0, m.store.Len())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, m.store.Len())
		})
	}
}

func TestMatcher_Register_ClassReferenceUsesFactory(t *testing.T) {
	m := newMatcher()
	require.NoError(t, m.Register(component.KindSerializer, reflect.TypeOf(&itemSerializer{})))

	b, ok := m.ResolveSerializer(typeinfo.Of[item](), nil)
	require.True(t, ok)
	assert.IsType(t, &itemSerializer{}, b.Component())
}

func TestMatcher_Register_ValueReferenceWithPointerReceiver(t *testing.T) {
	m := newMatcher()
	require.NoError(t, m.Register(component.KindDeserializer, reflect.TypeOf(ptrItemDeserializer{})))

	b, ok := m.ResolveDeserializer(typeinfo.Of[item](), nil)
	require.True(t, ok)
	_, ok = b.Component().(component.Deserializer[item])
	assert.True(t, ok, "component %T does not implement Deserializer[item]", b.Component())
	assert.Equal(t, reflect.TypeOf(&ptrItemDeserializer{}), b.ComponentType())

	// Value and pointer references name the same component.
	same, err := m.IntrospectDeserializer(reflect.TypeOf(ptrItemDeserializer{}), nil)
	require.NoError(t, err)
	assert.Same(t, b, same)
	same, err = m.IntrospectDeserializer(reflect.TypeOf(&ptrItemDeserializer{}), nil)
	require.NoError(t, err)
	assert.Same(t, b, same)
}

func TestMatcher_Register_ValueInstanceWithPointerReceiver(t *testing.T) {
	m := newMatcher()
	err := m.Register(component.KindDeserializer, ptrItemDeserializer{})
	require.ErrorIs(t, err, errors.ErrConfiguration)
	assert.Equal(t, 0, m.store.Len())
}

func TestMatcher_IntrospectReusesRegisteredComponent(t *testing.T) {
	m := newMatcher()
	require.NoError(t, m.Register(component.KindSerializer, itemSerializer{}))
	registered, ok := m.ResolveSerializer(typeinfo.Of[item](), nil)
	require.True(t, ok)

	same, err := m.IntrospectSerializer(reflect.TypeOf(itemSerializer{}), nil)
	require.NoError(t, err)
	assert.Same(t, registered, same)

	other, err := m.IntrospectSerializer(reflect.TypeOf(altItemSerializer{}), nil)
	require.NoError(t, err)
	assert.NotSame(t, registered, other)
	assert.IsType(t, altItemSerializer{}, other.Component())

	// Introspection alone never registers.
	b, _ := m.ResolveSerializer(typeinfo.Of[item](), nil)
	assert.Same(t, registered, b)
}

func TestMatcher_ExactMatchPrecedence(t *testing.T) {
	m := newMatcher()
	require.NoError(t, m.Register(component.KindSerializer, itemSerializer{}))
	require.False(t, m.HasGenericBindings())

	b, ok := m.ResolveSerializer(typeinfo.Of[item](), nil)
	require.True(t, ok)
	assert.IsType(t, itemSerializer{}, b.Component())

	_, ok = m.ResolveSerializer(typeinfo.Of[derived](), nil)
	assert.False(t, ok, "subtype must not match while no generic binding is registered")
}

func TestMatcher_GenericGate(t *testing.T) {
	m := newMatcher()
	require.NoError(t, m.Register(component.KindSerializer, itemSerializer{}))
	require.NoError(t, m.Register(component.KindSerializer, intsSerializer{}))
	require.True(t, m.HasGenericBindings())

	b, ok := m.ResolveSerializer(typeinfo.Of[item](), nil)
	require.True(t, ok)
	assert.IsType(t, itemSerializer{}, b.Component())

	b, ok = m.ResolveSerializer(typeinfo.Of[derived](), nil)
	require.True(t, ok, "subtype must match once a generic binding is registered")
	assert.IsType(t, itemSerializer{}, b.Component())

	_, ok = m.ResolveSerializer(typeinfo.Of[otherItem](), nil)
	assert.False(t, ok)
}

type itemPtrSerializer struct{}

func (itemPtrSerializer) Serialize(*item, component.Writer) error { return nil }

func TestMatcher_PointerBindingIsParameterized(t *testing.T) {
	m := newMatcher()
	require.NoError(t, m.Register(component.KindAdapter, itemAdapter{}))
	require.False(t, m.HasGenericBindings())

	require.NoError(t, m.Register(component.KindSerializer, itemPtrSerializer{}))
	assert.True(t, m.HasGenericBindings(), "a pointer binding type is parameterized")

	_, ok := m.ResolveSerializer(typeinfo.Of[*item](), nil)
	assert.True(t, ok)
	_, ok = m.ResolveAdapter(typeinfo.Of[*item](), nil)
	assert.False(t, ok, "an element adapter does not apply to the pointer type")
	_, ok = m.ResolveAdapter(typeinfo.Of[derived](), nil)
	assert.True(t, ok, "polymorphic matching is on for the whole matcher")
}

func TestMatcher_ParameterizedStructuralEquality(t *testing.T) {
	m := newMatcher()
	require.NoError(t, m.Register(component.KindAdapter, containerAdapter{}))

	tests := []struct {
		name    string
		runtime typeinfo.Type
		want    bool
	}{
		{"same args", typeinfo.Param(containerRaw, typeinfo.Of[item]()), true},
		{"other arg", typeinfo.Param(containerRaw, typeinfo.Of[otherItem]()), false},
		{"extra arg", typeinfo.Param(containerRaw, typeinfo.Of[item](), typeinfo.Of[otherItem]()), false},
		{"subtype arg", typeinfo.Param(containerRaw, typeinfo.Of[derived]()), false},
		{"other raw", typeinfo.Param(typeinfo.Slice, typeinfo.Of[item]()), false},
		{"simple", typeinfo.Of[item](), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := m.ResolveAdapter(tt.runtime, nil)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestMatcher_ExplicitBinding(t *testing.T) {
	type holder struct{ V any }

	m := newMatcher()
	require.NoError(t, m.Register(component.KindAdapter, otherItemAdapter{}))

	declared := component.NewAdapterBinding(typeinfo.Of[item](), typeinfo.Of[string](), itemAdapter{})
	pm := propertyWith(t, reflect.TypeOf(holder{}), "V", model.NewCustomizationBuilder().Adapter(declared).BuildProperty())

	b, ok := m.ResolveAdapter(typeinfo.Of[item](), pm)
	require.True(t, ok)
	assert.Same(t, declared, b)

	_, ok = m.ResolveAdapter(typeinfo.Of[otherItem](), pm)
	assert.False(t, ok, "mismatched explicit binding must not fall back to the store")

	b, ok = m.ResolveAdapter(typeinfo.Of[otherItem](), nil)
	require.True(t, ok)
	assert.IsType(t, otherItemAdapter{}, b.Component())

	var nilProperty *model.PropertyModel
	_, ok = m.ResolveAdapter(typeinfo.Of[otherItem](), nilProperty)
	assert.True(t, ok, "nil property model searches the store")
}

func TestMatcher_ExplicitSerializerAndDeserializer(t *testing.T) {
	type holder struct{ V item }

	m := newMatcher()
	ser := component.NewSerializerBinding(typeinfo.Of[item](), altItemSerializer{})
	de := component.NewDeserializerBinding(typeinfo.Of[item](), itemDeserializer{})
	pm := propertyWith(t, reflect.TypeOf(holder{}), "V",
		model.NewCustomizationBuilder().Serializer(ser).Deserializer(de).BuildProperty())

	s, ok := m.ResolveSerializer(typeinfo.Of[item](), pm)
	require.True(t, ok)
	assert.Same(t, ser, s)

	d, ok := m.ResolveDeserializer(typeinfo.Of[item](), pm)
	require.True(t, ok)
	assert.Same(t, de, d)

	_, ok = m.ResolveDeserializer(typeinfo.Of[otherItem](), pm)
	assert.False(t, ok)
}

func TestMatcher_TypeWrapperSuppressesAdapters(t *testing.T) {
	m := newMatcher()
	require.NoError(t, m.Register(component.KindAdapter, itemAdapter{}))
	require.NoError(t, m.Register(component.KindSerializer, itemSerializer{}))

	pm := propertyWith(t, reflect.TypeOf(model.TypeWrapper[item]{}), "Value", nil)

	_, ok := m.ResolveAdapter(typeinfo.Of[item](), pm)
	assert.False(t, ok)

	_, ok = m.ResolveSerializer(typeinfo.Of[item](), pm)
	assert.True(t, ok, "only adapters are suppressed")

	_, ok = m.ResolveAdapter(typeinfo.Of[item](), nil)
	assert.True(t, ok)

	type holder struct {
		model.TypeWrapper[string]
		Item item
	}
	embedded := propertyWith(t, reflect.TypeOf(holder{}), "Item", nil)
	_, ok = m.ResolveAdapter(typeinfo.Of[item](), embedded)
	assert.True(t, ok, "a struct embedding a TypeWrapper keeps its adapters")
}

func TestMatcher_DateFormatter(t *testing.T) {
	type holder struct{ At string }

	m := newMatcher()
	fallback := &model.DateFormatter{Layout: "2006", Locale: "en"}
	own := &model.DateFormatter{Layout: "02.01.2006", Locale: "de"}

	plain := propertyWith(t, reflect.TypeOf(holder{}), "At", nil)
	custom := propertyWith(t, reflect.TypeOf(holder{}), "At", model.NewCustomizationBuilder().DateFormatter(own).BuildProperty())

	assert.Same(t, fallback, m.DateFormatter(nil, fallback))
	assert.Same(t, fallback, m.DateFormatter(plain, fallback))
	assert.Same(t, own, m.DateFormatter(custom, fallback))
}
