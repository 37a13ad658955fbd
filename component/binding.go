package component

import (
	"reflect"

	"github.com/ygrebnov/bind/typeinfo"
)

// Binding is a component together with the type it binds to.
type Binding interface {
	Kind() Kind
	BindingType() typeinfo.Type
	Component() any
}

type binding struct {
	bindingType typeinfo.Type
	component   any
}

func (b *binding) BindingType() typeinfo.Type { return b.bindingType }

func (b *binding) Component() any { return b.component }

// ComponentType returns the dynamic type of the component instance.
func (b *binding) ComponentType() reflect.Type { return reflect.TypeOf(b.component) }

// SerializerBinding binds a serializer to its binding type.
type SerializerBinding struct{ binding }

func NewSerializerBinding(bindingType typeinfo.Type, serializer any) *SerializerBinding {
	return &SerializerBinding{binding{bindingType: bindingType, component: serializer}}
}

func (*SerializerBinding) Kind() Kind { return KindSerializer }

// DeserializerBinding binds a deserializer to its binding type.
type DeserializerBinding struct{ binding }

func NewDeserializerBinding(bindingType typeinfo.Type, deserializer any) *DeserializerBinding {
	return &DeserializerBinding{binding{bindingType: bindingType, component: deserializer}}
}

func (*DeserializerBinding) Kind() Kind { return KindDeserializer }

// AdapterBinding binds an adapter to the type it adapts from, and records the type it adapts to.
type AdapterBinding struct {
	binding
	target typeinfo.Type
}

func NewAdapterBinding(from, to typeinfo.Type, adapter any) *AdapterBinding {
	return &AdapterBinding{binding: binding{bindingType: from, component: adapter}, target: to}
}

func (*AdapterBinding) Kind() Kind { return KindAdapter }

// Target is the adapted-to type.
func (b *AdapterBinding) Target() typeinfo.Type { return b.target }
