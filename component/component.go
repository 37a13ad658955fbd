package component

import "reflect"

// Writer receives serialized output. It is implemented by the marshalling layer.
type Writer interface {
	Write(value any) error
}

// Reader supplies input to deserializers. It is implemented by the unmarshalling layer.
type Reader interface {
	Read() (any, error)
}

// Serializer writes values of type T.
type Serializer[T any] interface {
	Serialize(value T, w Writer) error
}

// Deserializer reads values of type T. rt is the runtime type requested by the caller.
type Deserializer[T any] interface {
	Deserialize(r Reader, rt reflect.Type) (T, error)
}

// Adapter converts Original values into Adapted values before serialization and back after
// deserialization.
type Adapter[Original, Adapted any] interface {
	AdaptTo(value Original) (Adapted, error)
	AdaptFrom(value Adapted) (Original, error)
}

// SerializerFunc adapts a function to Serializer.
type SerializerFunc[T any] func(value T, w Writer) error

func (f SerializerFunc[T]) Serialize(value T, w Writer) error { return f(value, w) }

// DeserializerFunc adapts a function to Deserializer.
type DeserializerFunc[T any] func(r Reader, rt reflect.Type) (T, error)

func (f DeserializerFunc[T]) Deserialize(r Reader, rt reflect.Type) (T, error) { return f(r, rt) }

type adapterFuncs[O, A any] struct {
	to   func(O) (A, error)
	from func(A) (O, error)
}

func (a adapterFuncs[O, A]) AdaptTo(value O) (A, error)   { return a.to(value) }
func (a adapterFuncs[O, A]) AdaptFrom(value A) (O, error) { return a.from(value) }

// NewAdapter builds an Adapter from a pair of conversion functions.
func NewAdapter[O, A any](to func(O) (A, error), from func(A) (O, error)) Adapter[O, A] {
	return adapterFuncs[O, A]{to: to, from: from}
}

// ContainerSerializerProvider supplies serializers for container-like values of one type.
// Providers are memoized per type by the class model cache.
type ContainerSerializerProvider interface {
	Provide(runtimeType reflect.Type) any
}
