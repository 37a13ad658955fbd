package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ygrebnov/bind/component"
	"github.com/ygrebnov/bind/typeinfo"
)

type item struct{}

type first struct{}

type second struct{}

var containerRaw = typeinfo.NewRaw("Container")

func TestStore_Register_FirstWriteWins(t *testing.T) {
	s := New(nil)
	bt := typeinfo.Of[item]()

	a := component.NewSerializerBinding(bt, first{})
	b := component.NewSerializerBinding(bt, second{})

	require.True(t, s.Register(a))
	require.False(t, s.Register(b), "second registration for the same slot must be ignored")

	g, ok := s.Group(bt)
	require.True(t, ok)
	assert.Same(t, a, g.Serializer())
	assert.Nil(t, g.Deserializer())
	assert.Nil(t, g.Adapter())
}

func TestStore_Register_SlotsAreIndependent(t *testing.T) {
	s := New(nil)
	bt := typeinfo.Of[item]()

	ser := component.NewSerializerBinding(bt, first{})
	de := component.NewDeserializerBinding(bt, first{})
	ad := component.NewAdapterBinding(bt, typeinfo.Of[string](), first{})

	require.True(t, s.Register(ser))
	require.True(t, s.Register(de))
	require.True(t, s.Register(ad))

	g, ok := s.Group(bt)
	require.True(t, ok)
	assert.Same(t, ser, g.Serializer())
	assert.Same(t, de, g.Deserializer())
	assert.Same(t, ad, g.Adapter())
	assert.Equal(t, 1, s.Len())
}

func TestStore_GenericFlag(t *testing.T) {
	s := New(nil)
	require.False(t, s.HasGenericBindings())

	s.Register(component.NewSerializerBinding(typeinfo.Of[item](), first{}))
	assert.False(t, s.HasGenericBindings(), "simple binding types do not set the flag")

	param := typeinfo.Param(containerRaw, typeinfo.Of[item]())
	require.True(t, s.Register(component.NewAdapterBinding(param, typeinfo.Of[string](), first{})))
	assert.True(t, s.HasGenericBindings())

	// Ignored registrations do not matter; the flag is sticky anyway.
	s.Register(component.NewAdapterBinding(param, typeinfo.Of[string](), second{}))
	assert.True(t, s.HasGenericBindings())
}

func TestStore_Group_Exact(t *testing.T) {
	s := New(nil)
	param := typeinfo.Param(containerRaw, typeinfo.Of[item]())
	s.Register(component.NewSerializerBinding(param, first{}))

	_, ok := s.Group(typeinfo.Param(containerRaw, typeinfo.Of[item]()))
	assert.True(t, ok, "structurally equal descriptor must find the group")

	_, ok = s.Group(typeinfo.Param(containerRaw, typeinfo.Of[string]()))
	assert.False(t, ok)

	_, ok = s.Group(nil)
	assert.False(t, ok)
}

func TestStore_Groups(t *testing.T) {
	s := New(nil)
	s.Register(component.NewSerializerBinding(typeinfo.Of[item](), first{}))
	s.Register(component.NewSerializerBinding(typeinfo.Of[first](), first{}))
	s.Register(component.NewSerializerBinding(typeinfo.Of[second](), first{}))

	seen := 0
	for g := range s.Groups() {
		require.NotNil(t, g.Serializer())
		seen++
	}
	assert.Equal(t, 3, seen)

	stopped := 0
	for range s.Groups() {
		stopped++
		break
	}
	assert.Equal(t, 1, stopped)
}

func TestStore_Register_Concurrent(t *testing.T) {
	s := New(nil)
	bt := typeinfo.Of[item]()

	const n = 32
	bindings := make([]*component.SerializerBinding, n)
	results := make([]bool, n)
	for i := range bindings {
		bindings[i] = component.NewSerializerBinding(bt, first{})
	}

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = s.Register(bindings[i])
		}(i)
	}
	wg.Wait()

	winners := 0
	for i, ok := range results {
		if ok {
			winners++
			g, _ := s.Group(bt)
			assert.Same(t, bindings[i], g.Serializer())
		}
	}
	assert.Equal(t, 1, winners)
	assert.Equal(t, 1, s.Len())
}

func TestStore_Register_Rejects(t *testing.T) {
	s := New(nil)
	assert.False(t, s.Register(nil))
	assert.False(t, s.Register(component.NewSerializerBinding(nil, first{})))
	assert.Equal(t, 0, s.Len())
}
