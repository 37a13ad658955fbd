package store

import (
	"iter"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/ygrebnov/bind/component"
	"github.com/ygrebnov/bind/typeinfo"
)

// Group holds at most one adapter, one serializer and one deserializer for a binding type.
// A filled slot is never overwritten.
type Group struct {
	bindingType  typeinfo.Type
	adapter      atomic.Pointer[component.AdapterBinding]
	serializer   atomic.Pointer[component.SerializerBinding]
	deserializer atomic.Pointer[component.DeserializerBinding]
}

func (g *Group) BindingType() typeinfo.Type { return g.bindingType }

func (g *Group) Adapter() *component.AdapterBinding { return g.adapter.Load() }

func (g *Group) Serializer() *component.SerializerBinding { return g.serializer.Load() }

func (g *Group) Deserializer() *component.DeserializerBinding { return g.deserializer.Load() }

// Store maps binding types to component groups.
type Store struct {
	groups  sync.Map // map[string]*Group, keyed by typeinfo.Key
	count   atomic.Int64
	generic atomic.Bool
	logger  *zap.Logger
}

func New(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{logger: logger}
}

// group returns the group for t, creating an empty one if needed.
func (s *Store) group(t typeinfo.Type) *Group {
	key := typeinfo.Key(t)
	if g, ok := s.groups.Load(key); ok {
		return g.(*Group)
	}
	g, loaded := s.groups.LoadOrStore(key, &Group{bindingType: t})
	if !loaded {
		s.count.Add(1)
	}
	return g.(*Group)
}

// Register puts b into the slot of its kind under its binding type.
// It reports false, leaving the slot untouched, when the slot is already filled.
func (s *Store) Register(b component.Binding) bool {
	if b == nil || b.BindingType() == nil {
		return false
	}
	g := s.group(b.BindingType())

	var stored bool
	switch v := b.(type) {
	case *component.SerializerBinding:
		stored = g.serializer.CompareAndSwap(nil, v)
	case *component.DeserializerBinding:
		stored = g.deserializer.CompareAndSwap(nil, v)
	case *component.AdapterBinding:
		stored = g.adapter.CompareAndSwap(nil, v)
	default:
		return false
	}

	if !stored {
		s.logger.Debug("component slot already filled, registration ignored",
			zap.Stringer("kind", b.Kind()),
			zap.Stringer("binding_type", b.BindingType()),
		)
		return false
	}
	if typeinfo.IsParameterized(b.BindingType()) && s.generic.CompareAndSwap(false, true) {
		s.logger.Debug("generic component bindings present", zap.Stringer("binding_type", b.BindingType()))
	}
	s.logger.Debug("component registered",
		zap.Stringer("kind", b.Kind()),
		zap.Stringer("binding_type", b.BindingType()),
	)
	return true
}

// Group returns the group registered under exactly t.
func (s *Store) Group(t typeinfo.Type) (*Group, bool) {
	if t == nil {
		return nil, false
	}
	g, ok := s.groups.Load(typeinfo.Key(t))
	if !ok {
		return nil, false
	}
	return g.(*Group), true
}

// Groups iterates over the live set of groups in unspecified order.
func (s *Store) Groups() iter.Seq[*Group] {
	return func(yield func(*Group) bool) {
		s.groups.Range(func(_, v any) bool {
			return yield(v.(*Group))
		})
	}
}

// HasGenericBindings reports whether a parameterized binding type ever filled a slot.
// Once set, it stays set.
func (s *Store) HasGenericBindings() bool {
	return s.generic.Load()
}

// Len returns the number of groups.
func (s *Store) Len() int {
	return int(s.count.Load())
}
