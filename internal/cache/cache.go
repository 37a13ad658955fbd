package cache

import (
	"iter"
	"reflect"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/ygrebnov/bind/component"
	"github.com/ygrebnov/bind/errors"
	"github.com/ygrebnov/bind/model"
	"github.com/ygrebnov/bind/typeinfo"
)

// BuildFunc builds the class model of rt given the already cached model of its parent.
// parent is nil for the topmost level. It may run more than once for the same type
// and must return equivalent models each time.
type BuildFunc func(rt reflect.Type, parent *model.ClassModel) (*model.ClassModel, error)

// Cache holds the class models of one binding context, plus per-type container serializer providers.
type Cache struct {
	build     BuildFunc
	models    sync.Map // map[reflect.Type]*model.ClassModel
	providers sync.Map // map[reflect.Type]component.ContainerSerializerProvider
	count     atomic.Int64
	logger    *zap.Logger
}

func New(build BuildFunc, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{build: build, logger: logger}
}

// Get returns the cached model of rt without building it.
func (c *Cache) Get(rt reflect.Type) (*model.ClassModel, bool) {
	if rt == nil {
		return nil, false
	}
	v, ok := c.models.Load(rt)
	if !ok {
		return nil, false
	}
	return v.(*model.ClassModel), true
}

// GetOrCreate returns the model of rt, building it and every missing ancestor first.
// Ancestors are built topmost first so that each level sees its parent's model.
// When two callers race on a level, the first stored model wins and the other is dropped.
func (c *Cache) GetOrCreate(rt reflect.Type) (*model.ClassModel, error) {
	if rt == nil {
		return nil, errors.ErrNilType
	}
	if cm, ok := c.Get(rt); ok {
		return cm, nil
	}

	stack := append([]reflect.Type{rt}, typeinfo.Ancestors(rt)...)

	var parent *model.ClassModel
	for i := len(stack) - 1; i >= 0; i-- {
		t := stack[i]
		if cm, ok := c.Get(t); ok {
			parent = cm
			continue
		}

		built, err := c.build(t, parent)
		if err != nil {
			return nil, err
		}

		actual, loaded := c.models.LoadOrStore(t, built)
		if loaded {
			c.logger.Debug("class model built concurrently, keeping stored model", zap.Stringer("type", t))
		} else {
			c.count.Add(1)
			c.logger.Debug("class model built", zap.Stringer("type", t))
		}
		parent = actual.(*model.ClassModel)
	}

	return parent, nil
}

// Ancestors yields the cached models of rt and its ancestors, most specific first.
// It never builds; a level without a cached model yields nil.
func (c *Cache) Ancestors(rt reflect.Type) iter.Seq[*model.ClassModel] {
	return func(yield func(*model.ClassModel) bool) {
		if rt == nil {
			return
		}
		for _, t := range append([]reflect.Type{rt}, typeinfo.Ancestors(rt)...) {
			cm, _ := c.Get(t)
			if !yield(cm) {
				return
			}
		}
	}
}

// ContainerSerializerProvider returns the provider stored for rt, if any.
func (c *Cache) ContainerSerializerProvider(rt reflect.Type) (component.ContainerSerializerProvider, bool) {
	if rt == nil {
		return nil, false
	}
	v, ok := c.providers.Load(rt)
	if !ok {
		return nil, false
	}
	return v.(component.ContainerSerializerProvider), true
}

// AddContainerSerializerProvider stores p for rt unless a provider is already stored.
// It reports whether p was stored.
func (c *Cache) AddContainerSerializerProvider(rt reflect.Type, p component.ContainerSerializerProvider) bool {
	if rt == nil || p == nil {
		return false
	}
	_, loaded := c.providers.LoadOrStore(rt, p)
	return !loaded
}

// Len returns the number of cached class models.
func (c *Cache) Len() int {
	return int(c.count.Load())
}
