package component

import (
	"reflect"
	"sync"

	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/bind/errors"
)

// Factory creates component instances from type references.
type Factory interface {
	GetOrCreate(rt reflect.Type) (any, error)
}

// factory creates at most one instance per component type and keeps it for its own lifetime.
type factory struct {
	c sync.Map // map[reflect.Type]any
}

// NewFactory returns the default Factory. A pointer type yields a pointer to a new zero value,
// any other type yields its zero value.
func NewFactory() Factory {
	return &factory{}
}

func (f *factory) GetOrCreate(rt reflect.Type) (any, error) {
	if rt == nil {
		return nil, errors.ErrNilType
	}
	if v, ok := f.c.Load(rt); ok {
		return v, nil
	}
	inst, err := instantiate(rt)
	if err != nil {
		return nil, err
	}
	actual, _ := f.c.LoadOrStore(rt, inst)
	return actual, nil
}

func instantiate(rt reflect.Type) (any, error) {
	switch rt.Kind() {
	case reflect.Interface, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return nil, errorc.With(
			errors.ErrComponentInstantiation,
			errorc.String(errors.ErrorFieldComponentType, rt.String()),
		)
	case reflect.Pointer:
		return reflect.New(rt.Elem()).Interface(), nil
	}
	return reflect.Zero(rt).Interface(), nil
}
