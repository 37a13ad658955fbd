package model

import (
	"reflect"
	"slices"

	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/bind/errors"
)

// BindingModel is anything carrying a customization that may declare component bindings.
// *PropertyModel and *ClassModel implement it.
type BindingModel interface {
	BindingCustomization() *Customization
}

// ClassModel describes one level of a type hierarchy: the type, its customization,
// the properties declared at this level and the model of its parent.
// A ClassModel is immutable once constructed.
type ClassModel struct {
	rt            reflect.Type
	customization *ClassCustomization
	parent        *ClassModel
	properties    []*PropertyModel
	byName        map[string]*PropertyModel
	chain         []*ClassModel
}

// ParseFunc produces the properties of a class level. It receives the class model being
// built so that properties can reference their owner.
type ParseFunc func(cm *ClassModel) ([]*PropertyModel, error)

// NewClassModel builds the model of rt. parent is nil when rt has no parent level.
// parse may be nil for a class without properties.
func NewClassModel(rt reflect.Type, customization *ClassCustomization, parent *ClassModel, parse ParseFunc) (*ClassModel, error) {
	if rt == nil {
		return nil, errors.ErrNilType
	}
	if customization == nil {
		customization = &ClassCustomization{}
	}

	cm := &ClassModel{
		rt:            rt,
		customization: customization,
		parent:        parent,
	}

	if parse != nil {
		props, err := parse(cm)
		if err != nil {
			return nil, err
		}
		cm.properties = props
	}

	cm.byName = make(map[string]*PropertyModel, len(cm.properties))
	for _, p := range cm.properties {
		if _, exists := cm.byName[p.Name()]; exists {
			return nil, errorc.With(
				errors.ErrDuplicatePropertyName,
				errorc.String(errors.ErrorFieldTypeName, rt.String()),
				errorc.String(errors.ErrorFieldPropertyName, p.Name()),
			)
		}
		cm.byName[p.Name()] = p
	}

	cm.chain = []*ClassModel{cm}
	if parent != nil {
		cm.chain = append(cm.chain, parent.chain...)
	}

	return cm, nil
}

func (c *ClassModel) Type() reflect.Type { return c.rt }

func (c *ClassModel) Customization() *ClassCustomization { return c.customization }

// BindingCustomization exposes the class-level component bindings.
func (c *ClassModel) BindingCustomization() *Customization {
	if c == nil {
		return nil
	}
	return &c.customization.Customization
}

// Parent returns nil for the topmost level.
func (c *ClassModel) Parent() *ClassModel { return c.parent }

// Properties returns the properties declared at this level, in order.
func (c *ClassModel) Properties() []*PropertyModel {
	return slices.Clone(c.properties)
}

// Property looks up a property declared at this level only.
func (c *ClassModel) Property(name string) (*PropertyModel, bool) {
	p, ok := c.byName[name]
	return p, ok
}

// FindProperty looks up a property at this level, then in the parent levels.
func (c *ClassModel) FindProperty(name string) (*PropertyModel, bool) {
	for _, m := range c.chain {
		if p, ok := m.byName[name]; ok {
			return p, true
		}
	}
	return nil, false
}

// AllProperties returns the properties of the whole chain, topmost level first.
// A property keeps the position of the first level declaring its name
// and the model of the most specific level declaring it.
func (c *ClassModel) AllProperties() []*PropertyModel {
	var (
		out []*PropertyModel
		pos = make(map[string]int)
	)
	for i := len(c.chain) - 1; i >= 0; i-- {
		for _, p := range c.chain[i].properties {
			if at, ok := pos[p.Name()]; ok {
				out[at] = p
				continue
			}
			pos[p.Name()] = len(out)
			out = append(out, p)
		}
	}
	return out
}

// Chain returns this model followed by its parents, most specific first.
func (c *ClassModel) Chain() []*ClassModel {
	return slices.Clone(c.chain)
}

func (c *ClassModel) String() string {
	return c.rt.String()
}
