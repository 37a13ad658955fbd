package model

import (
	"reflect"
	"slices"

	"github.com/ygrebnov/bind/component"
)

// DateFormatter describes how dates are rendered: a time layout and a locale.
type DateFormatter struct {
	Layout string
	Locale string
}

// NumberFormatter describes how numbers are rendered.
type NumberFormatter struct {
	Format string
	Locale string
}

// Creator is a user-declared constructor used instead of zero-value allocation.
// Params lists the property names bound to Func parameters, in order.
type Creator struct {
	Func   reflect.Value
	Params []string
}

// NewCreator wraps fn, which must be a func returning the class type (optionally with an error).
func NewCreator(fn any, params ...string) *Creator {
	return &Creator{Func: reflect.ValueOf(fn), Params: slices.Clone(params)}
}

// Customization is the part of a customization shared by classes and properties.
// Values are immutable once built.
type Customization struct {
	nillable        bool
	adapter         *component.AdapterBinding
	serializer      *component.SerializerBinding
	deserializer    *component.DeserializerBinding
	dateFormatter   *DateFormatter
	numberFormatter *NumberFormatter
}

func (c *Customization) Nillable() bool {
	return c != nil && c.nillable
}

func (c *Customization) AdapterBinding() *component.AdapterBinding {
	if c == nil {
		return nil
	}
	return c.adapter
}

func (c *Customization) SerializerBinding() *component.SerializerBinding {
	if c == nil {
		return nil
	}
	return c.serializer
}

func (c *Customization) DeserializerBinding() *component.DeserializerBinding {
	if c == nil {
		return nil
	}
	return c.deserializer
}

// DateFormatter returns nil when no date format was declared.
func (c *Customization) DateFormatter() *DateFormatter {
	if c == nil {
		return nil
	}
	return c.dateFormatter
}

// NumberFormatter returns nil when no number format was declared.
func (c *Customization) NumberFormatter() *NumberFormatter {
	if c == nil {
		return nil
	}
	return c.numberFormatter
}

// ClassCustomization is the customization of a class level.
type ClassCustomization struct {
	Customization
	creator       *Creator
	propertyOrder []string
}

func (c *ClassCustomization) Creator() *Creator {
	if c == nil {
		return nil
	}
	return c.creator
}

// PropertyOrder returns the explicitly declared property order, if any.
func (c *ClassCustomization) PropertyOrder() []string {
	if c == nil {
		return nil
	}
	return slices.Clone(c.propertyOrder)
}

// PropertyCustomization is the customization of a single property.
type PropertyCustomization struct {
	Customization
	readName  string
	writeName string
	transient bool
	readOnly  bool
	writeOnly bool
}

// ReadName is the name used when reading the property from input; empty means default.
func (c *PropertyCustomization) ReadName() string {
	if c == nil {
		return ""
	}
	return c.readName
}

// WriteName is the name used when writing the property to output; empty means default.
func (c *PropertyCustomization) WriteName() string {
	if c == nil {
		return ""
	}
	return c.writeName
}

func (c *PropertyCustomization) Transient() bool { return c != nil && c.transient }

func (c *PropertyCustomization) ReadOnly() bool { return c != nil && c.readOnly }

func (c *PropertyCustomization) WriteOnly() bool { return c != nil && c.writeOnly }
