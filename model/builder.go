package model

import (
	"slices"

	"github.com/ygrebnov/bind/component"
)

// CustomizationBuilder accumulates customization values and builds immutable customizations.
// Values not set explicitly can be taken from a parent customization with Inherit.
type CustomizationBuilder struct {
	nillable        *bool
	adapter         *component.AdapterBinding
	serializer      *component.SerializerBinding
	deserializer    *component.DeserializerBinding
	dateFormatter   *DateFormatter
	numberFormatter *NumberFormatter

	creator       *Creator
	propertyOrder []string

	readName  string
	writeName string
	transient bool
	readOnly  bool
	writeOnly bool
}

func NewCustomizationBuilder() *CustomizationBuilder {
	return &CustomizationBuilder{}
}

func (b *CustomizationBuilder) Nillable(v bool) *CustomizationBuilder {
	b.nillable = &v
	return b
}

func (b *CustomizationBuilder) Adapter(a *component.AdapterBinding) *CustomizationBuilder {
	b.adapter = a
	return b
}

func (b *CustomizationBuilder) Serializer(s *component.SerializerBinding) *CustomizationBuilder {
	b.serializer = s
	return b
}

func (b *CustomizationBuilder) Deserializer(d *component.DeserializerBinding) *CustomizationBuilder {
	b.deserializer = d
	return b
}

func (b *CustomizationBuilder) DateFormatter(f *DateFormatter) *CustomizationBuilder {
	b.dateFormatter = f
	return b
}

func (b *CustomizationBuilder) NumberFormatter(f *NumberFormatter) *CustomizationBuilder {
	b.numberFormatter = f
	return b
}

func (b *CustomizationBuilder) Creator(c *Creator) *CustomizationBuilder {
	b.creator = c
	return b
}

func (b *CustomizationBuilder) PropertyOrder(names ...string) *CustomizationBuilder {
	b.propertyOrder = slices.Clone(names)
	return b
}

// Name sets both the read and the write name.
func (b *CustomizationBuilder) Name(name string) *CustomizationBuilder {
	b.readName, b.writeName = name, name
	return b
}

func (b *CustomizationBuilder) ReadName(name string) *CustomizationBuilder {
	b.readName = name
	return b
}

func (b *CustomizationBuilder) WriteName(name string) *CustomizationBuilder {
	b.writeName = name
	return b
}

func (b *CustomizationBuilder) Transient(v bool) *CustomizationBuilder {
	b.transient = v
	return b
}

func (b *CustomizationBuilder) ReadOnly(v bool) *CustomizationBuilder {
	b.readOnly = v
	return b
}

func (b *CustomizationBuilder) WriteOnly(v bool) *CustomizationBuilder {
	b.writeOnly = v
	return b
}

// Inherit fills every shared value that was not set on b from parent.
// Component bindings are not inherited.
func (b *CustomizationBuilder) Inherit(parent *Customization) *CustomizationBuilder {
	if parent == nil {
		return b
	}
	if b.nillable == nil {
		v := parent.nillable
		b.nillable = &v
	}
	if b.dateFormatter == nil {
		b.dateFormatter = parent.dateFormatter
	}
	if b.numberFormatter == nil {
		b.numberFormatter = parent.numberFormatter
	}
	return b
}

func (b *CustomizationBuilder) shared() Customization {
	c := Customization{
		adapter:         b.adapter,
		serializer:      b.serializer,
		deserializer:    b.deserializer,
		dateFormatter:   b.dateFormatter,
		numberFormatter: b.numberFormatter,
	}
	if b.nillable != nil {
		c.nillable = *b.nillable
	}
	return c
}

func (b *CustomizationBuilder) BuildClass() *ClassCustomization {
	return &ClassCustomization{
		Customization: b.shared(),
		creator:       b.creator,
		propertyOrder: slices.Clone(b.propertyOrder),
	}
}

func (b *CustomizationBuilder) BuildProperty() *PropertyCustomization {
	return &PropertyCustomization{
		Customization: b.shared(),
		readName:      b.readName,
		writeName:     b.writeName,
		transient:     b.transient,
		readOnly:      b.readOnly,
		writeOnly:     b.writeOnly,
	}
}
