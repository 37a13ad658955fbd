package model

import (
	"reflect"
	"slices"

	"github.com/ygrebnov/bind/typeinfo"
)

// PropertyModel describes one bindable member of a class level.
type PropertyModel struct {
	name          string
	field         reflect.StructField
	descriptor    typeinfo.Type
	classModel    *ClassModel
	customization *PropertyCustomization
}

// NewPropertyModel creates the model of field, declared on cm under the logical name.
func NewPropertyModel(cm *ClassModel, field reflect.StructField, name string, customization *PropertyCustomization) *PropertyModel {
	if customization == nil {
		customization = &PropertyCustomization{}
	}
	field.Index = slices.Clone(field.Index)
	return &PropertyModel{
		name:          name,
		field:         field,
		descriptor:    typeinfo.FromReflect(field.Type),
		classModel:    cm,
		customization: customization,
	}
}

// Name is the logical property name.
func (p *PropertyModel) Name() string { return p.name }

// ReadName is the name the property is read under.
func (p *PropertyModel) ReadName() string {
	if n := p.customization.ReadName(); n != "" {
		return n
	}
	return p.name
}

// WriteName is the name the property is written under.
func (p *PropertyModel) WriteName() string {
	if n := p.customization.WriteName(); n != "" {
		return n
	}
	return p.name
}

func (p *PropertyModel) FieldName() string { return p.field.Name }

func (p *PropertyModel) FieldIndex() []int { return slices.Clone(p.field.Index) }

func (p *PropertyModel) Type() reflect.Type { return p.field.Type }

// Descriptor is the declared type descriptor of the property.
func (p *PropertyModel) Descriptor() typeinfo.Type { return p.descriptor }

// Readable reports whether the property value can be read for writing output.
func (p *PropertyModel) Readable() bool {
	return p.field.IsExported() && !p.customization.Transient() && !p.customization.WriteOnly()
}

// Writable reports whether the property value can be set from input.
func (p *PropertyModel) Writable() bool {
	return p.field.IsExported() && !p.customization.Transient() && !p.customization.ReadOnly()
}

func (p *PropertyModel) ClassModel() *ClassModel { return p.classModel }

func (p *PropertyModel) Customization() *PropertyCustomization { return p.customization }

func (p *PropertyModel) BindingCustomization() *Customization {
	if p == nil {
		return nil
	}
	return &p.customization.Customization
}

// Value returns the property value of v, which must be a value of the owning class type.
func (p *PropertyModel) Value(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	return v.FieldByIndex(p.field.Index)
}
