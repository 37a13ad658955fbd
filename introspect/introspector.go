package introspect

import (
	"reflect"
	"strconv"

	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/bind/component"
	"github.com/ygrebnov/bind/config"
	"github.com/ygrebnov/bind/constants"
	"github.com/ygrebnov/bind/errors"
	"github.com/ygrebnov/bind/model"
	"github.com/ygrebnov/bind/typeinfo"
)

// BindingIntrospector turns component types or instances into bindings.
type BindingIntrospector interface {
	IntrospectSerializer(rt reflect.Type, instance any) (*component.SerializerBinding, error)
	IntrospectDeserializer(rt reflect.Type, instance any) (*component.DeserializerBinding, error)
	IntrospectAdapter(rt reflect.Type, instance any) (*component.AdapterBinding, error)
}

// CreatorDeclarer is implemented by types constructed through a user function.
type CreatorDeclarer interface {
	BindCreator() *model.Creator
}

var creatorDeclarerType = reflect.TypeOf((*CreatorDeclarer)(nil)).Elem()

// arity bounds of each directive; max < 0 means unbounded.
type arity struct{ min, max int }

var (
	sharedDirectives = map[string]arity{
		constants.DirectiveNillable:     {0, 1},
		constants.DirectiveDate:         {1, 2},
		constants.DirectiveNumber:       {1, 2},
		constants.DirectiveAdapter:      {1, 1},
		constants.DirectiveSerializer:   {1, 1},
		constants.DirectiveDeserializer: {1, 1},
	}
	classDirectives = map[string]arity{
		constants.DirectiveOrder: {1, -1},
	}
	propertyDirectives = map[string]arity{
		constants.DirectiveName:      {1, 1},
		constants.DirectiveRead:      {1, 1},
		constants.DirectiveWrite:     {1, 1},
		constants.DirectiveTransient: {0, 0},
		constants.DirectiveSkip:      {0, 0},
		constants.DirectiveReadOnly:  {0, 0},
		constants.DirectiveWriteOnly: {0, 0},
	}
)

// Introspector reads bind struct tags and turns them into customizations.
// Component ids used in tags are resolved through a name table: a reflect.Type entry
// is a component type reference, any other entry is a component instance.
type Introspector struct {
	tagName    string
	tags       tagCache
	bindings   BindingIntrospector
	components map[string]any
	defaults   *model.Customization
	locale     string
}

func NewIntrospector(bindings BindingIntrospector, components map[string]any, cfg config.Config) *Introspector {
	table := make(map[string]any, len(components))
	for id, c := range components {
		table[id] = c
	}
	return &Introspector{
		tagName:    constants.TagName,
		bindings:   bindings,
		components: table,
		defaults:   &model.NewCustomizationBuilder().Nillable(cfg.Nillable).BuildClass().Customization,
		locale:     cfg.Locale,
	}
}

// CollectAnnotations parses the tags of the fields declared at the level of rt.
// Pointer types are dereferenced; a non-struct type yields an empty element.
func (in *Introspector) CollectAnnotations(rt reflect.Type) (*Element, error) {
	if rt == nil {
		return nil, errors.ErrNilType
	}
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	el := &Element{Type: rt}
	if rt.Kind() != reflect.Struct {
		return el, nil
	}

	_, hasParent := typeinfo.Superclass(rt)
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		ds := in.tags.directives(rt, i, in.tagName)

		if f.Name == "_" {
			if err := in.check(rt, f, ds, classDirectives); err != nil {
				return nil, err
			}
			el.Class = append(el.Class, ds...)
			continue
		}
		if i == 0 && hasParent {
			continue
		}
		if err := in.check(rt, f, ds, propertyDirectives); err != nil {
			return nil, err
		}
		el.Fields = append(el.Fields, FieldElement{Field: f, Directives: ds})
	}
	return el, nil
}

func (in *Introspector) check(rt reflect.Type, f reflect.StructField, ds []Directive, level map[string]arity) error {
	for _, d := range ds {
		a, ok := sharedDirectives[d.Name]
		if !ok {
			a, ok = level[d.Name]
		}
		if !ok {
			return in.tagError(rt, f, d, "unknown directive")
		}
		if len(d.Params) < a.min || (a.max >= 0 && len(d.Params) > a.max) {
			return in.tagError(rt, f, d, "wrong number of parameters")
		}
	}
	return nil
}

func (in *Introspector) tagError(rt reflect.Type, f reflect.StructField, d Directive, cause string) error {
	return errorc.With(
		errors.ErrInvalidTag,
		errorc.String(errors.ErrorFieldTypeName, rt.String()),
		errorc.String(errors.ErrorFieldPropertyName, f.Name),
		errorc.String(errors.ErrorFieldDirective, d.Name),
		errorc.String(errors.ErrorFieldTag, f.Tag.Get(in.tagName)),
		errorc.String(errors.ErrorFieldCause, cause),
	)
}

// IntrospectCustomization builds the class customization of el. Values not declared on el
// come from parent, or from the context defaults for a topmost level.
func (in *Introspector) IntrospectCustomization(el *Element, parent *model.ClassCustomization) (*model.ClassCustomization, error) {
	b := model.NewCustomizationBuilder()
	blank := reflect.StructField{Name: "_"}
	if err := in.applyShared(b, el.Type, blank, el.Class); err != nil {
		return nil, err
	}
	if d, ok := lookup(el.Class, constants.DirectiveOrder); ok {
		b.PropertyOrder(d.Params...)
	}
	if c := creatorOf(el.Type); c != nil {
		b.Creator(c)
	}

	if parent != nil {
		b.Inherit(&parent.Customization)
	} else {
		b.Inherit(in.defaults)
	}
	return b.BuildClass(), nil
}

// IntrospectPropertyCustomization builds the customization of one field of cm.
// Values not declared on the field come from the class customization.
func (in *Introspector) IntrospectPropertyCustomization(cm *model.ClassModel, fe FieldElement) (*model.PropertyCustomization, error) {
	b := model.NewCustomizationBuilder()
	if err := in.applyShared(b, cm.Type(), fe.Field, fe.Directives); err != nil {
		return nil, err
	}
	for _, d := range fe.Directives {
		switch d.Name {
		case constants.DirectiveName:
			b.Name(d.Param(0))
		case constants.DirectiveRead:
			b.ReadName(d.Param(0))
		case constants.DirectiveWrite:
			b.WriteName(d.Param(0))
		case constants.DirectiveTransient, constants.DirectiveSkip:
			b.Transient(true)
		case constants.DirectiveReadOnly:
			b.ReadOnly(true)
		case constants.DirectiveWriteOnly:
			b.WriteOnly(true)
		}
	}
	b.Inherit(cm.BindingCustomization())
	return b.BuildProperty(), nil
}

func (in *Introspector) applyShared(b *model.CustomizationBuilder, rt reflect.Type, f reflect.StructField, ds []Directive) error {
	for _, d := range ds {
		switch d.Name {
		case constants.DirectiveNillable:
			v := true
			if p := d.Param(0); p != "" {
				parsed, err := strconv.ParseBool(p)
				if err != nil {
					return in.tagError(rt, f, d, "nillable takes true or false")
				}
				v = parsed
			}
			b.Nillable(v)
		case constants.DirectiveDate:
			b.DateFormatter(&model.DateFormatter{Layout: d.Param(0), Locale: in.localeOf(d)})
		case constants.DirectiveNumber:
			b.NumberFormatter(&model.NumberFormatter{Format: d.Param(0), Locale: in.localeOf(d)})
		case constants.DirectiveAdapter:
			ct, inst, err := in.component(d)
			if err != nil {
				return err
			}
			ab, err := in.bindings.IntrospectAdapter(ct, inst)
			if err != nil {
				return err
			}
			b.Adapter(ab)
		case constants.DirectiveSerializer:
			ct, inst, err := in.component(d)
			if err != nil {
				return err
			}
			sb, err := in.bindings.IntrospectSerializer(ct, inst)
			if err != nil {
				return err
			}
			b.Serializer(sb)
		case constants.DirectiveDeserializer:
			ct, inst, err := in.component(d)
			if err != nil {
				return err
			}
			db, err := in.bindings.IntrospectDeserializer(ct, inst)
			if err != nil {
				return err
			}
			b.Deserializer(db)
		}
	}
	return nil
}

func (in *Introspector) localeOf(d Directive) string {
	if l := d.Param(1); l != "" {
		return l
	}
	return in.locale
}

func (in *Introspector) component(d Directive) (reflect.Type, any, error) {
	id := d.Param(0)
	c, ok := in.components[id]
	if !ok {
		return nil, nil, errorc.With(
			errors.ErrUnknownComponent,
			errorc.String(errors.ErrorFieldComponentID, id),
			errorc.String(errors.ErrorFieldDirective, d.Name),
		)
	}
	switch v := c.(type) {
	case reflect.Type:
		return v, nil, nil
	case nil:
		return nil, nil, errorc.With(errors.ErrNilComponent, errorc.String(errors.ErrorFieldComponentID, id))
	default:
		return reflect.TypeOf(c), c, nil
	}
}

func creatorOf(rt reflect.Type) *model.Creator {
	if rt == nil || rt.Kind() == reflect.Interface {
		return nil
	}
	var d CreatorDeclarer
	switch {
	case rt.Implements(creatorDeclarerType):
		if rt.Kind() == reflect.Pointer {
			d, _ = reflect.New(rt.Elem()).Interface().(CreatorDeclarer)
		} else {
			d, _ = reflect.Zero(rt).Interface().(CreatorDeclarer)
		}
	case reflect.PointerTo(rt).Implements(creatorDeclarerType):
		d, _ = reflect.New(rt).Interface().(CreatorDeclarer)
	}
	if d == nil {
		return nil
	}
	return d.BindCreator()
}
