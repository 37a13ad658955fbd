package bind

import (
	"fmt"
	"iter"
	"reflect"

	"github.com/ygrebnov/errorc"
	"go.uber.org/zap"

	"github.com/ygrebnov/bind/component"
	"github.com/ygrebnov/bind/config"
	"github.com/ygrebnov/bind/errors"
	"github.com/ygrebnov/bind/internal/cache"
	"github.com/ygrebnov/bind/internal/matcher"
	"github.com/ygrebnov/bind/internal/store"
	"github.com/ygrebnov/bind/introspect"
	"github.com/ygrebnov/bind/model"
	"github.com/ygrebnov/bind/typeinfo"
)

// AnnotationIntrospector supplies the declared customization of class levels.
type AnnotationIntrospector interface {
	CollectAnnotations(rt reflect.Type) (*introspect.Element, error)
	IntrospectCustomization(el *introspect.Element, parent *model.ClassCustomization) (*model.ClassCustomization, error)
}

// PropertyParser produces the properties of one class level.
type PropertyParser interface {
	ParseProperties(cm *model.ClassModel, el *introspect.Element) ([]*model.PropertyModel, error)
}

// Context owns the registered components and the class models of one binding configuration.
// A Context is safe for concurrent use.
type Context struct {
	cfg           config.Config
	logger        *zap.Logger
	factory       component.Factory
	store         *store.Store
	matcher       *matcher.Matcher
	models        *cache.Cache
	introspector  AnnotationIntrospector
	parser        PropertyParser
	dateFormatter *model.DateFormatter

	serializers   []any
	deserializers []any
	adapters      []any
	components    map[string]any
}

// Config returns the configuration the context was created with.
func (c *Context) Config() config.Config { return c.cfg }

// GetOrCreateClassModel returns the class model of rt, building it and its ancestors on first use.
// Pointer types share the model of their element type.
func (c *Context) GetOrCreateClassModel(rt reflect.Type) (*model.ClassModel, error) {
	rt, err := normalize(rt)
	if err != nil {
		return nil, err
	}
	return c.models.GetOrCreate(rt)
}

// ClassModel returns the class model of rt if it was already built.
func (c *Context) ClassModel(rt reflect.Type) (*model.ClassModel, bool) {
	rt, err := normalize(rt)
	if err != nil {
		return nil, false
	}
	return c.models.Get(rt)
}

// ClassModels yields the cached models of rt and its ancestors, most specific first.
// Nothing is built; levels not built yet yield nil.
func (c *Context) ClassModels(rt reflect.Type) iter.Seq[*model.ClassModel] {
	rt, _ = normalize(rt)
	return c.models.Ancestors(rt)
}

// ClassModelOf is GetOrCreateClassModel for the static type T.
func ClassModelOf[T any](c *Context) (*model.ClassModel, error) {
	return c.GetOrCreateClassModel(reflect.TypeOf((*T)(nil)).Elem())
}

func normalize(rt reflect.Type) (reflect.Type, error) {
	if rt == nil {
		return nil, errors.ErrNilType
	}
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	return rt, nil
}

func (c *Context) buildClassModel(rt reflect.Type, parent *model.ClassModel) (*model.ClassModel, error) {
	el, err := c.introspector.CollectAnnotations(rt)
	if err != nil {
		return nil, buildError(rt, "collect annotations", err)
	}

	var pc *model.ClassCustomization
	if parent != nil {
		pc = parent.Customization()
	}
	cust, err := c.introspector.IntrospectCustomization(el, pc)
	if err != nil {
		return nil, buildError(rt, "introspect customization", err)
	}

	cm, err := model.NewClassModel(rt, cust, parent, func(cm *model.ClassModel) ([]*model.PropertyModel, error) {
		return c.parser.ParseProperties(cm, el)
	})
	if err != nil {
		return nil, buildError(rt, "parse properties", err)
	}
	return cm, nil
}

func buildError(rt reflect.Type, phase string, err error) error {
	return errorc.With(
		err,
		errorc.String(errors.ErrorFieldTypeName, rt.String()),
		errorc.String(errors.ErrorFieldPhase, phase),
	)
}

// ResolveSerializer returns the serializer for a value of type runtime held by bm.
// bm may be nil. See ResolveAdapter for the lookup rules.
func (c *Context) ResolveSerializer(runtime typeinfo.Type, bm model.BindingModel) (*component.SerializerBinding, bool) {
	return c.matcher.ResolveSerializer(runtime, bm)
}

// ResolveDeserializer returns the deserializer for a value of type runtime held by bm.
func (c *Context) ResolveDeserializer(runtime typeinfo.Type, bm model.BindingModel) (*component.DeserializerBinding, bool) {
	return c.matcher.ResolveDeserializer(runtime, bm)
}

// ResolveAdapter returns the adapter for a value of type runtime held by bm.
//
// An adapter declared on bm is returned when its binding type matches runtime, and nothing is
// returned when it does not. Without a declared adapter, the registered adapters are searched.
// Exact binding types always match; subtypes and implemented interfaces match only once any
// parameterized binding type has been registered in the context.
func (c *Context) ResolveAdapter(runtime typeinfo.Type, bm model.BindingModel) (*component.AdapterBinding, bool) {
	return c.matcher.ResolveAdapter(runtime, bm)
}

// DateFormatter returns the date formatter declared on bm, or the context default.
func (c *Context) DateFormatter(bm model.BindingModel) *model.DateFormatter {
	return c.matcher.DateFormatter(bm, c.dateFormatter)
}

func (c *Context) ContainerSerializerProvider(rt reflect.Type) (component.ContainerSerializerProvider, bool) {
	return c.models.ContainerSerializerProvider(rt)
}

// RegisterContainerSerializerProvider stores p for rt. A provider already stored for rt is kept.
func (c *Context) RegisterContainerSerializerProvider(rt reflect.Type, p component.ContainerSerializerProvider) bool {
	return c.models.AddContainerSerializerProvider(rt, p)
}

// HasGenericComponents reports whether any registered component binds to a parameterized type.
func (c *Context) HasGenericComponents() bool {
	return c.matcher.HasGenericBindings()
}

func componentTypeName(comp any) string {
	switch v := comp.(type) {
	case nil:
		return "<nil>"
	case reflect.Type:
		return v.String()
	default:
		return fmt.Sprintf("%T", comp)
	}
}
