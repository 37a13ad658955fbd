package bind

import (
	"go.uber.org/zap"

	"github.com/ygrebnov/bind/component"
	"github.com/ygrebnov/bind/config"
	"github.com/ygrebnov/bind/internal/cache"
	"github.com/ygrebnov/bind/internal/matcher"
	"github.com/ygrebnov/bind/internal/store"
	"github.com/ygrebnov/bind/introspect"
	"github.com/ygrebnov/bind/model"
)

// New creates a binding context. User components are registered before New returns:
// serializers first, then deserializers, then adapters, each in the given order.
// Every component that cannot be registered is reported in the returned *InitError.
func New(opts ...Option) (*Context, error) {
	c := &Context{
		cfg:        config.Default(),
		components: make(map[string]any),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.cfg = c.cfg.WithDefaults()
	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.factory == nil {
		c.factory = component.NewFactory()
	}

	c.store = store.New(c.logger.Named("store"))
	c.matcher = matcher.New(c.store, c.factory, c.logger.Named("matcher"))

	ie := &InitError{}
	c.register(ie, component.KindSerializer, c.serializers)
	c.register(ie, component.KindDeserializer, c.deserializers)
	c.register(ie, component.KindAdapter, c.adapters)
	if !ie.Empty() {
		return nil, ie
	}

	if c.introspector == nil || c.parser == nil {
		in := introspect.NewIntrospector(c.matcher, c.components, c.cfg)
		if c.introspector == nil {
			c.introspector = in
		}
		if c.parser == nil {
			c.parser = introspect.NewParser(in, c.cfg)
		}
	}

	c.models = cache.New(c.buildClassModel, c.logger.Named("cache"))
	c.dateFormatter = &model.DateFormatter{Layout: c.cfg.DateFormat, Locale: c.cfg.Locale}

	c.logger.Debug("binding context initialized",
		zap.Int("component_groups", c.store.Len()),
		zap.Bool("generic_components", c.store.HasGenericBindings()),
	)
	return c, nil
}

func (c *Context) register(ie *InitError, kind component.Kind, components []any) {
	for _, comp := range components {
		if err := c.matcher.Register(kind, comp); err != nil {
			ce := ComponentError{Kind: kind, Type: componentTypeName(comp), Err: err}
			c.logger.Error("component registration failed",
				zap.Stringer("kind", kind),
				zap.String("type", ce.Type),
				zap.Error(err),
			)
			ie.Add(ce)
		}
	}
}

// Option configures a Context at construction time.
type Option func(*Context)

// WithConfig replaces the default configuration. Unset fields take their default values.
func WithConfig(cfg config.Config) Option {
	return func(c *Context) { c.cfg = cfg }
}

// WithSerializers registers serializers. Each entry is a component instance,
// or a reflect.Type of a component created through the factory.
func WithSerializers(serializers ...any) Option {
	return func(c *Context) { c.serializers = append(c.serializers, serializers...) }
}

// WithDeserializers registers deserializers. Entries are as for WithSerializers.
func WithDeserializers(deserializers ...any) Option {
	return func(c *Context) { c.deserializers = append(c.deserializers, deserializers...) }
}

// WithAdapters registers adapters. Entries are as for WithSerializers.
func WithAdapters(adapters ...any) Option {
	return func(c *Context) { c.adapters = append(c.adapters, adapters...) }
}

// WithNamedComponent makes a component available to struct tags under id,
// e.g. `bind:"adapter(id)"`. Named components are not registered for type-based lookup.
func WithNamedComponent(id string, comp any) Option {
	return func(c *Context) {
		if id == "" {
			panic("bind: WithNamedComponent: id must not be empty")
		}
		c.components[id] = comp
	}
}

// WithFactory sets the factory used to instantiate components given by type.
func WithFactory(f component.Factory) Option {
	return func(c *Context) { c.factory = f }
}

// WithLogger sets the logger. The default logger discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Context) { c.logger = l }
}

// WithIntrospector replaces the struct tag introspector.
func WithIntrospector(in AnnotationIntrospector) Option {
	return func(c *Context) { c.introspector = in }
}

// WithPropertyParser replaces the property parser.
func WithPropertyParser(p PropertyParser) Option {
	return func(c *Context) { c.parser = p }
}
