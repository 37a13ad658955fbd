package model

import (
	stderrors "errors"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ygrebnov/bind/component"
	"github.com/ygrebnov/bind/errors"
	"github.com/ygrebnov/bind/typeinfo"
)

type animal struct {
	Name string
	Age  int
}

type dog struct {
	animal
	Breed string
	Age   int
}

func fieldsParser(names ...string) ParseFunc {
	return func(cm *ClassModel) ([]*PropertyModel, error) {
		var props []*PropertyModel
		for _, n := range names {
			f, ok := cm.Type().FieldByName(n)
			if !ok {
				continue
			}
			props = append(props, NewPropertyModel(cm, f, n, nil))
		}
		return props, nil
	}
}

func names(props []*PropertyModel) []string {
	out := make([]string, 0, len(props))
	for _, p := range props {
		out = append(out, p.Name()+"@"+p.ClassModel().Type().Name())
	}
	return out
}

func TestNewClassModel_Chain(t *testing.T) {
	parent, err := NewClassModel(reflect.TypeOf(animal{}), nil, nil, fieldsParser("Name", "Age"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	child, err := NewClassModel(reflect.TypeOf(dog{}), nil, parent, fieldsParser("Breed", "Age"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if child.Parent() != parent {
		t.Fatalf("parent mismatch")
	}
	chain := child.Chain()
	if len(chain) != 2 || chain[0] != child || chain[1] != parent {
		t.Fatalf("unexpected chain: %v", chain)
	}

	want := []string{"Name@animal", "Age@dog", "Breed@dog"}
	if diff := cmp.Diff(want, names(child.AllProperties())); diff != "" {
		t.Fatalf("AllProperties mismatch (-want +got):\n%s", diff)
	}

	if _, ok := child.Property("Name"); ok {
		t.Fatalf("Property must only look at the own level")
	}
	p, ok := child.FindProperty("Name")
	if !ok || p.ClassModel() != parent {
		t.Fatalf("FindProperty must reach the parent level")
	}
	p, ok = child.FindProperty("Age")
	if !ok || p.ClassModel() != child {
		t.Fatalf("FindProperty must prefer the most specific level")
	}
}

func TestNewClassModel_Errors(t *testing.T) {
	if _, err := NewClassModel(nil, nil, nil, nil); !stderrors.Is(err, errors.ErrNilType) {
		t.Fatalf("expected ErrNilType, got %v", err)
	}

	dup := func(cm *ClassModel) ([]*PropertyModel, error) {
		f, _ := cm.Type().FieldByName("Name")
		return []*PropertyModel{
			NewPropertyModel(cm, f, "name", nil),
			NewPropertyModel(cm, f, "name", nil),
		}, nil
	}
	_, err := NewClassModel(reflect.TypeOf(animal{}), nil, nil, dup)
	if !stderrors.Is(err, errors.ErrDuplicatePropertyName) {
		t.Fatalf("expected ErrDuplicatePropertyName, got %v", err)
	}

	boom := stderrors.New("boom")
	_, err = NewClassModel(reflect.TypeOf(animal{}), nil, nil, func(*ClassModel) ([]*PropertyModel, error) {
		return nil, boom
	})
	if !stderrors.Is(err, boom) {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestPropertyModel_Access(t *testing.T) {
	type sample struct {
		A string
		B string
		C string
		d string
	}
	rt := reflect.TypeOf(sample{})

	tests := []struct {
		field         string
		customization *PropertyCustomization
		readable      bool
		writable      bool
	}{
		{"A", nil, true, true},
		{"B", NewCustomizationBuilder().ReadOnly(true).BuildProperty(), true, false},
		{"C", NewCustomizationBuilder().WriteOnly(true).BuildProperty(), false, true},
		{"A", NewCustomizationBuilder().Transient(true).BuildProperty(), false, false},
		{"d", nil, false, false},
	}

	cm, _ := NewClassModel(rt, nil, nil, nil)
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			f, _ := rt.FieldByName(tt.field)
			p := NewPropertyModel(cm, f, tt.field, tt.customization)
			if p.Readable() != tt.readable || p.Writable() != tt.writable {
				t.Fatalf("readable=%v writable=%v, want %v %v", p.Readable(), p.Writable(), tt.readable, tt.writable)
			}
		})
	}
}

func TestPropertyModel_NamesAndValue(t *testing.T) {
	type sample struct {
		Items []string
	}
	rt := reflect.TypeOf(sample{})
	cm, _ := NewClassModel(rt, nil, nil, nil)
	f, _ := rt.FieldByName("Items")

	p := NewPropertyModel(cm, f, "items", NewCustomizationBuilder().ReadName("in").BuildProperty())
	if p.ReadName() != "in" || p.WriteName() != "items" {
		t.Fatalf("unexpected names: %q %q", p.ReadName(), p.WriteName())
	}
	if !typeinfo.Equal(p.Descriptor(), typeinfo.Of[[]string]()) {
		t.Fatalf("unexpected descriptor: %v", p.Descriptor())
	}

	v := p.Value(reflect.ValueOf(&sample{Items: []string{"x"}}))
	if got := v.Interface().([]string); len(got) != 1 || got[0] != "x" {
		t.Fatalf("unexpected value: %v", got)
	}
}

func TestCustomizationBuilder_Inherit(t *testing.T) {
	date := &DateFormatter{Layout: "2006-01-02", Locale: "en"}
	parent := NewCustomizationBuilder().
		Nillable(true).
		DateFormatter(date).
		Serializer(component.NewSerializerBinding(typeinfo.Of[string](), struct{}{})).
		BuildClass()

	inherited := NewCustomizationBuilder().Inherit(&parent.Customization).BuildProperty()
	if !inherited.Nillable() || inherited.DateFormatter() != date {
		t.Fatalf("shared values must be inherited")
	}
	if inherited.SerializerBinding() != nil {
		t.Fatalf("component bindings must not be inherited")
	}

	overridden := NewCustomizationBuilder().Nillable(false).Inherit(&parent.Customization).BuildProperty()
	if overridden.Nillable() {
		t.Fatalf("explicit value must win over the inherited one")
	}
}

func TestCustomization_NilSafe(t *testing.T) {
	var c *PropertyCustomization
	if c.Nillable() || c.AdapterBinding() != nil || c.ReadName() != "" || c.Transient() {
		t.Fatalf("nil customization must report zero values")
	}
	var pm *PropertyModel
	if pm.BindingCustomization() != nil {
		t.Fatalf("nil property model must have nil customization")
	}
}

func TestClassCustomization_PropertyOrderIsCopied(t *testing.T) {
	order := []string{"b", "a"}
	c := NewCustomizationBuilder().PropertyOrder(order...).BuildClass()
	order[0] = "z"
	got := c.PropertyOrder()
	got[1] = "y"
	if diff := cmp.Diff([]string{"b", "a"}, c.PropertyOrder()); diff != "" {
		t.Fatalf("PropertyOrder mismatch (-want +got):\n%s", diff)
	}
}

func TestIsTypeWrapper(t *testing.T) {
	type embedsWrapper struct {
		TypeWrapper[int]
		Extra string
	}
	type definedWrapper TypeWrapper[int]

	tests := []struct {
		name string
		rt   reflect.Type
		want bool
	}{
		{"wrapper", reflect.TypeOf(TypeWrapper[int]{}), true},
		{"pointer to wrapper", reflect.TypeOf(&TypeWrapper[string]{}), true},
		{"plain struct", reflect.TypeOf(animal{}), false},
		{"struct embedding a wrapper", reflect.TypeOf(embedsWrapper{}), false},
		{"pointer to struct embedding a wrapper", reflect.TypeOf(&embedsWrapper{}), false},
		{"type defined from a wrapper", reflect.TypeOf(definedWrapper{}), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTypeWrapper(tt.rt); got != tt.want {
				t.Fatalf("IsTypeWrapper() = %v, want %v", got, tt.want)
			}
		})
	}
}
