package model

import (
	"reflect"
	"strings"
)

// TypeWrapper carries a value whose runtime type has to be preserved through marshalling.
// Adapter lookups for properties of a TypeWrapper never match.
type TypeWrapper[T any] struct {
	Value T
}

var typeWrapperPkg = reflect.TypeOf(TypeWrapper[struct{}]{}).PkgPath()

// IsTypeWrapper reports whether rt is an instantiation of TypeWrapper or a pointer to one.
// Types embedding a TypeWrapper or defined from one are not wrappers.
func IsTypeWrapper(rt reflect.Type) bool {
	if rt == nil {
		return false
	}
	if rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	return rt.PkgPath() == typeWrapperPkg && strings.HasPrefix(rt.Name(), "TypeWrapper[")
}
