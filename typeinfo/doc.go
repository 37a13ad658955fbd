// Package typeinfo describes types as they appear at binding and runtime sites.
//
// A descriptor is one of three kinds:
//
//   - simple: a concrete Go type with no type arguments, identified by its reflect.Type;
//   - parameterized: a raw generic type plus an ordered list of argument descriptors.
//     Built-in composites ([]E, map[K]V, *E, chan E) are described this way, and user
//     generic types opt in by implementing Describer;
//   - variable: an unbound placeholder used inside declared component signatures.
//
// Descriptors are immutable. Equal, IsAssignable and Matches implement the comparison rules
// used by the component resolver; Resolve substitutes placeholders against a Scope.
package typeinfo
