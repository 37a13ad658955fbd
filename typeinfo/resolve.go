package typeinfo

import (
	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/bind/errors"
)

// Scope is a declared generic signature context: placeholder substitutions of one declaring
// level plus a link to the enclosing level. Values bound in a scope are expressed in terms of
// the placeholders of its parent.
type Scope struct {
	parent *Scope
	owner  string
	vars   map[string]Type
}

// NewScope creates an outermost scope.
func NewScope(owner string, vars map[string]Type) *Scope {
	return &Scope{owner: owner, vars: copyVars(vars)}
}

// Child creates a scope nested in s.
func (s *Scope) Child(owner string, vars map[string]Type) *Scope {
	return &Scope{parent: s, owner: owner, vars: copyVars(vars)}
}

// Owner names the declaring level, for diagnostics.
func (s *Scope) Owner() string {
	if s == nil {
		return ""
	}
	return s.owner
}

// Parent returns the enclosing scope, nil for the outermost one.
func (s *Scope) Parent() *Scope {
	if s == nil {
		return nil
	}
	return s.parent
}

// Lookup returns the substitution bound to name at this level only.
func (s *Scope) Lookup(name string) (Type, bool) {
	if s == nil {
		return nil, false
	}
	t, ok := s.vars[name]
	return t, ok
}

func copyVars(vars map[string]Type) map[string]Type {
	cp := make(map[string]Type, len(vars))
	for k, v := range vars {
		cp[k] = v
	}
	return cp
}

// Resolve substitutes every placeholder in t using scope.
// Simple descriptors are returned unchanged; parameterized descriptors are rebuilt with resolved
// arguments. A placeholder without a concrete substitution yields ErrUnresolvableTypeVariable.
func Resolve(t Type, scope *Scope) (Type, error) {
	switch v := t.(type) {
	case variable:
		return ResolveVariable(v, scope)
	case *parameterized:
		if !HasVariables(v) {
			return v, nil
		}
		args := make([]Type, len(v.args))
		for i, a := range v.args {
			r, err := Resolve(a, scope)
			if err != nil {
				return nil, err
			}
			args[i] = r
		}
		return &parameterized{raw: v.raw, args: args}, nil
	default:
		return t, nil
	}
}

// ResolveVariable resolves a single placeholder. The innermost scope binding the name wins;
// its value is then resolved against that scope's parent.
func ResolveVariable(v Type, scope *Scope) (Type, error) {
	name, ok := VariableName(v)
	if !ok {
		return Resolve(v, scope)
	}
	for s := scope; s != nil; s = s.parent {
		bound, ok := s.vars[name]
		if !ok {
			continue
		}
		if bound == nil {
			break
		}
		return Resolve(bound, s.parent)
	}
	return nil, errorc.With(
		errors.ErrUnresolvableTypeVariable,
		errorc.String(errors.ErrorFieldVariable, name),
		errorc.String(errors.ErrorFieldScope, scope.Owner()),
	)
}
