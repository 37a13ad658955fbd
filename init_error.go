package bind

import (
	"encoding/json"
	"errors"
	"slices"
	"strings"

	"github.com/ygrebnov/bind/component"
)

// InitError lists the components New could not register, in registration order.
// errors.Is and errors.As see through it to every cause.
// An InitError is filled by a single goroutine and read-only once returned.
type InitError struct {
	issues []ComponentError
}

// Add records a component that failed to register.
func (ie *InitError) Add(ce ComponentError) {
	if ie != nil {
		ie.issues = append(ie.issues, ce)
	}
}

// Len returns the number of failed components.
func (ie *InitError) Len() int {
	if ie == nil {
		return 0
	}
	return len(ie.issues)
}

// Empty reports whether every component was registered.
func (ie *InitError) Empty() bool { return ie.Len() == 0 }

func (ie *InitError) Error() string {
	switch ie.Len() {
	case 0:
		return ""
	case 1:
		return ie.issues[0].Error()
	}
	lines := make([]string, len(ie.issues))
	for i, ce := range ie.issues {
		lines[i] = "  " + ce.Error()
	}
	return "initialization failed (\n" + strings.Join(lines, "\n") + "\n)"
}

// Unwrap returns the causes joined with errors.Join.
func (ie *InitError) Unwrap() error {
	if ie == nil {
		return nil
	}
	var errs []error
	for _, ce := range ie.issues {
		if ce.Err != nil {
			errs = append(errs, ce.Err)
		}
	}
	return errors.Join(errs...)
}

// Components returns a copy of the failed components.
func (ie *InitError) Components() []ComponentError {
	if ie == nil {
		return nil
	}
	return slices.Clone(ie.issues)
}

// ForKind returns the failed components of one kind.
func (ie *InitError) ForKind(kind component.Kind) []ComponentError {
	var out []ComponentError
	for _, ce := range ie.Components() {
		if ce.Kind == kind {
			out = append(out, ce)
		}
	}
	return out
}

// MarshalJSON encodes the failures as component type name -> error messages:
//
//	{"main.moneyAdapter": ["bind: configuration error ..."]}
func (ie *InitError) MarshalJSON() ([]byte, error) {
	if ie == nil {
		return []byte("null"), nil
	}
	by := make(map[string][]string, len(ie.issues))
	for _, ce := range ie.issues {
		var msg string
		if ce.Err != nil {
			msg = ce.Err.Error()
		}
		by[ce.Type] = append(by[ce.Type], msg)
	}
	return json.Marshal(by)
}
