package bind

import (
	"encoding/json"
	"fmt"

	"github.com/ygrebnov/bind/component"
)

// ComponentError represents a single component that could not be registered.
// It implements error and unwraps to the underlying cause so callers can use errors.Is/As.
type ComponentError struct {
	Kind component.Kind // role the component was registered for
	Type string         // component type, e.g. main.moneyAdapter
	Err  error          // underlying cause
}

func (e ComponentError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Kind, e.Type, e.Err)
}

func (e ComponentError) Unwrap() error { return e.Err }

// MarshalJSON exports ComponentError as an object with kind, type, and message fields.
func (e ComponentError) MarshalJSON() ([]byte, error) {
	msg := ""
	if e.Err != nil {
		msg = e.Err.Error()
	}
	return json.Marshal(struct {
		Kind    string `json:"kind"`
		Type    string `json:"type"`
		Message string `json:"message"`
	}{
		Kind:    e.Kind.String(),
		Type:    e.Type,
		Message: msg,
	})
}
