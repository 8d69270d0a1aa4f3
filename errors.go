package retained

import (
	"errors"
	"fmt"
)

var (
	// ErrSkinMissing is returned when the skin has no entry for a control kind.
	ErrSkinMissing = errors.New("skin control not found")

	// ErrLayerMissing is returned when a skin control has no layer of the requested name.
	ErrLayerMissing = errors.New("skin layer not found")

	// ErrDisposed is returned by operations on a control that was already disposed.
	ErrDisposed = errors.New("control disposed")

	// ErrNoRenderer is returned by the draw passes when the manager has no renderer.
	ErrNoRenderer = errors.New("no renderer configured")
)

// ConfigError reports a broken asset or build: a missing skin entry, a missing
// skin property or a malformed configuration/layout file. It is fatal at the
// point of use.
type ConfigError struct {
	Source string // file, skin or component the error came from
	Item   string // offending entry, may be empty
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Item == "" {
		return fmt.Sprintf("config %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("config %s: %s: %v", e.Source, e.Item, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// InvalidValueError reports a property value that is out of range or of the
// wrong type for the named control.
type InvalidValueError struct {
	Control  string
	Property string
	Value    any
	Err      error
}

func (e *InvalidValueError) Error() string {
	msg := fmt.Sprintf("control %q: invalid value %v for property %q", e.Control, e.Value, e.Property)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InvalidValueError) Unwrap() error { return e.Err }
