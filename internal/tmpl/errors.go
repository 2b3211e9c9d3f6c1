package tmpl

import (
	"errors"
	"fmt"
)

// Kind classifies template failures.
type Kind int

const (
	// KindNotFound means no template is registered under the name.
	KindNotFound Kind = iota + 1
	// KindCompile means the template source does not parse.
	KindCompile
	// KindData means the JSON data does not decode.
	KindData
	// KindExecute means applying the template to the data failed.
	KindExecute
)

// Sentinel errors matching each Kind through errors.Is.
var (
	ErrNotFound = errors.New("template not found")
	ErrCompile  = errors.New("template compilation failed")
	ErrData     = errors.New("invalid template data")
	ErrExecute  = errors.New("template execution failed")
	ErrEngine   = errors.New("unknown template engine")
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindCompile:
		return "compile"
	case KindData:
		return "data"
	case KindExecute:
		return "execute"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindCompile:
		return ErrCompile
	case KindData:
		return ErrData
	case KindExecute:
		return ErrExecute
	default:
		return nil
	}
}

// Error is a template failure.
type Error struct {
	Kind     Kind
	Template string // empty for anonymous templates
	Err      error  // underlying cause, nil for KindNotFound
}

func newError(kind Kind, name string, err error) *Error {
	return &Error{Kind: kind, Template: name, Err: err}
}

// Error implements error.
func (e *Error) Error() string {
	name := e.Template
	if name == "" {
		name = "<anonymous>"
	}
	if e.Err == nil {
		return fmt.Sprintf("template %s: %s", name, e.Kind)
	}
	return fmt.Sprintf("template %s: %s: %v", name, e.Kind, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// Cause returns the message of the underlying cause, or the error itself
// when there is none.
func (e *Error) Cause() string {
	if e.Err == nil {
		return e.Error()
	}
	return e.Err.Error()
}

// AsError extracts a *Error from err.
func AsError(err error) (*Error, bool) {
	var te *Error
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}
