package pqhdr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error kinds reported by conversion. Match them with errors.Is.
var (
	ErrSourceRead       = errors.New("source read error")
	ErrMaskRead         = errors.New("mask read error")
	ErrProfileLoad      = errors.New("profile load error")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrWrite            = errors.New("write error")
)

// Error is a classified conversion failure.
// Subject names the offending input: a file path or a parameter name.
type Error struct {
	Kind    error
	Subject string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Subject != "" && e.Err != nil:
		return fmt.Sprintf("%v: %s: %v", e.Kind, e.Subject, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	case e.Subject != "":
		return fmt.Sprintf("%v: %s", e.Kind, e.Subject)
	default:
		return e.Kind.Error()
	}
}

// Unwrap exposes both the kind and the cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, subject string, err error) *Error {
	return &Error{Kind: kind, Subject: subject, Err: err}
}

func invalidParam(name string, format string, args ...interface{}) *Error {
	return newError(ErrInvalidParameter, name, errors.Errorf(format, args...))
}
