package codegen

import (
	"errors"
	"fmt"
)

// ErrorKind classifies build-time failures. Every kind aborts generation.
type ErrorKind string

const (
	// IoError is a filesystem access failure.
	IoError ErrorKind = "io error"
	// InvalidName is a unit directory whose name cannot become an identifier.
	InvalidName ErrorKind = "invalid name"
	// InvalidUnit is an implementation file that cannot be compiled into the
	// dispatch table (parse failure or missing entry function).
	InvalidUnit ErrorKind = "invalid unit"
	// JsonError is a failure while serializing the schema bundle.
	JsonError ErrorKind = "json error"
	// TemplateError covers unreadable templates, templates missing a required
	// placeholder, and templates rendering invalid Go.
	TemplateError ErrorKind = "template error"
)

// BuildError is returned by every generation step.
type BuildError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// KindOf returns the ErrorKind of err, or "" if err is not a BuildError.
func KindOf(err error) ErrorKind {
	var be *BuildError
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}

func buildErr(kind ErrorKind, op string, err error) *BuildError {
	return &BuildError{Kind: kind, Op: op, Err: err}
}
