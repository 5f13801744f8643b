// Package errors provides structured error handling for the timeline runtime.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindInvalidArgument indicates a caller contract violation, such as a
	// negative elapsed time passed to an animation instance.
	KindInvalidArgument
	// KindParsing indicates a document decoding failure.
	KindParsing
	// KindFormat indicates an unsupported or missing document format version.
	KindFormat
	// KindLookup indicates a named animation or node that does not exist.
	KindLookup
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid argument"
	case KindParsing:
		return "parsing"
	case KindFormat:
		return "format"
	case KindLookup:
		return "lookup"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// AnimationError represents a structured error in the timeline runtime.
type AnimationError struct {
	// Op is the operation that failed (e.g., "animation.Instance.Advance").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Animation is the name of the animation involved, if applicable.
	Animation string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *AnimationError) Error() string {
	if e.Animation != "" {
		return fmt.Sprintf("%s [%s] animation=%s: %v", e.Op, e.Kind, e.Animation, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *AnimationError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "animation.StepTickers").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ParseError represents a field in a document that could not be decoded.
type ParseError struct {
	// Source is the document or file the value came from.
	Source string
	// Field is the dotted path of the offending field.
	Field string
	// Got is the value that was found.
	Got any
}

func (e *ParseError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("invalid value for %s: got %v", e.Field, e.Got)
	}
	return fmt.Sprintf("invalid value for %s in %s: got %v", e.Field, e.Source, e.Got)
}

// ErrorHandler receives errors reported by the runtime.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *AnimationError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
