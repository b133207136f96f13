// Package errors provides structured error reporting for autobind.
//
// The binding layer itself has no recoverable error paths: a model or view
// that lacks a capability fails to compile, and a refresh that arrives after
// teardown is a silent no-op. What remains is reported here: panics recovered
// from a frame, configuration and script problems surfaced by the CLI, and
// warnings about misuse such as registering a cell too late.
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
	// KindConfig indicates an invalid or unreadable configuration file.
	KindConfig
	// KindParsing indicates a scenario script parsing failure.
	KindParsing
	// KindBind indicates misuse of the binding API.
	KindBind
	// KindRefresh indicates a failure while refreshing a view.
	KindRefresh
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindParsing:
		return "parsing"
	case KindBind:
		return "bind"
	case KindRefresh:
		return "refresh"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// BindError represents a structured error in the binding layer or its tools.
type BindError struct {
	// Op is the operation that failed (e.g., "config.Load").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *BindError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "engine.StepFrame").
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

// ParseError represents a failure to parse a scenario step.
type ParseError struct {
	// Source is the file or stream being parsed.
	Source string
	// Field is the step field that could not be parsed.
	Field string
	// Got is the actual data received.
	Got any
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s in %s: got %T (%v)", e.Field, e.Source, e.Got, e.Got)
}

// Warning is a non-fatal diagnostic, such as a cell registered after its
// object's change stream was already built.
type Warning struct {
	Op      string
	Message string
}

func (w *Warning) String() string {
	return w.Op + ": " + w.Message
}

// ErrorHandler receives errors reported by autobind.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *BindError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleWarning is called for non-fatal diagnostics.
	HandleWarning(w *Warning)
}
