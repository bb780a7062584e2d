// Package errors provides structured error reporting for headless
// components. Failures inside consumer callbacks, timers and builders are
// reported to a process-wide handler instead of unwinding into the event loop.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindTimer indicates a failure in a scheduled callback.
	KindTimer
	// KindBuild indicates a failure while building an element.
	KindBuild
	// KindOverlay indicates an overlay mount or lifecycle failure.
	KindOverlay
	// KindConfig indicates invalid configuration.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindHost indicates a failure in the host adapter.
	KindHost
)

func (k ErrorKind) String() string {
	switch k {
	case KindTimer:
		return "timer"
	case KindBuild:
		return "build"
	case KindOverlay:
		return "overlay"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	case KindHost:
		return "host"
	default:
		return "unknown"
	}
}

var (
	// ErrDisposed is returned when an operation targets a disposed owner.
	ErrDisposed = stderrors.New("owner disposed")
	// ErrNoSurface is returned when an overlay is opened without a surface.
	ErrNoSurface = stderrors.New("no overlay surface")
)

// HeadlessError is a structured error carrying the failing operation.
type HeadlessError struct {
	// Op is the operation that failed (e.g., "overlay.Anchored.Open").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *HeadlessError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *HeadlessError) Unwrap() error {
	return e.Err
}

// New wraps err with an operation name and kind.
func New(op string, kind ErrorKind, err error) *HeadlessError {
	return &HeadlessError{Op: op, Kind: kind, Err: err}
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// KindOf returns the kind of the first HeadlessError in err's chain.
func KindOf(err error) ErrorKind {
	var he *HeadlessError
	if stderrors.As(err, &he) {
		return he.Kind
	}
	return KindUnknown
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "gestures.Router.Dispatch").
	Op string
	// Kind is the kind of work that panicked, derived from Op when the
	// panic is recovered.
	Kind ErrorKind
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

// BuildError represents a failure inside an element's build function.
type BuildError struct {
	// Element names the element that failed.
	Element string
	// Recovered is the panic value (nil for regular errors).
	Recovered any
	// Err is the underlying error (nil for panics).
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *BuildError) Error() string {
	if e.Recovered != nil {
		return fmt.Sprintf("panic in %s build: %v", e.Element, e.Recovered)
	}
	if e.Err != nil {
		return fmt.Sprintf("error in %s build: %v", e.Element, e.Err)
	}
	return fmt.Sprintf("unknown error in %s build", e.Element)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives reported errors.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *HeadlessError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleBuildError is called when an element build fails.
	HandleBuildError(err *BuildError)
}
