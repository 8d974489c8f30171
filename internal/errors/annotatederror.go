// Package errors provides error wrapping with slog annotations and source
// locations on top of the standard library errors package.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
)

// AnnotatedError carries a message, an optional wrapped error, slog
// annotations, and the source location where it was created.
type AnnotatedError struct {
	msg         string
	err         error
	annotations []slog.Attr
	source      string
}

// NewSentinel creates a new sentinel error annotated with its source location.
func NewSentinel(msg string) error {
	return &AnnotatedError{
		msg:         msg,
		err:         nil,
		annotations: nil,
		source:      callerSource(2),
	}
}

// Wrap annotates err with a message and optional slog attributes. The
// wrapped error remains reachable through errors.Is and errors.As.
func Wrap(err error, msg string, annotations ...slog.Attr) error {
	return &AnnotatedError{
		msg:         msg,
		err:         err,
		annotations: annotations,
		source:      callerSource(2),
	}
}

// DecoratePanic converts a recovered panic value into an error whose source
// location points at the panic site.
func DecoratePanic(recovered any) error {
	if recovered == nil {
		return nil
	}
	return &AnnotatedError{
		msg:         fmt.Sprintf("panic: %v", recovered),
		err:         nil,
		annotations: nil,
		source:      panicSource(),
	}
}

// Error implements the error interface.
func (e *AnnotatedError) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

// Unwrap exposes the wrapped error to the standard errors helpers.
func (e *AnnotatedError) Unwrap() error {
	return e.err
}

// SlogError renders an error as a structured attribute group with the
// message, the originating source location, and all annotations collected
// from the wrap chain.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}

	attrs := []slog.Attr{slog.String("message", err.Error())}

	var (
		source      string
		annotations []slog.Attr
	)
	for unwrapped := err; unwrapped != nil; unwrapped = errors.Unwrap(unwrapped) {
		var annotated *AnnotatedError
		if !errors.As(unwrapped, &annotated) {
			break
		}
		if source == "" && annotated.source != "" {
			source = annotated.source
		}
		annotations = append(annotations, annotated.annotations...)
		unwrapped = annotated
	}

	if source != "" {
		attrs = append(attrs, slog.String("source", source))
	}
	if len(annotations) > 0 {
		attrs = append(attrs, slog.Attr{Key: "annotations", Value: slog.GroupValue(annotations...)})
	}

	return slog.Attr{Key: "error", Value: slog.GroupValue(attrs...)}
}

// callerSource resolves the file:line of the caller skip frames up.
func callerSource(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d", file, line)
}

// panicSource walks the stack past runtime.gopanic to find the panic site.
func panicSource() string {
	var pcs [32]uintptr
	n := runtime.Callers(1, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	seenGopanic := false
	for {
		frame, more := frames.Next()
		if frame.Function == "runtime.gopanic" {
			seenGopanic = true
		} else if seenGopanic && !strings.HasPrefix(frame.Function, "runtime.") {
			return fmt.Sprintf("%s:%d", frame.File, frame.Line)
		}
		if !more {
			return ""
		}
	}
}

// Re-exports so that callers only need one errors import.

// New forwards to the standard library.
func New(text string) error { return errors.New(text) }

// Is forwards to the standard library.
func Is(err, target error) bool { return errors.Is(err, target) }

// As forwards to the standard library.
func As(err error, target any) bool { return errors.As(err, target) }

// Unwrap forwards to the standard library.
func Unwrap(err error) error { return errors.Unwrap(err) }

// Join forwards to the standard library.
func Join(errs ...error) error { return errors.Join(errs...) }
