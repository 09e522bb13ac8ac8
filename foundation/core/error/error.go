// File: error.go
// Title: Core Error Implementation
// Description: Implements the Error type: a kind-specific body, the source
//              location where the value was constructed, and an identity
//              tracked by the allocation shim so that every value is
//              destroyed exactly once.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors
// - 2026-10-17 v0.2.0: Polymorphic bodies, provenance, explicit destruction

package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/msto63/elm/foundation/core/alloc"
	"github.com/msto63/elm/foundation/core/meta"
)

var (
	// ErrDoubleDestroy is the panic value for destroying an Error twice.
	ErrDoubleDestroy = errors.New("error value destroyed twice")

	// ErrDestroyed is returned when rendering an Error after Destroy.
	ErrDestroyed = errors.New("error value already destroyed")

	// ErrNilBody is the panic value for constructing an Error without a body.
	ErrNilBody = errors.New("error body must not be nil")
)

// Error is an owned error value. Exactly one piece of code owns it at a
// time, and the last owner must call Destroy.
type Error struct {
	body      Body
	meta      meta.Meta
	id        uuid.UUID
	tracker   *alloc.Tracker
	destroyed atomic.Bool
}

// At constructs an Error with the given body and provenance. It is the
// building block for helpers that create errors on their caller's behalf.
func At(m meta.Meta, body Body) *Error {
	if body == nil {
		panic(ErrNilBody)
	}
	tracker := alloc.Default()
	return &Error{
		body:    body,
		meta:    m,
		id:      tracker.Acquire(m),
		tracker: tracker,
	}
}

// New creates a message error whose text is msg.
func New(msg string) *Error {
	return At(meta.Caller(1), &message{text: msg})
}

// Newf creates a message error from a printf-style format.
func Newf(format string, args ...interface{}) *Error {
	return At(meta.Caller(1), &message{text: fmt.Sprintf(format, args...)})
}

// NewWith creates an error of a caller-defined kind.
func NewWith(body Body) *Error {
	return At(meta.Caller(1), body)
}

// Wrap takes ownership of err and returns a message error reading
// "msg: <err>" (or just err's text when msg is empty). A nil err yields nil.
// If err is itself an *Error it is destroyed along with the wrapper.
func Wrap(err error, msg string) *Error {
	if err == nil {
		return nil
	}
	return At(meta.Caller(1), &message{text: msg, cause: err})
}

// Error implements the error interface by rendering the body.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var sb strings.Builder
	if _, err := e.Render(&sb); err != nil {
		return err.Error()
	}
	return sb.String()
}

// Unwrap exposes the cause carried by the body, if it has one.
func (e *Error) Unwrap() error {
	if e == nil || e.destroyed.Load() {
		return nil
	}
	if u, ok := e.body.(interface{ Unwrap() error }); ok {
		return u.Unwrap()
	}
	return nil
}

// Render writes the human readable form of the error to w and returns the
// number of bytes written.
func (e *Error) Render(w io.Writer) (int, error) {
	if e.destroyed.Load() {
		return 0, ErrDestroyed
	}
	return e.body.Render(w)
}

// Destroy runs the body's cleanup and releases the value. Destroy on a nil
// *Error is a no-op; destroying the same value twice panics.
func (e *Error) Destroy() {
	if e == nil {
		return
	}
	if !e.destroyed.CompareAndSwap(false, true) {
		panic(fmt.Errorf("%w (created at %s)", ErrDoubleDestroy, e.meta))
	}
	e.body.Cleanup()
	e.tracker.Release(e.id)
}

// Kind returns the kind of the body.
func (e *Error) Kind() Kind {
	return e.body.Kind()
}

// Body returns the kind-specific body.
func (e *Error) Body() Body {
	return e.body
}

// Meta returns where the error was constructed.
func (e *Error) Meta() meta.Meta {
	return e.meta
}

// ID returns the identity assigned at construction.
func (e *Error) ID() uuid.UUID {
	return e.id
}

// Destroyed reports whether Destroy has been called.
func (e *Error) Destroyed() bool {
	return e.destroyed.Load()
}

// String returns a detailed multi-line representation of the error
func (e *Error) String() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("Error: %s", e.Error()))
	parts = append(parts, fmt.Sprintf("Kind: %s", e.Kind()))
	parts = append(parts, fmt.Sprintf("ID: %s", e.id))
	parts = append(parts, fmt.Sprintf("Location: %s", e.meta))

	if cause := e.Unwrap(); cause != nil {
		parts = append(parts, fmt.Sprintf("Cause: %s", cause.Error()))
	}

	return strings.Join(parts, "\n")
}

// MarshalJSON implements json.Marshaler for structured logging
func (e *Error) MarshalJSON() ([]byte, error) {
	data := map[string]interface{}{
		"id":      e.id.String(),
		"kind":    e.Kind(),
		"message": e.Error(),
		"func":    e.meta.Func,
		"file":    e.meta.File,
		"line":    e.meta.Line,
	}

	if errno, name, _, ok := SystemInfo(e); ok {
		data["errno"] = int(errno)
		if name != "" {
			data["name"] = name
		}
	}

	return json.Marshal(data)
}

// HasKind checks if err is an *Error of the given kind
func HasKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind() == kind
	}
	return false
}

// KindOf returns the kind of err, or KindUnknown if err is not an *Error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind()
	}
	return KindUnknown
}
