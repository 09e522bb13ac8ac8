// File: system.go
// Title: System Errors
// Description: Errors wrapping an operating-system error number together
//              with a message prefix and an optional subject name such as a
//              file path.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package error

import (
	"errors"
	"fmt"
	"io"
	"syscall"

	"github.com/msto63/elm/foundation/core/meta"
)

// system is the body of KindSystem errors.
type system struct {
	errno  syscall.Errno
	name   string
	prefix string
}

func (s *system) Kind() Kind {
	return KindSystem
}

// Render produces "<prefix> (<name>): <os text>", or "<prefix>: <os text>"
// when there is no subject name.
func (s *system) Render(w io.Writer) (int, error) {
	if s.name == "" {
		return fmt.Fprintf(w, "%s: %s", s.prefix, s.errno.Error())
	}
	return fmt.Fprintf(w, "%s (%s): %s", s.prefix, s.name, s.errno.Error())
}

func (s *system) Cleanup() {
	s.name = ""
	s.prefix = ""
}

// Unwrap exposes the errno so errors.Is(err, fs.ErrNotExist) and friends work.
func (s *system) Unwrap() error {
	return s.errno
}

// System creates a system error for errno with a formatted message prefix.
func System(errno syscall.Errno, format string, args ...interface{}) *Error {
	return At(meta.Caller(1), &system{
		errno:  errno,
		prefix: fmt.Sprintf(format, args...),
	})
}

// IO creates a system error about the subject name (typically a path).
func IO(name string, errno syscall.Errno, format string, args ...interface{}) *Error {
	return At(meta.Caller(1), &system{
		errno:  errno,
		name:   name,
		prefix: fmt.Sprintf(format, args...),
	})
}

// SystemInfo decomposes a system error. ok is false when err is not an
// *Error of KindSystem (or has been destroyed); otherwise errno, the subject
// name ("" when absent) and the message prefix are returned. The strings are
// independent of err and survive its destruction.
func SystemInfo(err error) (errno syscall.Errno, name, prefix string, ok bool) {
	var e *Error
	if !errors.As(err, &e) || e.Destroyed() {
		return 0, "", "", false
	}
	s, isSystem := e.body.(*system)
	if !isSystem {
		return 0, "", "", false
	}
	return s.errno, s.name, s.prefix, true
}

// SystemAt creates a system error attributed to m. An empty name means the
// error has no subject.
func SystemAt(m meta.Meta, errno syscall.Errno, name, prefix string) *Error {
	return At(m, &system{
		errno:  errno,
		name:   name,
		prefix: prefix,
	})
}
