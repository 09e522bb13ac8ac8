// File: logger.go
// Title: Core Logger Implementation
// Description: Implements the builtin and shared logger handles. Both render
//              a complete line, write it to their sink in one call and flush
//              it; failures are reported on the emergency channel.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging
// - 2026-10-17 v0.2.0: Builtin and reference-counted shared handles

package log

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"syscall"

	"github.com/msto63/elm/foundation/core/alloc"
	"github.com/msto63/elm/foundation/core/emergency"
	mdwerror "github.com/msto63/elm/foundation/core/error"
	"github.com/msto63/elm/foundation/core/meta"
	"github.com/msto63/elm/foundation/core/metrics"
)

// ErrReleased is returned by writes to a shared logger whose last reference
// has been released.
var ErrReleased = errors.New("log: logger already released")

// errorLoggingError is the emergency text used when LogError fails.
const errorLoggingError = "Error logging error."

// Logger is the set of operations common to builtin and shared loggers.
type Logger interface {
	// Logf logs a formatted message attributed to m.
	Logf(m meta.Meta, format string, args ...interface{}) (int, error)

	// Printf logs a formatted message attributed to its caller.
	Printf(format string, args ...interface{}) (int, error)

	// LogError logs the rendered error attributed to where it was created.
	LogError(err *mdwerror.Error) (int, error)

	// Unless logs text only when cond is false.
	Unless(cond bool, text string) (int, error)

	Name() string
	Discards() bool
	Release()
}

var (
	_ Logger = (*Builtin)(nil)
	_ Logger = (*Shared)(nil)
)

// sink holds the state shared by both handle types.
type sink struct {
	name      string
	formatter Formatter
	metrics   *metrics.Metrics

	mu     sync.Mutex
	out    io.Writer
	closed bool
}

func (s *sink) Name() string {
	return s.name
}

func (s *sink) Discards() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out == nil
}

func (s *sink) logf(m meta.Meta, format string, args []interface{}) (int, error) {
	return s.emit(m, format, nil, func() (string, error) {
		return fmt.Sprintf(format, args...), nil
	})
}

func (s *sink) logError(err *mdwerror.Error) (int, error) {
	if err == nil {
		return 0, nil
	}
	return s.emit(err.Meta(), errorLoggingError, err, func() (string, error) {
		var sb strings.Builder
		if _, rerr := err.Render(&sb); rerr != nil {
			return "", rerr
		}
		return sb.String(), nil
	})
}

// emit renders the message outside the lock, so arguments whose String
// methods log are safe, then writes and flushes the line under the lock.
func (s *sink) emit(m meta.Meta, failText string, errVal *mdwerror.Error, render func() (string, error)) (int, error) {
	s.mu.Lock()
	closed, discard := s.closed, s.out == nil
	s.mu.Unlock()

	if closed {
		return 0, ErrReleased
	}
	if discard {
		return 0, nil
	}

	msg, err := render()
	if err != nil {
		return s.fail(m, failText, err)
	}
	line, err := s.formatter.Format(NewEntry(s.name, m, msg).WithError(errVal))
	if err != nil {
		return s.fail(m, failText, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrReleased
	}
	if s.out == nil {
		return 0, nil
	}

	n, err := s.out.Write(line)
	if err == nil && n < len(line) {
		err = io.ErrShortWrite
	}
	if err == nil {
		err = flush(s.out)
	}
	if err != nil {
		return s.fail(m, failText, err)
	}

	s.metrics.LogWrite(s.name, n)
	return n, nil
}

func (s *sink) fail(m meta.Meta, text string, err error) (int, error) {
	if errors.Is(err, syscall.ENOMEM) {
		alloc.PanicNoMem(m)
	}
	emergency.Write("LOGFAILED", &m, text)
	s.metrics.LogFailure(s.name)
	return -1, err
}

// flush pushes buffered output to the device. Sync on pipes and terminals
// reports EINVAL or ENOTSUP, which is not a failure of the write.
func flush(w io.Writer) error {
	switch f := w.(type) {
	case interface{ Flush() error }:
		return f.Flush()
	case interface{ Sync() error }:
		err := f.Sync()
		if err != nil && !errors.Is(err, syscall.EINVAL) && !errors.Is(err, syscall.ENOTSUP) {
			return err
		}
	}
	return nil
}

// Builtin is a process-wide logger. It is never destroyed; Retain and
// Release do nothing.
type Builtin struct {
	sink
}

func newBuiltin(name string, out io.Writer, f Formatter) *Builtin {
	return &Builtin{sink: sink{
		name:      name,
		formatter: f,
		metrics:   metrics.Default(),
		out:       out,
	}}
}

// Builtin loggers, usable without any initialisation.
var (
	Null = newBuiltin("NULL", nil, PlainFormatter{})
	Std  = newBuiltin("LOG", osStdout, PlainFormatter{})
	Err  = newBuiltin("ERROR", osStderr, PlainFormatter{})
	Dbg  = newBuiltin("DBG", osStderr, DebugFormatter{})
)

// HideDebug points Dbg at Null until restore is called. It must not race
// with other users of Dbg.
func HideDebug() (restore func()) {
	prev := Dbg
	Dbg = Null
	return func() { Dbg = prev }
}

// Renamed returns a builtin sharing b's sink and format under a new name.
func (b *Builtin) Renamed(name string) *Builtin {
	b.mu.Lock()
	out := b.out
	b.mu.Unlock()

	r := newBuiltin(name, out, b.formatter)
	r.metrics = b.metrics
	return r
}

// SetOutput redirects the builtin and returns a function restoring the
// previous sink. Intended for tests and for the command line front end.
func (b *Builtin) SetOutput(w io.Writer) (restore func()) {
	b.mu.Lock()
	prev := b.out
	b.out = w
	b.mu.Unlock()
	return func() {
		b.mu.Lock()
		b.out = prev
		b.mu.Unlock()
	}
}

// Logf logs a formatted message attributed to m.
func (b *Builtin) Logf(m meta.Meta, format string, args ...interface{}) (int, error) {
	return b.logf(m, format, args)
}

// Printf logs a formatted message attributed to the caller.
func (b *Builtin) Printf(format string, args ...interface{}) (int, error) {
	return b.logf(meta.Caller(1), format, args)
}

// LogError logs err attributed to where it was created. err is not destroyed.
func (b *Builtin) LogError(err *mdwerror.Error) (int, error) {
	return b.logError(err)
}

// Unless logs text when cond is false.
func (b *Builtin) Unless(cond bool, text string) (int, error) {
	if cond {
		return 0, nil
	}
	return b.emit(meta.Caller(1), text, nil, func() (string, error) { return text, nil })
}

// Retain returns b.
func (b *Builtin) Retain() *Builtin {
	return b
}

// Release does nothing.
func (b *Builtin) Release() {}
