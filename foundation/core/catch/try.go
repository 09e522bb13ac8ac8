// File: try.go
// Title: Protected Regions
// Description: Try runs a function inside a protected region; the Raise
//              helpers construct an error on their caller's behalf and raise
//              it.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package catch

import (
	"fmt"
	"syscall"

	mdwerror "github.com/msto63/elm/foundation/core/error"
	"github.com/msto63/elm/foundation/core/meta"
)

// Try runs fn in a new protected region. It returns nil when fn completes,
// or the error raised into the region, which the caller then owns. Any
// other panic, including a raise aimed at a frame Try does not own, pops the
// region and continues unwinding.
func (s *Stack) Try(fn func()) (err *mdwerror.Error) {
	f := s.Establish()
	done := false

	defer func() {
		if done {
			return
		}
		r := recover()
		if c, ok := r.(raised); ok {
			if c.frame == f && s.top == f {
				s.pop()
				f.state = Resumed
				err = f.err
				f.err = nil
				s.metrics.Catch()
				return
			}
			s.abandon(f)
			c.frame.err.Destroy()
			panic(fmt.Errorf("%w: raise targeted a frame not owned by Try", ErrNesting))
		}
		s.abandon(f)
		if r != nil {
			panic(r)
		}
	}()

	fn()
	err = s.Conclude(f)
	done = true
	return err
}

// TryValue runs fn in a protected region on s and returns its result, or
// the zero value and the raised error.
func TryValue[T any](s *Stack, fn func() T) (v T, err *mdwerror.Error) {
	err = s.Try(func() {
		v = fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// Raisef raises a message error attributed to the caller.
func (s *Stack) Raisef(format string, args ...interface{}) {
	s.Raise(mdwerror.MessageAt(meta.Caller(1), fmt.Sprintf(format, args...)))
}

// RaiseSystem raises a system error for errno attributed to the caller.
func (s *Stack) RaiseSystem(errno syscall.Errno, format string, args ...interface{}) {
	s.Raise(mdwerror.SystemAt(meta.Caller(1), errno, "", fmt.Sprintf(format, args...)))
}

// RaiseIO raises a system error about name attributed to the caller.
func (s *Stack) RaiseIO(name string, errno syscall.Errno, format string, args ...interface{}) {
	s.Raise(mdwerror.SystemAt(meta.Caller(1), errno, name, fmt.Sprintf(format, args...)))
}

// Must raises err if it is not nil. An *mdwerror.Error is raised as is;
// other errors are wrapped in a message error attributed to the caller.
func (s *Stack) Must(err error) {
	s.must(meta.Caller(1), err)
}

func (s *Stack) must(m meta.Meta, err error) {
	if err == nil {
		return
	}
	if e, ok := err.(*mdwerror.Error); ok {
		if e == nil {
			return
		}
		s.Raise(e)
		return
	}
	s.Raise(mdwerror.WrapAt(m, err, ""))
}

func sprintf(format string, args []interface{}) string {
	return fmt.Sprintf(format, args...)
}
