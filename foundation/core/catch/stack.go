// File: stack.go
// Title: Catch Stack
// Description: The frame chain of protected regions, raising into the top
//              frame, and the fatal path for raises outside any region.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package catch

import (
	"errors"
	"fmt"
	"os"

	"github.com/msto63/elm/foundation/core/emergency"
	mdwerror "github.com/msto63/elm/foundation/core/error"
	elmlog "github.com/msto63/elm/foundation/core/log"
	"github.com/msto63/elm/foundation/core/metrics"
)

// FatalExitCode is the process status after a raise outside any region.
const FatalExitCode = 255

// PanicLoggerName names the logger used on the fatal path.
const PanicLoggerName = "PANIC!"

var (
	// ErrNesting reports frames concluded out of LIFO order.
	ErrNesting = errors.New("catch: protected regions concluded out of order")

	// ErrNilRaise is the panic value for raising a nil error.
	ErrNilRaise = errors.New("catch: raise of nil error")

	// ErrUncaught is the panic value on the fatal path when the exit hook
	// returns instead of terminating the process.
	ErrUncaught = errors.New("catch: uncaught raise")
)

// State is the lifecycle state of a Frame.
type State int

const (
	Unestablished State = iota
	Established
	Resumed
	Concluded
)

func (s State) String() string {
	switch s {
	case Unestablished:
		return "unestablished"
	case Established:
		return "established"
	case Resumed:
		return "resumed"
	case Concluded:
		return "concluded"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Frame is one protected region on a Stack.
type Frame struct {
	prev  *Frame
	err   *mdwerror.Error
	state State
}

// State returns the frame's lifecycle state.
func (f *Frame) State() State {
	return f.state
}

// raised carries a raise from Raise to the Try owning the target frame.
type raised struct {
	frame *Frame
}

func (r raised) Error() string {
	return "catch: raise escaped its protected region: " + r.frame.err.Error()
}

// Stack is the chain of open protected regions of one goroutine.
type Stack struct {
	top   *Frame
	depth int

	panicLogger elmlog.Logger
	exit        func(int)
	metrics     *metrics.Metrics
}

// Option configures a Stack.
type Option func(*Stack)

// WithPanicLogger sets the logger used when a raise finds no region.
func WithPanicLogger(l elmlog.Logger) Option {
	return func(s *Stack) {
		s.panicLogger = l
	}
}

// WithExit replaces os.Exit on the fatal path.
func WithExit(exit func(code int)) Option {
	return func(s *Stack) {
		s.exit = exit
	}
}

// WithMetrics reports raises, catches and fatal raises to m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Stack) {
		s.metrics = m
	}
}

// NewStack creates an empty stack. By default the fatal path logs through a
// copy of the builtin debug logger named PANIC! and calls os.Exit.
func NewStack(opts ...Option) *Stack {
	s := &Stack{
		panicLogger: elmlog.Dbg.Renamed(PanicLoggerName),
		exit:        os.Exit,
		metrics:     metrics.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Establish pushes a new frame and returns it.
func (s *Stack) Establish() *Frame {
	f := &Frame{prev: s.top, state: Established}
	s.top = f
	s.depth++
	return f
}

// Conclude pops f, which must be the top frame, and returns the error
// deposited into it, if any.
func (s *Stack) Conclude(f *Frame) *mdwerror.Error {
	if s.top != f || f == nil {
		panic(ErrNesting)
	}
	s.pop()
	if f.state == Established {
		f.state = Concluded
	}
	err := f.err
	f.err = nil
	return err
}

func (s *Stack) pop() {
	s.top = s.top.prev
	s.depth--
}

// abandon pops every frame down to and including f, if f is open.
func (s *Stack) abandon(f *Frame) {
	open := false
	for cur := s.top; cur != nil; cur = cur.prev {
		if cur == f {
			open = true
			break
		}
	}
	if !open {
		return
	}
	for {
		cur := s.top
		s.pop()
		if cur.state == Established {
			cur.state = Concluded
		}
		if cur == f {
			return
		}
		cur.err.Destroy()
		cur.err = nil
	}
}

// Depth returns the number of open frames.
func (s *Stack) Depth() int {
	return s.depth
}

// Protected reports whether any frame is open.
func (s *Stack) Protected() bool {
	return s.top != nil
}

// Top returns the innermost open frame, or nil.
func (s *Stack) Top() *Frame {
	return s.top
}

// Raise hands err to the innermost open region and does not return. With
// no region open the process terminates.
func (s *Stack) Raise(err *mdwerror.Error) {
	if err == nil {
		panic(ErrNilRaise)
	}
	f := s.top
	if f == nil {
		s.fatal(err)
		return
	}
	f.err = err
	s.metrics.Raise()
	panic(raised{frame: f})
}

// fatal logs err through the panic logger, falling back to the emergency
// channel, and terminates the process.
func (s *Stack) fatal(err *mdwerror.Error) {
	s.metrics.Fatal()

	m := err.Meta()
	text := err.Error()
	if s.panicLogger == nil || s.panicLogger.Discards() {
		emergency.Write(PanicLoggerName, &m, text)
	} else if _, lerr := s.panicLogger.LogError(err); lerr != nil {
		emergency.Write(PanicLoggerName, &m, text)
	}
	err.Destroy()

	s.exit(FatalExitCode)
	panic(fmt.Errorf("%w: %s", ErrUncaught, text))
}
