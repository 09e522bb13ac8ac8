// File: shared.go
// Title: Shared Loggers
// Description: User-created loggers with an atomic reference count. The sink
//              is closed when the last reference is released.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package log

import (
	"io"
	"sync/atomic"

	"github.com/msto63/elm/foundation/core/emergency"
	mdwerror "github.com/msto63/elm/foundation/core/error"
	"github.com/msto63/elm/foundation/core/meta"
	"github.com/msto63/elm/foundation/core/metrics"
)

// Shared is a reference-counted logger created with New.
type Shared struct {
	sink
	refs atomic.Int64
}

// Option configures a Shared logger
type Option func(*Shared)

// WithFormat selects one of the predefined formats
func WithFormat(format Format) Option {
	return func(l *Shared) {
		l.formatter = GetFormatter(format)
	}
}

// WithFormatter installs a custom formatter
func WithFormatter(f Formatter) Option {
	return func(l *Shared) {
		l.formatter = f
	}
}

// WithDebug adds provenance to every line
func WithDebug() Option {
	return WithFormat(FormatDebug)
}

// WithMetrics reports throughput and failures to m; nil disables reporting
func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Shared) {
		l.metrics = m
	}
}

// ParseOptions translates an option string into options. The only letter
// understood is 'd', which selects the debug prefix.
func ParseOptions(s string) ([]Option, error) {
	var opts []Option
	for _, r := range s {
		switch r {
		case 'd':
			opts = append(opts, WithDebug())
		default:
			return nil, &ParseError{Input: string(r), Type: "option"}
		}
	}
	return opts, nil
}

// New creates a logger named name writing to w. A nil w yields a logger that
// discards everything. The returned handle holds one reference.
func New(name string, w io.Writer, opts ...Option) *Shared {
	l := &Shared{sink: sink{
		name:      name,
		formatter: PlainFormatter{},
		metrics:   metrics.Default(),
		out:       w,
	}}
	for _, opt := range opts {
		opt(l)
	}
	l.refs.Store(1)
	return l
}

// Logf logs a formatted message attributed to m.
func (l *Shared) Logf(m meta.Meta, format string, args ...interface{}) (int, error) {
	return l.logf(m, format, args)
}

// Printf logs a formatted message attributed to the caller.
func (l *Shared) Printf(format string, args ...interface{}) (int, error) {
	return l.logf(meta.Caller(1), format, args)
}

// LogError logs err attributed to where it was created. err is not destroyed.
func (l *Shared) LogError(err *mdwerror.Error) (int, error) {
	return l.logError(err)
}

// Unless logs text when cond is false.
func (l *Shared) Unless(cond bool, text string) (int, error) {
	if cond {
		return 0, nil
	}
	return l.emit(meta.Caller(1), text, nil, func() (string, error) { return text, nil })
}

// Retain adds a reference and returns l. Retaining a released logger does
// not revive it.
func (l *Shared) Retain() *Shared {
	for {
		n := l.refs.Load()
		if n <= 0 || l.refs.CompareAndSwap(n, n+1) {
			return l
		}
	}
}

// Release drops a reference. The last release closes the sink if it is an
// io.Closer; later writes return ErrReleased. Extra releases are ignored.
func (l *Shared) Release() {
	for {
		n := l.refs.Load()
		if n <= 0 {
			return
		}
		if l.refs.CompareAndSwap(n, n-1) {
			if n == 1 {
				l.close()
			}
			return
		}
	}
}

// Refs returns the current reference count.
func (l *Shared) Refs() int {
	return int(l.refs.Load())
}

func (l *Shared) close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.closed = true
	if c, ok := l.out.(io.Closer); ok {
		if err := c.Close(); err != nil {
			emergency.Write("LOGFAILED", nil, "closing logger "+l.name+": "+err.Error())
		}
	}
	l.out = nil
}
