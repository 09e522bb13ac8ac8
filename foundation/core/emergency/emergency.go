// File: emergency.go
// Title: Emergency Output Channel
// Description: Raw, unbuffered diagnostics to standard error for the cases
//              where the regular logging path has failed or the process is
//              about to terminate.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

// Package emergency writes last-resort diagnostics straight to standard
// error. It performs no formatting beyond string concatenation and holds no
// buffers, so it keeps working when loggers or the allocator do not.
package emergency

import (
	"io"
	"os"
	"sync"

	"github.com/msto63/elm/foundation/core/meta"
)

var (
	mu  sync.Mutex
	out io.Writer = os.Stderr
)

// SetOutput redirects emergency messages, returning a function that restores
// the previous destination. Intended for tests.
func SetOutput(w io.Writer) (restore func()) {
	mu.Lock()
	prev := out
	out = w
	mu.Unlock()
	return func() {
		mu.Lock()
		out = prev
		mu.Unlock()
	}
}

// Write emits "<prefix> (in <file>:<func>): <msg>\n". The location clause is
// left out when m is nil. Write errors are ignored: there is nowhere left to
// report them.
func Write(prefix string, m *meta.Meta, msg string) {
	mu.Lock()
	defer mu.Unlock()

	write(prefix)
	if m != nil {
		write(" (in ")
		write(m.File)
		write(":")
		write(m.Func)
		write(")")
	}
	write(": ")
	write(msg)
	write("\n")

	if s, ok := out.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
}

func write(s string) {
	_, _ = io.WriteString(out, s)
}
