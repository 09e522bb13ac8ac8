// File: meta.go
// Title: Source Location Metadata
// Description: Defines the Meta record that error values, log entries and
//              emergency messages carry to describe where they were created.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

// Package meta records the source location (function, file, line) at which
// an event such as an error construction or a log call happened.
package meta

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// Meta holds the provenance of an event.
type Meta struct {
	Func string `json:"func"`
	File string `json:"file"`
	Line int    `json:"line"`
}

// Caller returns the provenance of the caller skip frames above Caller's
// caller. Caller(0) describes the function that called Caller.
func Caller(skip int) Meta {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Meta{Func: "unknown", File: "unknown"}
	}
	return Meta{
		Func: funcName(pc),
		File: filepath.Base(file),
		Line: line,
	}
}

// funcName trims the package path from a fully qualified function name,
// so "github.com/x/y/pkg.(*T).Method" becomes "(*T).Method".
func funcName(pc uintptr) string {
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown"
	}
	name := fn.Name()
	if idx := strings.LastIndex(name, "/"); idx != -1 {
		name = name[idx+1:]
	}
	if idx := strings.Index(name, "."); idx != -1 {
		name = name[idx+1:]
	}
	return name
}

// IsZero reports whether no location was recorded.
func (m Meta) IsZero() bool {
	return m.Func == "" && m.File == "" && m.Line == 0
}

// String renders the location as "file:line in func".
func (m Meta) String() string {
	return fmt.Sprintf("%s:%d in %s", m.File, m.Line, m.Func)
}
