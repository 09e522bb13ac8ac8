// File: entry.go
// Title: Log Entry Structure
// Description: Defines the log entry handed to formatters: the logger name,
//              the rendered message and the provenance of the event.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with comprehensive log entry structure
// - 2026-10-17 v0.2.0: Entries carry provenance and the logged error value

package log

import (
	"time"

	mdwerror "github.com/msto63/elm/foundation/core/error"
	"github.com/msto63/elm/foundation/core/meta"
)

// Entry represents a single log line before formatting
type Entry struct {
	Timestamp time.Time
	Logger    string
	Message   string

	// Caller is the provenance of the event. For LogError it is where the
	// error was constructed, not where it was logged.
	Caller meta.Meta

	// Error is set when the entry was produced by LogError. Formatters may
	// read it but must not keep it: the caller still owns the value.
	Error *mdwerror.Error
}

// NewEntry creates a new log entry for the named logger
func NewEntry(logger string, m meta.Meta, message string) *Entry {
	return &Entry{
		Timestamp: time.Now(),
		Logger:    logger,
		Message:   message,
		Caller:    m,
	}
}

// WithError attaches the error the entry was rendered from
func (e *Entry) WithError(err *mdwerror.Error) *Entry {
	e.Error = err
	return e
}
