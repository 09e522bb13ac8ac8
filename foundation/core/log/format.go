// File: format.go
// Title: Log Format Definitions
// Description: Defines the line formats loggers can produce: the plain and
//              debug prefixes plus the structured JSON and logfmt variants.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with multiple output formats
// - 2026-10-17 v0.2.0: Plain and debug prefixes, provenance in every format

package log

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Format represents the output format for log messages
type Format int

const (
	// FormatPlain prefixes each line with the logger name
	FormatPlain Format = iota

	// FormatDebug prefixes each line with the logger name and provenance
	FormatDebug

	// FormatJSON outputs one JSON object per line
	FormatJSON

	// FormatLogfmt outputs logfmt structured logs (key=value pairs)
	FormatLogfmt
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatPlain:
		return "plain"
	case FormatDebug:
		return "debug"
	case FormatJSON:
		return "json"
	case FormatLogfmt:
		return "logfmt"
	default:
		return "unknown"
	}
}

// ParseError represents an error parsing a log configuration value
type ParseError struct {
	Input string
	Type  string
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return "invalid " + e.Type + ": " + e.Input
}

// ParseFormat parses a string into a log format. The empty string selects
// FormatPlain.
func ParseFormat(format string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "plain":
		return FormatPlain, nil
	case "debug":
		return FormatDebug, nil
	case "json":
		return FormatJSON, nil
	case "logfmt":
		return FormatLogfmt, nil
	default:
		return FormatPlain, &ParseError{
			Input: format,
			Type:  "format",
		}
	}
}

// Formatter renders an entry into one complete line, trailing newline
// included.
type Formatter interface {
	Format(entry *Entry) ([]byte, error)
}

// PlainFormatter produces "<name>: <message>\n"
type PlainFormatter struct{}

// Format formats a log entry with the name-only prefix
func (PlainFormatter) Format(entry *Entry) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(entry.Logger) + len(entry.Message) + 3)
	buf.WriteString(entry.Logger)
	buf.WriteString(": ")
	buf.WriteString(entry.Message)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// DebugFormatter produces "<name> (<file>:<line> in <func>): <message>\n"
type DebugFormatter struct{}

// Format formats a log entry with the name and provenance prefix
func (DebugFormatter) Format(entry *Entry) ([]byte, error) {
	var buf bytes.Buffer
	_, err := fmt.Fprintf(&buf, "%s (%s:%d in %s): %s\n",
		entry.Logger, entry.Caller.File, entry.Caller.Line, entry.Caller.Func, entry.Message)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// JSONFormatter formats log entries as JSON
type JSONFormatter struct {
	// TimestampFormat specifies the timestamp format
	TimestampFormat string
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{
		TimestampFormat: time.RFC3339,
	}
}

// Format formats a log entry as JSON
func (f *JSONFormatter) Format(entry *Entry) ([]byte, error) {
	data := map[string]interface{}{
		"timestamp": entry.Timestamp.Format(f.TimestampFormat),
		"logger":    entry.Logger,
		"message":   entry.Message,
	}

	if !entry.Caller.IsZero() {
		data["caller"] = entry.Caller
	}

	if entry.Error != nil {
		data["error_kind"] = entry.Error.Kind().String()
		data["error_id"] = entry.Error.ID().String()
	}

	line, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return append(line, '\n'), nil
}

// LogfmtFormatter formats log entries in logfmt format (key=value pairs)
type LogfmtFormatter struct {
	// TimestampFormat specifies the timestamp format
	TimestampFormat string
}

// NewLogfmtFormatter creates a new logfmt formatter
func NewLogfmtFormatter() *LogfmtFormatter {
	return &LogfmtFormatter{
		TimestampFormat: time.RFC3339,
	}
}

// Format formats a log entry in logfmt format
func (f *LogfmtFormatter) Format(entry *Entry) ([]byte, error) {
	parts := []string{
		"timestamp=" + entry.Timestamp.Format(f.TimestampFormat),
		"logger=" + strconv.Quote(entry.Logger),
		"message=" + strconv.Quote(entry.Message),
	}

	if !entry.Caller.IsZero() {
		parts = append(parts,
			"file="+entry.Caller.File,
			"line="+strconv.Itoa(entry.Caller.Line),
			"func="+strconv.Quote(entry.Caller.Func))
	}

	if entry.Error != nil {
		parts = append(parts, "error_kind="+entry.Error.Kind().String())
	}

	return []byte(strings.Join(parts, " ") + "\n"), nil
}

// GetFormatter returns a formatter for the specified format
func GetFormatter(format Format) Formatter {
	switch format {
	case FormatDebug:
		return DebugFormatter{}
	case FormatJSON:
		return NewJSONFormatter()
	case FormatLogfmt:
		return NewLogfmtFormatter()
	default:
		return PlainFormatter{}
	}
}
