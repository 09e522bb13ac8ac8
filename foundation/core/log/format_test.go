// File: format_test.go
// Title: Format Tests
// Description: Tests for the plain, debug, JSON and logfmt formatters.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with comprehensive format tests
// - 2026-10-17 v0.2.0: Plain and debug prefixes

package log

import (
	"encoding/json"
	"fmt"
	"strings"
	"syscall"
	"testing"
	"time"

	mdwerror "github.com/msto63/elm/foundation/core/error"
	"github.com/msto63/elm/foundation/core/meta"
)

func testEntry() *Entry {
	e := NewEntry("TEST", meta.Meta{Func: "main", File: "main.go", Line: 7}, "Hello Logs!")
	e.Timestamp = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	return e
}

func TestFormatString(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatPlain, "plain"},
		{FormatDebug, "debug"},
		{FormatJSON, "json"},
		{FormatLogfmt, "logfmt"},
		{Format(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.format.String(); got != tt.want {
				t.Errorf("Format.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"plain", FormatPlain, false},
		{"debug", FormatDebug, false},
		{"json", FormatJSON, false},
		{"logfmt", FormatLogfmt, false},
		{"JSON", FormatJSON, false},
		{"  debug  ", FormatDebug, false},
		{"", FormatPlain, false},
		{"console", FormatPlain, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlainFormatter(t *testing.T) {
	out, err := PlainFormatter{}.Format(testEntry())
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if got, want := string(out), "TEST: Hello Logs!\n"; got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestDebugFormatter(t *testing.T) {
	out, err := DebugFormatter{}.Format(testEntry())
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if got, want := string(out), "TEST (main.go:7 in main): Hello Logs!\n"; got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestJSONFormatter(t *testing.T) {
	e := mdwerror.System(syscall.EEXIST, "pretending")
	defer e.Destroy()

	entry := testEntry().WithError(e)
	out, err := NewJSONFormatter().Format(entry)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.HasSuffix(string(out), "\n") {
		t.Error("JSON line should end with a newline")
	}

	var data map[string]interface{}
	if err := json.Unmarshal(out, &data); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if data["logger"] != "TEST" || data["message"] != "Hello Logs!" {
		t.Errorf("data = %v", data)
	}
	if data["timestamp"] != "2026-10-17T12:00:00Z" {
		t.Errorf("timestamp = %v", data["timestamp"])
	}
	if data["error_kind"] != "SYSTEM" {
		t.Errorf("error_kind = %v", data["error_kind"])
	}
	caller, ok := data["caller"].(map[string]interface{})
	if !ok || caller["file"] != "main.go" || caller["line"] != float64(7) {
		t.Errorf("caller = %v", data["caller"])
	}
}

func TestLogfmtFormatter(t *testing.T) {
	out, err := NewLogfmtFormatter().Format(testEntry())
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := `timestamp=2026-10-17T12:00:00Z logger="TEST" message="Hello Logs!" file=main.go line=7 func="main"` + "\n"
	if string(out) != want {
		t.Errorf("Format() = %q, want %q", out, want)
	}
}

func TestGetFormatter(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatPlain, "log.PlainFormatter"},
		{FormatDebug, "log.DebugFormatter"},
		{FormatJSON, "*log.JSONFormatter"},
		{FormatLogfmt, "*log.LogfmtFormatter"},
		{Format(42), "log.PlainFormatter"},
	}

	for _, tt := range tests {
		if got := fmt.Sprintf("%T", GetFormatter(tt.format)); got != tt.want {
			t.Errorf("GetFormatter(%v) = %v, want %v", tt.format, got, tt.want)
		}
	}
}
