package meta

import (
	"strings"
	"testing"
)

func TestCaller(t *testing.T) {
	m := Caller(0)

	if m.File != "meta_test.go" {
		t.Errorf("File = %q, want meta_test.go", m.File)
	}
	if m.Func != "TestCaller" {
		t.Errorf("Func = %q, want TestCaller", m.Func)
	}
	if m.Line == 0 {
		t.Error("Line should not be zero")
	}
}

func helper() Meta {
	return Caller(1)
}

func TestCallerSkip(t *testing.T) {
	m := helper()
	if m.Func != "TestCallerSkip" {
		t.Errorf("Func = %q, want TestCallerSkip", m.Func)
	}
}

func TestCallerMethodName(t *testing.T) {
	var r recorder
	m := r.record()
	if !strings.HasSuffix(m.Func, "record") {
		t.Errorf("Func = %q, want suffix record", m.Func)
	}
	if strings.Contains(m.Func, "/") {
		t.Errorf("Func = %q should not contain a package path", m.Func)
	}
}

type recorder struct{}

func (recorder) record() Meta { return Caller(0) }

func TestMetaString(t *testing.T) {
	m := Meta{Func: "main", File: "main.go", Line: 7}
	if got := m.String(); got != "main.go:7 in main" {
		t.Errorf("String() = %q", got)
	}
}

func TestMetaIsZero(t *testing.T) {
	if !(Meta{}).IsZero() {
		t.Error("empty Meta should be zero")
	}
	if (Meta{Line: 1}).IsZero() {
		t.Error("Meta with a line should not be zero")
	}
}
