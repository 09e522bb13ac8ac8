package alloc

import (
	"bytes"
	"errors"
	"strings"
	"syscall"
	"testing"

	"github.com/google/uuid"

	"github.com/msto63/elm/foundation/core/emergency"
	"github.com/msto63/elm/foundation/core/meta"
)

type exitCode int

// captureExit makes PanicNoMem observable in-process: the exit hook panics
// with the requested status, which expectExit recovers.
func captureExit(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	restoreOut := emergency.SetOutput(&buf)
	restoreExit := SetExit(func(code int) { panic(exitCode(code)) })
	t.Cleanup(func() {
		restoreExit()
		restoreOut()
	})
	return &buf
}

func expectExit(t *testing.T, want int, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		code, ok := r.(exitCode)
		if !ok {
			t.Fatalf("expected exit, recovered %v", r)
		}
		if int(code) != want {
			t.Errorf("exit code = %d, want %d", code, want)
		}
	}()
	fn()
}

func TestBytes(t *testing.T) {
	n := 128 * 1024
	b := Zeroed(n)

	if len(b) != n {
		t.Fatalf("len = %d, want %d", len(b), n)
	}
	b[10] = '5'
	if b[0] != 0 || b[10] != '5' {
		t.Error("unexpected contents")
	}
	for k := n - 1024; k < n; k++ {
		if b[k] != 0 {
			t.Fatalf("byte %d not zeroed", k)
		}
	}

	s := Bytes(len("test"))
	copy(s, "test")
	if string(s) != "test" {
		t.Errorf("Bytes() content = %q", s)
	}
}

func TestBytesOverLimit(t *testing.T) {
	buf := captureExit(t)
	restore := SetMaxBytes(1024)
	defer restore()

	expectExit(t, int(syscall.ENOMEM), func() {
		Bytes(2048)
	})

	out := buf.String()
	if !strings.HasPrefix(out, "NOMEM (in alloc_test.go:") {
		t.Errorf("emergency output = %q", out)
	}
	if !strings.HasSuffix(out, ": Out of virtual memory\n") {
		t.Errorf("emergency output = %q", out)
	}
}

func TestBytesNegative(t *testing.T) {
	captureExit(t)
	expectExit(t, int(syscall.ENOMEM), func() {
		Zeroed(-1)
	})
}

func TestPanicNoMemNeverReturns(t *testing.T) {
	captureExit(t)
	restore := SetExit(func(int) {})
	defer restore()

	defer func() {
		if r := recover(); r != ErrNoMem {
			t.Errorf("recovered %v, want ErrNoMem", r)
		}
	}()
	PanicNoMem(meta.Caller(0))
}

func TestTrackerAcquireRelease(t *testing.T) {
	tr := NewTracker()

	a := tr.Acquire(meta.Meta{File: "b.go", Line: 2})
	b := tr.Acquire(meta.Meta{File: "a.go", Line: 9})

	if tr.Live() != 2 {
		t.Fatalf("Live() = %d, want 2", tr.Live())
	}
	if a == b {
		t.Error("ids should be unique")
	}

	leaks := tr.Leaks()
	if len(leaks) != 2 || leaks[0].File != "a.go" {
		t.Errorf("Leaks() = %v", leaks)
	}

	tr.Release(a)
	tr.Release(b)

	st := tr.Stats()
	if st.Live != 0 || st.Acquired != 2 || st.Released != 2 {
		t.Errorf("Stats() = %+v", st)
	}
}

func TestTrackerDoubleRelease(t *testing.T) {
	tr := NewTracker()
	id := tr.Acquire(meta.Meta{})
	tr.Release(id)

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrUnknownAllocation) {
			t.Errorf("recovered %v, want ErrUnknownAllocation", r)
		}
	}()
	tr.Release(id)
}

func TestTrackerReleaseUnknown(t *testing.T) {
	tr := NewTracker()
	defer func() {
		if recover() == nil {
			t.Error("releasing an unknown id should panic")
		}
	}()
	tr.Release(uuid.New())
}

func TestTrackerLimit(t *testing.T) {
	buf := captureExit(t)
	tr := NewTracker(WithLimit(2))

	tr.Acquire(meta.Meta{})
	tr.Acquire(meta.Meta{})
	expectExit(t, int(syscall.ENOMEM), func() {
		tr.Acquire(meta.Meta{Func: "grow", File: "grow.go", Line: 3})
	})

	if got := buf.String(); got != "NOMEM (in grow.go:grow): Out of virtual memory\n" {
		t.Errorf("emergency output = %q", got)
	}
	if tr.Live() != 2 {
		t.Errorf("Live() = %d, want 2", tr.Live())
	}
}

func TestSetDefault(t *testing.T) {
	orig := Default()
	tr := NewTracker()

	restore := SetDefault(tr)
	if Default() != tr {
		t.Error("SetDefault() did not install tracker")
	}
	restore()

	if Default() != orig {
		t.Error("restore did not reinstate previous tracker")
	}
}
