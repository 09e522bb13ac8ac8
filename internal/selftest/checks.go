// ============================================================================
// elm - Errors, Logging and Allocation
// ============================================================================
//
// Package:     selftest
// Description: Built-in checks covering errors, raising, logging and
//              allocation
// Author:      msto63
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package selftest

import (
	"bytes"
	"fmt"
	"io"
	"syscall"

	"github.com/msto63/elm/foundation/core/alloc"
	"github.com/msto63/elm/foundation/core/catch"
	mdwerror "github.com/msto63/elm/foundation/core/error"
	elmlog "github.com/msto63/elm/foundation/core/log"
	"github.com/msto63/elm/foundation/core/meta"
)

// Checks returns the built-in checks in the order they run
func Checks() []Check {
	return []Check{
		{Name: "errors", Run: testErrors},
		{Name: "error_format", Run: testErrorFormat},
		{Name: "system_error", Run: testSystemError},
		{Name: "logging", Run: testLogging},
		{Name: "debug_logger", Run: testDebugLogger},
		{Name: "log_hiding", Run: testLogHiding},
		{Name: "try_raise", Run: testTryRaise},
		{Name: "recursive_raise", Run: testRecursiveRaise},
		{Name: "alloc", Run: testAlloc},
	}
}

func checkError(t *T, err *mdwerror.Error, kind mdwerror.Kind, text string) bool {
	if !t.Check(err != nil, "err != nil") {
		return false
	}
	if !t.Check(err.Kind() == kind, fmt.Sprintf("kind %s == %s", err.Kind(), kind)) {
		return false
	}
	var buf bytes.Buffer
	n, rerr := err.Render(&buf)
	return t.Check(rerr == nil, "render succeeds") &&
		t.Check(n == len(text), fmt.Sprintf("rendered %d bytes, want %d", n, len(text))) &&
		t.Check(buf.String() == text, fmt.Sprintf("%q == %q", buf.String(), text))
}

func testErrors(t *T) {
	here := meta.Caller(0)
	e := mdwerror.New("goodbye world!")
	defer e.Destroy()

	checkError(t, e, mdwerror.KindMessage, "goodbye world!")
	t.Check(e.Meta().File == here.File, "file recorded")
	t.Check(e.Meta().Func == here.Func, "func recorded")
	t.Check(e.Meta().Line == here.Line+1, "line recorded")
}

func testErrorFormat(t *T) {
	here := meta.Caller(0)
	e := []*mdwerror.Error{
		mdwerror.New("Happy unbirthday!"),
		mdwerror.Newf("%04d every year.", 364),
		mdwerror.Newf("%04d every %xth year.", 365, 4),
	}

	checkError(t, e[0], mdwerror.KindMessage, "Happy unbirthday!")
	checkError(t, e[1], mdwerror.KindMessage, "0364 every year.")
	checkError(t, e[2], mdwerror.KindMessage, "0365 every 4th year.")

	for k, err := range e {
		t.Check(err.Meta().Line == here.Line+2+k, fmt.Sprintf("error %d line recorded", k))
		err.Destroy()
	}
}

func testSystemError(t *T) {
	s := quietStack()

	exists := "pretending: " + syscall.EEXIST.Error()
	e := mdwerror.System(syscall.EEXIST, "pretending")
	checkError(t, e, mdwerror.KindSystem, exists)
	e.Destroy()

	caught := s.Try(func() {
		s.RaiseSystem(syscall.EEXIST, "pretending")
	})
	checkError(t, caught, mdwerror.KindSystem, exists)
	caught.Destroy()

	gone := "gone (hello): " + syscall.ENOENT.Error()
	e = mdwerror.IO("hello", syscall.ENOENT, "gone")
	checkError(t, e, mdwerror.KindSystem, gone)
	e.Destroy()

	caught = s.Try(func() {
		s.RaiseIO("hello", syscall.ENOENT, "gone")
	})
	checkError(t, caught, mdwerror.KindSystem, gone)
	caught.Destroy()
}

func testLogging(t *T) {
	const expected = "TEST: Hello Logs!\n" +
		"TEST: Hello Logs #2!\n" +
		"TEST: -1+4 == 8\n" +
		"TEST: goodbye world!\n"

	var buf bytes.Buffer
	lg := elmlog.New("TEST", &buf, elmlog.WithMetrics(nil))
	defer lg.Release()
	nlg := elmlog.New("NULL_TEST", nil, elmlog.WithMetrics(nil))
	defer nlg.Release()

	prefix := func(size int) bool {
		return buf.Len() == size && buf.String() == expected[:size]
	}

	n, _ := nlg.Printf("Hello Logs!")
	t.Check(n == 0, "null logger writes nothing")
	n, _ = lg.Printf("Hello Logs!")
	t.Check(n == 18, "first line is 18 bytes")
	t.Check(prefix(18), "buffer holds first line")

	nlg.Printf("Hello Logs #%d!", 2)
	lg.Printf("Hello Logs #%d!", 2)
	t.Check(prefix(18+21), "buffer holds second line")

	lg.Unless(4+4 == 8, "4+4 == 8")
	t.Check(prefix(18+21), "true condition logs nothing")
	lg.Unless(-1+4 == 8, "-1+4 == 8")
	t.Check(prefix(18+21+16), "false condition is logged")

	e := mdwerror.NewWith(&greeting{text: "goodbye world!"})
	defer e.Destroy()
	n, _ = nlg.LogError(e)
	t.Check(n == 0, "null logger drops error")
	n, _ = lg.LogError(e)
	t.Check(n == 21, "error line is 21 bytes")
	t.Check(prefix(18+21+16+21), "buffer holds every line")
}

func testDebugLogger(t *T) {
	var buf bytes.Buffer
	lg := elmlog.New("DTEST", &buf, elmlog.WithDebug(), elmlog.WithMetrics(nil))
	defer lg.Release()

	const text = "Eeek, a (pretend) software bug!"
	here := meta.Caller(0)
	lg.Printf(text)
	expect := fmt.Sprintf("DTEST (%s:%d in %s): %s\n", here.File, here.Line+1, here.Func, text)

	t.Check(buf.String() == expect, fmt.Sprintf("%q == %q", buf.String(), expect))
}

func testLogHiding(t *T) {
	before := elmlog.Dbg
	restore := elmlog.HideDebug()
	n, err := elmlog.Dbg.Printf("Look at mee! I'm invisible!")
	restore()

	t.Check(n == 0 && err == nil, "hidden debug logger writes nothing")
	t.Check(elmlog.Dbg == before, "debug logger restored")
}

func testTryRaise(t *T) {
	s := quietStack()

	ran := false
	err := s.Try(func() { ran = true })
	t.Check(ran && err == nil, "normal completion catches nothing")

	var frame *catch.Frame
	err = s.Try(func() {
		frame = s.Top()
		s.Raisef("raised %d", 1)
	})
	if t.Check(err != nil, "raise is caught") {
		t.Check(err.Error() == "raised 1", "caught error text")
		err.Destroy()
	}
	t.Check(frame != nil && frame.State() == catch.Resumed, "frame resumed")
	t.Check(!s.Protected(), "stack empty after try")
}

func testRecursiveRaise(t *T) {
	s := quietStack()

	for run := 0; run < 2; run++ {
		resumed := make([]int, 10)
		nest(t, s, 0, resumed)
		for level, n := range resumed {
			t.Check(n == 1, fmt.Sprintf("run %d level %d resumed once", run, level))
		}
		t.Check(s.Depth() == 0, "stack unwound")
	}
}

const tooFar = "This has gone far enough!"

func nest(t *T, s *catch.Stack, level int, resumed []int) {
	err := s.Try(func() {
		if level < 9 {
			nest(t, s, level+1, resumed)
			t.Check(false, "nested call returned normally")
			return
		}
		s.Raisef(tooFar)
	})
	if !t.Check(err != nil, "nothing caught") {
		return
	}
	resumed[level]++
	t.Check(s.Depth() == level, fmt.Sprintf("depth %d at level %d", s.Depth(), level))

	if level > 0 {
		s.Raise(err)
	}
	err.Destroy()
}

func testAlloc(t *T) {
	for _, n := range []int{128 * 1024, 4 * 1024 * 1024} {
		b := alloc.Zeroed(n)
		t.Check(len(b) == n, "zeroed length")
		b[10] = '5'
		t.Check(b[0] == 0 && b[10] == '5', "zeroed contents")
		for k := n - 1024; k < n; k++ {
			if !t.Check(b[k] == 0, "tail zeroed") {
				break
			}
		}
	}

	s := alloc.Bytes(len("test"))
	copy(s, "test")
	t.Check(string(s) == "test", "bytes copy")
}

// quietStack returns a stack whose fatal path stays silent; checks never
// raise outside a protected region.
func quietStack() *catch.Stack {
	return catch.NewStack(catch.WithPanicLogger(elmlog.Null), catch.WithMetrics(nil))
}

// greeting is a minimal error kind used to exercise NewWith.
type greeting struct {
	text string
}

func (g *greeting) Kind() mdwerror.Kind { return "GREETING" }

func (g *greeting) Render(w io.Writer) (int, error) {
	return io.WriteString(w, g.text)
}

func (g *greeting) Cleanup() {}
