// ============================================================================
// elm - Errors, Logging and Allocation
// ============================================================================
//
// Package:     selftest
// Description: Runs the library's behavioural checks against the live
//              runtime and reports passed/FAILED lines
// Author:      msto63
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package selftest

import (
	"fmt"
	"io"

	"github.com/msto63/elm/foundation/core/alloc"
	"github.com/msto63/elm/foundation/core/meta"
)

// Check is one named scenario
type Check struct {
	Name string
	Run  func(t *T)
}

// T records the outcome of one check
type T struct {
	name   string
	out    io.Writer
	styles styles
	failed bool
}

// Check reports a failure when ok is false and returns ok. expr describes
// the condition that was expected to hold.
func (t *T) Check(ok bool, expr string) bool {
	if ok {
		return true
	}
	m := meta.Caller(1)
	t.failed = true
	fmt.Fprintf(t.out, "%s %s:%d:%s <%s>\n", t.styles.failed.Render("FAILED:"), m.File, m.Line, t.name, expr)
	return false
}

// Failed reports whether any check failed
func (t *T) Failed() bool {
	return t.failed
}

// Run executes checks in order, writing one line per check to out, and
// returns the number of failed checks.
func Run(out io.Writer, checks []Check) int {
	st := newStyles(out)
	failures := 0

	for _, c := range checks {
		t := &T{name: c.Name, out: out, styles: st}
		runOne(t, c)
		if t.failed {
			failures++
			continue
		}
		fmt.Fprintf(out, "%s %s\n", st.passed.Render("passed:"), c.Name)
	}

	fmt.Fprintln(out, st.summary.Render(fmt.Sprintf("%d checks, %d failed", len(checks), failures)))
	return failures
}

// runOne runs c, turning a panic or a leaked error value into a failure of
// that check.
func runOne(t *T, c Check) {
	live := alloc.Default().Live()
	defer func() {
		if r := recover(); r != nil {
			t.Check(false, fmt.Sprintf("panic: %v", r))
			return
		}
		if leaked := alloc.Default().Live() - live; leaked != 0 {
			t.Check(false, fmt.Sprintf("%d error values leaked", leaked))
		}
	}()
	c.Run(t)
}

// RunAll runs the built-in checks
func RunAll(out io.Writer) int {
	return Run(out, Checks())
}
