package selftest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdwerror "github.com/msto63/elm/foundation/core/error"
)

func TestRunAll(t *testing.T) {
	var out bytes.Buffer

	failures := RunAll(&out)
	require.Zero(t, failures, out.String())

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, len(Checks())+1)
	for i, c := range Checks() {
		assert.Equal(t, "passed: "+c.Name, lines[i])
	}
	assert.Equal(t, "9 checks, 0 failed", lines[len(lines)-1])
}

func TestRunReportsFailures(t *testing.T) {
	var out bytes.Buffer

	failures := Run(&out, []Check{
		{Name: "good", Run: func(t *T) { t.Check(true, "true") }},
		{Name: "bad", Run: func(t *T) { t.Check(1+1 == 3, "1+1 == 3") }},
	})

	assert.Equal(t, 1, failures)
	assert.Contains(t, out.String(), "passed: good\n")
	assert.Contains(t, out.String(), "FAILED: selftest_test.go:")
	assert.Contains(t, out.String(), ":bad <1+1 == 3>\n")
	assert.NotContains(t, out.String(), "passed: bad")
	assert.Contains(t, out.String(), "2 checks, 1 failed")
}

func TestRunRecoversPanics(t *testing.T) {
	var out bytes.Buffer

	failures := Run(&out, []Check{
		{Name: "boom", Run: func(t *T) { panic("kaboom") }},
	})

	assert.Equal(t, 1, failures)
	assert.Contains(t, out.String(), "<panic: kaboom>")
}

func TestRunDetectsLeaks(t *testing.T) {
	var out bytes.Buffer
	var leaked *mdwerror.Error

	failures := Run(&out, []Check{
		{Name: "leaky", Run: func(t *T) { leaked = mdwerror.New("forgotten") }},
	})
	leaked.Destroy()

	assert.Equal(t, 1, failures)
	assert.Contains(t, out.String(), "<1 error values leaked>")
}

func TestChecksNamed(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range Checks() {
		assert.NotEmpty(t, c.Name)
		assert.False(t, seen[c.Name], "duplicate check %s", c.Name)
		seen[c.Name] = true
	}
}
