package emergency

import (
	"bytes"
	"testing"

	"github.com/msto63/elm/foundation/core/meta"
)

func TestWrite(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		meta   *meta.Meta
		msg    string
		want   string
	}{
		{
			name:   "with location",
			prefix: "LOGFAILED",
			meta:   &meta.Meta{Func: "test_logging", File: "test_elm.go", Line: 12},
			msg:    "Hello Logs!",
			want:   "LOGFAILED (in test_elm.go:test_logging): Hello Logs!\n",
		},
		{
			name:   "without location",
			prefix: "NOMEM",
			msg:    "Out of virtual memory",
			want:   "NOMEM: Out of virtual memory\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			restore := SetOutput(&buf)
			defer restore()

			Write(tt.prefix, tt.meta, tt.msg)

			if got := buf.String(); got != tt.want {
				t.Errorf("Write() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSetOutputRestore(t *testing.T) {
	var first, second bytes.Buffer

	restoreFirst := SetOutput(&first)
	restoreSecond := SetOutput(&second)
	Write("A", nil, "one")
	restoreSecond()
	Write("B", nil, "two")
	restoreFirst()

	if second.String() != "A: one\n" {
		t.Errorf("second = %q", second.String())
	}
	if first.String() != "B: two\n" {
		t.Errorf("first = %q", first.String())
	}
}
