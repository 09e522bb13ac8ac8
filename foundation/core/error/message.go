package error

import (
	"io"

	"github.com/msto63/elm/foundation/core/meta"
)

// message is the body of KindMessage errors: free-form text, optionally
// followed by an owned cause.
type message struct {
	text  string
	cause error
}

func (m *message) Kind() Kind {
	return KindMessage
}

func (m *message) Render(w io.Writer) (int, error) {
	switch {
	case m.cause == nil:
		return io.WriteString(w, m.text)
	case m.text == "":
		return io.WriteString(w, m.cause.Error())
	default:
		return io.WriteString(w, m.text+": "+m.cause.Error())
	}
}

func (m *message) Cleanup() {
	if inner, ok := m.cause.(*Error); ok {
		inner.Destroy()
	}
	m.text = ""
	m.cause = nil
}

func (m *message) Unwrap() error {
	return m.cause
}

// MessageAt creates a message error attributed to m. Helpers that build
// errors on their caller's behalf use it to keep the caller's provenance.
func MessageAt(m meta.Meta, text string) *Error {
	return At(m, &message{text: text})
}

// WrapAt is Wrap with explicit provenance. A nil err yields nil.
func WrapAt(m meta.Meta, err error, text string) *Error {
	if err == nil {
		return nil
	}
	return At(m, &message{text: text, cause: err})
}
