package log

import (
	"io"
	"os"
)

// stdWriter forwards to a standard stream. It is not an io.Closer, so
// releasing a Shared logger built on it leaves the stream open.
type stdWriter struct {
	f *os.File
}

func (w stdWriter) Write(p []byte) (int, error) {
	return w.f.Write(p)
}

func (w stdWriter) Sync() error {
	return w.f.Sync()
}

var (
	osStdout io.Writer = stdWriter{os.Stdout}
	osStderr io.Writer = stdWriter{os.Stderr}
)

// Stdout returns a non-closing writer for standard output.
func Stdout() io.Writer {
	return osStdout
}

// Stderr returns a non-closing writer for standard error.
func Stderr() io.Writer {
	return osStderr
}
