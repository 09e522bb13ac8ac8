package logging

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	elmlog "github.com/msto63/elm/foundation/core/log"
	"github.com/msto63/elm/pkg/core/config"
)

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	l, err := NewLogger(config.LoggerConfig{
		Name:   "APP",
		Output: "file:" + path,
		Format: "plain",
	}, elmlog.WithMetrics(nil))
	require.NoError(t, err)

	n, err := l.Printf("Hello %s", "world")
	require.NoError(t, err)
	assert.Equal(t, len("APP: Hello world\n"), n)
	l.Release()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "APP: Hello world\n", string(data))
}

func TestNewLogger_FileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, os.WriteFile(path, []byte("existing\n"), 0644))

	l, err := NewLogger(config.LoggerConfig{Name: "APP", Output: "file:" + path}, elmlog.WithMetrics(nil))
	require.NoError(t, err)
	_, err = l.Printf("more")
	require.NoError(t, err)
	l.Release()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "existing\nAPP: more\n", string(data))
}

func TestNewLogger_DebugOption(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	l, err := NewLogger(config.LoggerConfig{
		Name:    "APP",
		Output:  "file:" + path,
		Options: "d",
	}, elmlog.WithMetrics(nil))
	require.NoError(t, err)
	_, err = l.Printf("traced")
	require.NoError(t, err)
	l.Release()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "APP (factory_test.go:")
	assert.Contains(t, string(data), "): traced\n")
}

func TestNewLogger_Discard(t *testing.T) {
	l, err := NewLogger(config.LoggerConfig{Name: "QUIET", Output: "discard"}, elmlog.WithMetrics(nil))
	require.NoError(t, err)
	defer l.Release()

	assert.True(t, l.Discards())
	n, err := l.Printf("nothing")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestNewLogger_Archive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")

	l, err := NewLogger(config.LoggerConfig{
		Name:          "ARCH",
		Output:        "archive:" + path,
		FlushInterval: config.Duration{Duration: time.Hour},
	}, elmlog.WithMetrics(nil))
	require.NoError(t, err)

	_, err = l.Printf("stored %d", 1)
	require.NoError(t, err)
	_, err = l.Printf("stored %d", 2)
	require.NoError(t, err)
	l.Release()

	r := newTestArchive(t, ArchiveWriterConfig{Path: path, FlushPeriod: time.Hour})
	lines, err := r.Query(context.Background(), ArchiveFilter{Logger: "ARCH"})
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "ARCH: stored 1", lines[0].Line)
	assert.Equal(t, "ARCH: stored 2", lines[1].Line)
}

func TestNewLogger_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.LoggerConfig
	}{
		{"bad format", config.LoggerConfig{Name: "A", Output: "stderr", Format: "xml"}},
		{"bad option", config.LoggerConfig{Name: "A", Output: "stderr", Options: "q"}},
		{"bad output", config.LoggerConfig{Name: "A", Output: "socket"}},
		{"file without path", config.LoggerConfig{Name: "A", Output: "file"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewLogger(tt.cfg)
			assert.Error(t, err)
			assert.Nil(t, l)
			assert.Contains(t, err.Error(), "logger A")
		})
	}
}

func TestNewLogger_StdStreams(t *testing.T) {
	for _, output := range []string{"stdout", "stderr"} {
		l, err := NewLogger(config.LoggerConfig{Name: "STD", Output: output}, elmlog.WithMetrics(nil))
		require.NoError(t, err)
		assert.False(t, l.Discards())
		// Releasing must not close the process streams.
		l.Release()
	}
	_, err := os.Stderr.Write(nil)
	assert.NoError(t, err)
}
