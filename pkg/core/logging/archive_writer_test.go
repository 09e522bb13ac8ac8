package logging

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestArchive(t *testing.T, cfg ArchiveWriterConfig) *ArchiveWriter {
	t.Helper()
	if cfg.Path == "" {
		cfg.Path = filepath.Join(t.TempDir(), "archive", "log.db")
	}
	w, err := NewArchiveWriter(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func TestNewArchiveWriter_RequiresPath(t *testing.T) {
	_, err := NewArchiveWriter(ArchiveWriterConfig{})
	assert.Error(t, err)
}

func TestArchiveWriter_WriteFlushQuery(t *testing.T) {
	var fallback bytes.Buffer
	w := newTestArchive(t, ArchiveWriterConfig{
		Logger:      "TEST",
		Session:     "session-1",
		FlushPeriod: time.Hour,
		Fallback:    &fallback,
	})

	n, err := w.Write([]byte("first line\nsecond line\n"))
	require.NoError(t, err)
	assert.Equal(t, 24, n)
	assert.Equal(t, "first line\nsecond line\n", fallback.String())

	_, err = w.Write([]byte("third line\n"))
	require.NoError(t, err)
	require.NoError(t, w.Flush())

	lines, err := w.Query(context.Background(), ArchiveFilter{})
	require.NoError(t, err)
	require.Len(t, lines, 3)

	assert.Equal(t, "first line", lines[0].Line)
	assert.Equal(t, "second line", lines[1].Line)
	assert.Equal(t, "third line", lines[2].Line)
	for _, l := range lines {
		assert.Equal(t, "TEST", l.Logger)
		assert.Equal(t, "session-1", l.Session)
		assert.NotEmpty(t, l.ID)
		assert.False(t, l.CreatedAt.IsZero())
	}
	assert.NotEqual(t, lines[0].ID, lines[1].ID)
}

func TestArchiveWriter_QueryLimitReturnsMostRecent(t *testing.T) {
	w := newTestArchive(t, ArchiveWriterConfig{Logger: "TEST", FlushPeriod: time.Hour})

	for _, line := range []string{"a\n", "b\n", "c\n", "d\n"} {
		_, err := w.Write([]byte(line))
		require.NoError(t, err)
	}
	require.NoError(t, w.Flush())

	lines, err := w.Query(context.Background(), ArchiveFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "c", lines[0].Line)
	assert.Equal(t, "d", lines[1].Line)
}

func TestArchiveWriter_QueryFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.db")

	one := newTestArchive(t, ArchiveWriterConfig{Path: path, Logger: "ONE", FlushPeriod: time.Hour})
	_, err := one.Write([]byte("from one\n"))
	require.NoError(t, err)
	require.NoError(t, one.Flush())

	two := newTestArchive(t, ArchiveWriterConfig{Path: path, Logger: "TWO", FlushPeriod: time.Hour})
	_, err = two.Write([]byte("from two\n"))
	require.NoError(t, err)
	require.NoError(t, two.Flush())

	ctx := context.Background()

	lines, err := two.Query(ctx, ArchiveFilter{Logger: "ONE"})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "from one", lines[0].Line)

	lines, err = one.Query(ctx, ArchiveFilter{Session: two.Session()})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "from two", lines[0].Line)

	assert.NotEqual(t, one.Session(), two.Session())
}

func TestArchiveWriter_BatchTriggersFlush(t *testing.T) {
	w := newTestArchive(t, ArchiveWriterConfig{BatchSize: 2, FlushPeriod: time.Hour})

	_, err := w.Write([]byte("x\ny\n"))
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		lines, err := w.Query(context.Background(), ArchiveFilter{})
		return err == nil && len(lines) == 2
	}, 5*time.Second, 10*time.Millisecond)
}

func TestArchiveWriter_CloseStoresRemaining(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.db")

	w, err := NewArchiveWriter(ArchiveWriterConfig{Path: path, FlushPeriod: time.Hour})
	require.NoError(t, err)
	_, err = w.Write([]byte("pending\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	r := newTestArchive(t, ArchiveWriterConfig{Path: path, FlushPeriod: time.Hour})
	lines, err := r.Query(context.Background(), ArchiveFilter{})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "pending", lines[0].Line)
}

func TestArchiveWriter_Prune(t *testing.T) {
	w := newTestArchive(t, ArchiveWriterConfig{FlushPeriod: time.Hour})

	_, err := w.Write([]byte("old\n"))
	require.NoError(t, err)
	require.NoError(t, w.Flush())

	n, err := w.Prune(context.Background(), time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	n, err = w.Prune(context.Background(), -time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
