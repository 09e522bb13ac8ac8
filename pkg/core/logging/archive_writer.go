// ============================================================================
// elm - Errors, Logging and Allocation
// ============================================================================
//
// Package:     logging
// Description: ArchiveWriter persists log lines in a SQLite database
// Author:      msto63
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package logging

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// ArchiveLine is one stored log line
type ArchiveLine struct {
	ID        string
	Session   string
	Logger    string
	Line      string
	CreatedAt time.Time
}

// ArchiveFilter selects stored lines. Zero fields match everything.
type ArchiveFilter struct {
	Logger  string
	Session string
	Limit   int
}

// ArchiveWriterConfig holds configuration for ArchiveWriter
type ArchiveWriterConfig struct {
	Path        string        // SQLite database file
	Logger      string        // Logger name stored with every line
	Session     string        // Session id (default: random UUID)
	BatchSize   int           // Lines buffered before a flush is triggered (default: 64)
	FlushPeriod time.Duration // How often to flush (default: 1s)
	Fallback    io.Writer     // Receives every line before it is buffered (optional)
}

// ArchiveWriter implements io.Writer and stores every line in the
// log_lines table. Lines are buffered and written in one transaction per
// flush; Flush forces a synchronous write.
type ArchiveWriter struct {
	db          *sql.DB
	logger      string
	session     string
	batchSize   int
	flushPeriod time.Duration

	// Batching
	buffer   []ArchiveLine
	bufferMu sync.Mutex
	dbMu     sync.Mutex
	flushCh  chan struct{}
	stopCh   chan struct{}
	doneCh   chan struct{}

	fallback  io.Writer
	closeOnce sync.Once
	closeErr  error
}

// NewArchiveWriter opens (creating if needed) the database at cfg.Path and
// starts the flush worker.
func NewArchiveWriter(cfg ArchiveWriterConfig) (*ArchiveWriter, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("archive path is required")
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 64
	}
	if cfg.FlushPeriod <= 0 {
		cfg.FlushPeriod = time.Second
	}
	if cfg.Session == "" {
		cfg.Session = uuid.NewString()
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// Open database with WAL mode
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	w := &ArchiveWriter{
		db:          db,
		logger:      cfg.Logger,
		session:     cfg.Session,
		batchSize:   cfg.BatchSize,
		flushPeriod: cfg.FlushPeriod,
		buffer:      make([]ArchiveLine, 0, cfg.BatchSize),
		flushCh:     make(chan struct{}, 1),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
		fallback:    cfg.Fallback,
	}

	if err := w.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	go w.flushWorker()

	return w, nil
}

// initSchema creates the necessary tables
func (w *ArchiveWriter) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS log_lines (
		id TEXT PRIMARY KEY,
		session TEXT NOT NULL,
		logger TEXT NOT NULL,
		line TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_log_lines_session ON log_lines(session);
	CREATE INDEX IF NOT EXISTS idx_log_lines_logger ON log_lines(logger);
	CREATE INDEX IF NOT EXISTS idx_log_lines_created_at ON log_lines(created_at);
	`

	_, err := w.db.Exec(schema)
	return err
}

// Ping checks that the database is reachable
func (w *ArchiveWriter) Ping(ctx context.Context) error {
	return w.db.PingContext(ctx)
}

// Session returns the session id stored with every line
func (w *ArchiveWriter) Session() string {
	return w.session
}

// Write implements io.Writer. p may hold several newline-terminated lines.
func (w *ArchiveWriter) Write(p []byte) (n int, err error) {
	// Always write to fallback first (for local visibility)
	if w.fallback != nil {
		if _, err := w.fallback.Write(p); err != nil {
			return 0, err
		}
	}

	now := time.Now()
	var lines []ArchiveLine
	for _, line := range bytes.Split(bytes.TrimSuffix(p, []byte("\n")), []byte("\n")) {
		lines = append(lines, ArchiveLine{
			ID:        uuid.NewString(),
			Session:   w.session,
			Logger:    w.logger,
			Line:      string(line),
			CreatedAt: now,
		})
	}

	w.bufferMu.Lock()
	w.buffer = append(w.buffer, lines...)
	shouldFlush := len(w.buffer) >= w.batchSize
	w.bufferMu.Unlock()

	// Trigger flush if buffer is full
	if shouldFlush {
		select {
		case w.flushCh <- struct{}{}:
		default:
		}
	}

	return len(p), nil
}

// Flush stores all buffered lines
func (w *ArchiveWriter) Flush() error {
	return w.flush(context.Background())
}

// flushWorker periodically flushes the buffer
func (w *ArchiveWriter) flushWorker() {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.flushPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-w.flushCh:
			_ = w.flush(context.Background())
		case <-ticker.C:
			_ = w.flush(context.Background())
		}
	}
}

// flush writes buffered lines in one transaction. Lines that fail to store
// are put back at the head of the buffer.
func (w *ArchiveWriter) flush(ctx context.Context) error {
	w.dbMu.Lock()
	defer w.dbMu.Unlock()

	w.bufferMu.Lock()
	if len(w.buffer) == 0 {
		w.bufferMu.Unlock()
		return nil
	}
	lines := make([]ArchiveLine, len(w.buffer))
	copy(lines, w.buffer)
	w.buffer = w.buffer[:0]
	w.bufferMu.Unlock()

	if err := w.store(ctx, lines); err != nil {
		w.bufferMu.Lock()
		w.buffer = append(lines, w.buffer...)
		w.bufferMu.Unlock()
		return err
	}
	return nil
}

func (w *ArchiveWriter) store(ctx context.Context, lines []ArchiveLine) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO log_lines (id, session, logger, line, created_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, l := range lines {
		if _, err := stmt.ExecContext(ctx, l.ID, l.Session, l.Logger, l.Line, l.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert log line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Query returns stored lines in the order they were written. With a limit,
// the most recent lines are returned.
func (w *ArchiveWriter) Query(ctx context.Context, filter ArchiveFilter) ([]ArchiveLine, error) {
	query := `SELECT id, session, logger, line, created_at FROM log_lines WHERE 1=1`
	var args []interface{}

	if filter.Logger != "" {
		query += " AND logger = ?"
		args = append(args, filter.Logger)
	}
	if filter.Session != "" {
		query += " AND session = ?"
		args = append(args, filter.Session)
	}

	query += " ORDER BY rowid DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := w.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query log lines: %w", err)
	}
	defer rows.Close()

	var lines []ArchiveLine
	for rows.Next() {
		var l ArchiveLine
		if err := rows.Scan(&l.ID, &l.Session, &l.Logger, &l.Line, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan log line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
	return lines, nil
}

// Prune deletes lines older than the given age
func (w *ArchiveWriter) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	res, err := w.db.ExecContext(ctx, `DELETE FROM log_lines WHERE created_at < ?`, time.Now().Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("failed to prune log lines: %w", err)
	}
	return res.RowsAffected()
}

// Close stops the flush worker, stores what is left and closes the database
func (w *ArchiveWriter) Close() error {
	w.closeOnce.Do(func() {
		close(w.stopCh)
		<-w.doneCh

		flushErr := w.flush(context.Background())
		closeErr := w.db.Close()
		if flushErr != nil {
			w.closeErr = flushErr
		} else {
			w.closeErr = closeErr
		}
	})
	return w.closeErr
}
