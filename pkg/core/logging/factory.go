// ============================================================================
// elm - Errors, Logging and Allocation
// ============================================================================
//
// Package:     logging
// Description: Factory functions for building shared loggers from config
// Author:      msto63
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	elmlog "github.com/msto63/elm/foundation/core/log"
	"github.com/msto63/elm/pkg/core/config"
)

// NewLogger creates a shared logger as described by cfg. Options in opts are
// applied before the format and option letters from cfg.
func NewLogger(cfg config.LoggerConfig, opts ...elmlog.Option) (*elmlog.Shared, error) {
	format, err := elmlog.ParseFormat(cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("logger %s: %w", cfg.Name, err)
	}
	letters, err := elmlog.ParseOptions(cfg.Options)
	if err != nil {
		return nil, fmt.Errorf("logger %s: %w", cfg.Name, err)
	}

	output, err := openOutput(cfg)
	if err != nil {
		return nil, fmt.Errorf("logger %s: %w", cfg.Name, err)
	}

	all := append([]elmlog.Option{}, opts...)
	all = append(all, elmlog.WithFormat(format))
	all = append(all, letters...)

	return elmlog.New(cfg.Name, output, all...), nil
}

// openOutput returns the writer a logger should use. A nil writer means
// the logger discards its output.
func openOutput(cfg config.LoggerConfig) (io.Writer, error) {
	kind, path, err := cfg.Target()
	if err != nil {
		return nil, err
	}

	switch kind {
	case config.OutputStdout:
		return elmlog.Stdout(), nil
	case config.OutputStderr:
		return elmlog.Stderr(), nil
	case config.OutputDiscard:
		return nil, nil
	case config.OutputFile:
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return f, nil
	case config.OutputArchive:
		w, err := NewArchiveWriter(ArchiveWriterConfig{
			Path:        path,
			Logger:      cfg.Name,
			BatchSize:   cfg.BatchSize,
			FlushPeriod: cfg.FlushInterval.Duration,
		})
		if err != nil {
			return nil, err
		}
		return w, nil
	}
	return nil, fmt.Errorf("unknown output %q", cfg.Output)
}
