// ============================================================================
// elm - Errors, Logging and Allocation
// ============================================================================
//
// Package:     logging
// Description: Registry of named shared loggers built from configuration
// Author:      msto63
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package logging

import (
	"fmt"
	"sort"
	"sync"

	elmlog "github.com/msto63/elm/foundation/core/log"
	"github.com/msto63/elm/foundation/core/metrics"
	"github.com/msto63/elm/pkg/core/config"
)

// Registry owns one reference to every logger defined in a configuration
type Registry struct {
	mu      sync.RWMutex
	loggers map[string]*elmlog.Shared
}

// NewRegistry builds every logger in cfg. If one fails, the loggers already
// built are released and the error is returned.
func NewRegistry(cfg *config.Config, opts ...elmlog.Option) (*Registry, error) {
	r := &Registry{loggers: make(map[string]*elmlog.Shared)}

	m := metrics.Default()
	if !cfg.Metrics.Enabled {
		m = nil
	}
	opts = append([]elmlog.Option{elmlog.WithMetrics(m)}, opts...)

	for _, lc := range cfg.Loggers {
		if _, exists := r.loggers[lc.Name]; exists {
			r.Close()
			return nil, fmt.Errorf("duplicate logger name: %s", lc.Name)
		}
		l, err := NewLogger(lc, opts...)
		if err != nil {
			r.Close()
			return nil, err
		}
		r.loggers[lc.Name] = l
	}

	return r, nil
}

// Get returns a retained handle to the named logger. The caller must
// Release it.
func (r *Registry) Get(name string) (*elmlog.Shared, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.loggers[name]
	if !ok {
		return nil, false
	}
	return l.Retain(), true
}

// Names returns the registered logger names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.loggers))
	for name := range r.loggers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close releases the registry's references. Loggers still held through Get
// stay open until their last handle is released.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name, l := range r.loggers {
		l.Release()
		delete(r.loggers, name)
	}
}
