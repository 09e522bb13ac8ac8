// File: tracker.go
// Title: Allocation Tracker
// Description: Counts live error values by identity so leaks and double
//              destruction can be detected, and enforces an optional limit.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package alloc

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/msto63/elm/foundation/core/meta"
	"github.com/msto63/elm/foundation/core/metrics"
)

// Stats summarises a tracker's lifetime activity.
type Stats struct {
	Acquired uint64
	Released uint64
	Live     int
}

// Tracker records live allocations and where they were made.
type Tracker struct {
	mu       sync.Mutex
	live     map[uuid.UUID]meta.Meta
	limit    int
	acquired uint64
	released uint64
	metrics  *metrics.Metrics
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLimit caps the number of simultaneously live allocations; zero means
// unlimited. Exceeding the cap terminates the process via PanicNoMem.
func WithLimit(n int) Option {
	return func(t *Tracker) {
		t.limit = n
	}
}

// WithMetrics reports live counts to m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(t *Tracker) {
		t.metrics = m
	}
}

// NewTracker creates an empty tracker.
func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{
		live: make(map[uuid.UUID]meta.Meta),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Acquire registers a new allocation made at m and returns its identity.
func (t *Tracker) Acquire(m meta.Meta) uuid.UUID {
	t.mu.Lock()
	if t.limit > 0 && len(t.live) >= t.limit {
		t.mu.Unlock()
		PanicNoMem(m)
	}
	id := uuid.New()
	t.live[id] = m
	t.acquired++
	t.mu.Unlock()

	t.metrics.ErrorCreated()
	return id
}

// Release forgets the allocation id. Releasing an id twice is a programming
// error and panics.
func (t *Tracker) Release(id uuid.UUID) {
	t.mu.Lock()
	if _, ok := t.live[id]; !ok {
		t.mu.Unlock()
		panic(unknownAllocation(id))
	}
	delete(t.live, id)
	t.released++
	t.mu.Unlock()

	t.metrics.ErrorDestroyed()
}

// Live returns the number of allocations not yet released.
func (t *Tracker) Live() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.live)
}

// Leaks returns the provenance of every live allocation, ordered by file and
// line.
func (t *Tracker) Leaks() []meta.Meta {
	t.mu.Lock()
	leaks := make([]meta.Meta, 0, len(t.live))
	for _, m := range t.live {
		leaks = append(leaks, m)
	}
	t.mu.Unlock()

	sort.Slice(leaks, func(i, j int) bool {
		if leaks[i].File != leaks[j].File {
			return leaks[i].File < leaks[j].File
		}
		return leaks[i].Line < leaks[j].Line
	})
	return leaks
}

// Stats returns a snapshot of the tracker's counters.
func (t *Tracker) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Stats{
		Acquired: t.acquired,
		Released: t.released,
		Live:     len(t.live),
	}
}

var (
	defaultMu      sync.RWMutex
	defaultTracker = NewTracker(WithMetrics(metrics.Default()))
)

// Default returns the tracker used for error construction.
func Default() *Tracker {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultTracker
}

// SetDefault installs t as the default tracker and returns a function that
// reinstates the previous one.
func SetDefault(t *Tracker) (restore func()) {
	defaultMu.Lock()
	prev := defaultTracker
	defaultTracker = t
	defaultMu.Unlock()
	return func() {
		defaultMu.Lock()
		defaultTracker = prev
		defaultMu.Unlock()
	}
}
