// File: alloc.go
// Title: Allocate-or-Die Shim
// Description: Allocation accounting for error values plus byte-slice
//              helpers that terminate the process instead of returning an
//              allocation failure.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package alloc

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/msto63/elm/foundation/core/emergency"
	"github.com/msto63/elm/foundation/core/meta"
)

// DefaultMaxBytes bounds a single Bytes/Zeroed request.
const DefaultMaxBytes = 1 << 30

var (
	// ErrNoMem is the panic value used when the exit hook returns instead of
	// terminating the process.
	ErrNoMem = errors.New("alloc: out of memory")

	// ErrUnknownAllocation is raised (as a panic) when releasing an id the
	// tracker never handed out, or one already released.
	ErrUnknownAllocation = errors.New("alloc: release of unknown allocation")
)

var (
	exitMu   sync.Mutex
	exitFunc = os.Exit

	maxBytes atomic.Int64
)

func init() {
	maxBytes.Store(DefaultMaxBytes)
}

// SetExit replaces the function used to terminate the process and returns a
// function restoring the previous one. Intended for tests.
func SetExit(fn func(code int)) (restore func()) {
	exitMu.Lock()
	prev := exitFunc
	exitFunc = fn
	exitMu.Unlock()
	return func() {
		exitMu.Lock()
		exitFunc = prev
		exitMu.Unlock()
	}
}

// SetMaxBytes changes the largest request Bytes and Zeroed will satisfy.
func SetMaxBytes(n int64) (restore func()) {
	prev := maxBytes.Swap(n)
	return func() { maxBytes.Store(prev) }
}

// PanicNoMem reports an out-of-memory condition on the emergency channel and
// terminates the process with status ENOMEM. It never returns.
func PanicNoMem(m meta.Meta) {
	emergency.Write("NOMEM", &m, "Out of virtual memory")

	exitMu.Lock()
	exit := exitFunc
	exitMu.Unlock()

	exit(int(syscall.ENOMEM))
	panic(ErrNoMem)
}

// Bytes returns a slice of n bytes or terminates the process.
func Bytes(n int) []byte {
	return bytesAt(meta.Caller(1), n)
}

// Zeroed returns a zero-filled slice of n bytes or terminates the process.
// Go zeroes every allocation; Zeroed exists so callers can say what they rely on.
func Zeroed(n int) []byte {
	return bytesAt(meta.Caller(1), n)
}

func bytesAt(m meta.Meta, n int) (b []byte) {
	if n < 0 || int64(n) > maxBytes.Load() {
		PanicNoMem(m)
	}
	defer func() {
		if r := recover(); r != nil {
			PanicNoMem(m)
		}
	}()
	return make([]byte, n)
}

func unknownAllocation(id fmt.Stringer) error {
	return fmt.Errorf("%w: %s", ErrUnknownAllocation, id)
}
