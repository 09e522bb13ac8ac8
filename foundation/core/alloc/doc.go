// Package alloc provides the allocate-or-die collaborator used by the error
// package.
//
// Package: alloc
// Title: Allocation Accounting and Fail-Fast Allocation
// Description: Go manages memory itself, so this package does not wrap malloc.
//              It keeps an accounting record for every error value (so tests
//              can prove each one is destroyed exactly once) and offers byte
//              slice helpers that terminate the process with a NOMEM
//              diagnostic instead of returning failure.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Usage:
//
//	t := alloc.NewTracker()
//	restore := alloc.SetDefault(t)
//	defer restore()
//
//	// ... construct and destroy errors ...
//
//	if t.Live() != 0 {
//		// t.Leaks() lists where the survivors were created
//	}
package alloc
