// Package error provides owned, polymorphic error values for the elm runtime.
//
// Package: error
// Title: elm Error Values
// Description: This package implements error values that carry a kind-specific
//              body, the source location where they were constructed, and an
//              identity tracked by the allocation shim. Every value has exactly
//              one owner and is destroyed exactly once.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2026-10-17 v0.2.0: Kinds with bodies, provenance and explicit destruction
//
// Features:
// - Message errors (free-form text, optionally wrapping a cause)
// - System errors coupling an errno, an optional subject name and a prefix
// - Open kind set: any Body implementation can be wrapped with NewWith
// - Provenance captured at construction, not where the error is raised or logged
// - Allocation accounting so tests can prove nothing leaks
//
// Usage:
//   import elmerr "github.com/msto63/elm/foundation/core/error"
//
//   err := elmerr.IO(path, syscall.ENOENT, "open config")
//   fmt.Println(err)        // open config (/etc/x.toml): no such file or directory
//   err.Destroy()
//
//   // Surface only the first of two independent failures
//   err = elmerr.KeepFirst(closeErr, flushErr)
//
// Ownership:
//   Whoever holds an *Error last must call Destroy. Handing an error to a
//   protected region (package catch) transfers ownership; logging it does not.
//   Destroying a value twice panics with ErrDoubleDestroy.
package error
