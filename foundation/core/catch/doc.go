// Package catch provides protected regions for elm error values.
//
// Package: catch
// Title: elm Protected Regions
// Description: This package lets code deep in a call chain raise an error
//              value to the nearest enclosing protected region. A raise with
//              no region established is fatal: the error is logged through
//              the PANIC! logger and the process exits with status 255.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation
//
// Features:
// - Arbitrarily nested protected regions with strict LIFO discipline
// - Raises always target the innermost open region; outer regions are
//   reached by re-raising
// - Panics that are not raises pass through untouched after the region's
//   frame is popped
// - Fail-fast behaviour for raises outside any region
//
// Usage:
//   import "github.com/msto63/elm/foundation/core/catch"
//
//   err := catch.Try(func() {
//       data := catch.TryValue(...)
//       if len(data) == 0 {
//           catch.Raisef("empty input")
//       }
//   })
//   if err != nil {
//       elmlog.Dbg.LogError(err)
//       err.Destroy()
//   }
//
// Ownership:
//   Raising an error hands it to the region that catches it. Try returns the
//   caught error, and its caller must destroy it or raise it again.
//
// Concurrency:
//   A Stack belongs to one goroutine. Goroutines that raise need their own
//   Stack, which can travel with a context.Context via NewContext and
//   FromContext. The package-level functions use the default stack and are
//   meant for single-goroutine programs. Misuse across goroutines is not
//   detected.
package catch
