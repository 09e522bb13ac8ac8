// Package log provides the elm logging facility.
//
// Package: log
// Title: elm Loggers
// Description: This package implements named loggers that render formatted
//              messages or error values into single lines, prefixed with the
//              logger name and optionally the provenance of the event. It
//              offers four builtin loggers and reference-counted user loggers.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2026-10-17 v0.2.0: Builtin/shared handles, provenance prefixes, emergency fallback
//
// Features:
// - Builtin loggers Null, Std, Err and Dbg, never destroyed
// - Shared loggers with atomic reference counting; the sink closes on last release
// - Plain ("NAME: msg") and debug ("NAME (file:line in func): msg") prefixes
// - JSON and logfmt formats for machine consumption
// - Errors are logged with the provenance they were created with
// - Failed writes are reported on the emergency channel with prefix LOGFAILED
//
// Usage:
//   import elmlog "github.com/msto63/elm/foundation/core/log"
//
//   elmlog.Std.Printf("started %d workers", n)
//
//   l := elmlog.New("TEST", file, elmlog.WithDebug())
//   defer l.Release()
//   l.LogError(err)
//
//   // Silence debug output
//   restore := elmlog.HideDebug()
//   defer restore()
package log
