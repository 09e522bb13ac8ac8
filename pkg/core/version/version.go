// ============================================================================
// elm - Errors, Logging and Allocation
// ============================================================================
//
// Package:     version
// Description: Central version management for the library and its tools
// Author:      msto63
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants for elm
const (
	// Library version, shared by the foundation module and the command
	Library = "0.2.0"

	// Component versions
	Error = "0.2.0"
	Catch = "0.1.0"
	Log   = "0.2.0"
	Alloc = "0.1.0"
)

// Commit is set at build time with -ldflags "-X ...version.Commit=<sha>"
var Commit = "unknown"

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "error":
		return Error
	case "catch":
		return Catch
	case "log":
		return Log
	case "alloc":
		return Alloc
	default:
		return Library
	}
}

// String returns the one-line version banner printed by elm version
func String() string {
	return fmt.Sprintf("elm %s (commit %s, %s %s/%s)",
		Library, Commit, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
