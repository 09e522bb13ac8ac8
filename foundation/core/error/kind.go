// File: kind.go
// Title: Error Kinds and Bodies
// Description: Defines the Kind classification and the Body interface that
//              every error kind implements. Kinds are open: packages outside
//              this one add their own by implementing Body.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-17 v0.2.0: Codes replaced by kinds backed by Body implementations

package error

import "io"

// Kind identifies which Body implementation an Error carries
type Kind string

// Kinds provided by this package
const (
	KindUnknown Kind = "UNKNOWN"
	KindMessage Kind = "MESSAGE"
	KindSystem  Kind = "SYSTEM"
)

// String returns the string representation of the kind
func (k Kind) String() string {
	return string(k)
}

// IsBuiltin reports whether the kind is defined by this package
func (k Kind) IsBuiltin() bool {
	switch k {
	case KindMessage, KindSystem:
		return true
	default:
		return false
	}
}

// Body is the kind-specific part of an Error.
//
// Render writes the human readable text and returns the byte count. Cleanup
// is called exactly once, from Error.Destroy, and must release anything the
// body owns (including nested *Error values).
type Body interface {
	Kind() Kind
	Render(w io.Writer) (int, error)
	Cleanup()
}
