package catch

import (
	"syscall"

	mdwerror "github.com/msto63/elm/foundation/core/error"
	"github.com/msto63/elm/foundation/core/meta"
)

var defaultStack = NewStack()

// Default returns the stack used by the package-level functions.
func Default() *Stack {
	return defaultStack
}

// Try runs fn in a protected region on the default stack.
func Try(fn func()) *mdwerror.Error {
	return defaultStack.Try(fn)
}

// Raise raises err on the default stack.
func Raise(err *mdwerror.Error) {
	defaultStack.Raise(err)
}

// Raisef raises a message error on the default stack.
func Raisef(format string, args ...interface{}) {
	defaultStack.Raise(mdwerror.MessageAt(meta.Caller(1), sprintf(format, args)))
}

// RaiseSystem raises a system error on the default stack.
func RaiseSystem(errno syscall.Errno, format string, args ...interface{}) {
	defaultStack.Raise(mdwerror.SystemAt(meta.Caller(1), errno, "", sprintf(format, args)))
}

// RaiseIO raises a system error about name on the default stack.
func RaiseIO(name string, errno syscall.Errno, format string, args ...interface{}) {
	defaultStack.Raise(mdwerror.SystemAt(meta.Caller(1), errno, name, sprintf(format, args)))
}

// Must raises err on the default stack if it is not nil.
func Must(err error) {
	defaultStack.must(meta.Caller(1), err)
}

// Protected reports whether a region is open on the default stack.
func Protected() bool {
	return defaultStack.Protected()
}

// Depth returns the number of open regions on the default stack.
func Depth() int {
	return defaultStack.Depth()
}
