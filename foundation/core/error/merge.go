package error

// KeepFirst merges two optional errors when an operation can fail in two
// independent ways but only one error should surface. It returns a if
// present, destroying b; otherwise it returns b. Either argument may be nil.
func KeepFirst(a, b *Error) *Error {
	if a == nil {
		return b
	}
	b.Destroy()
	return a
}
