package catch

import (
	"fmt"

	mdwerror "github.com/msto63/elm/foundation/core/error"
)

// Expect runs fn in a protected region on s and checks that it raised an
// error of the given kind. The caught error is destroyed. It returns nil on
// success and a description of the mismatch otherwise.
func (s *Stack) Expect(kind mdwerror.Kind, fn func()) error {
	err := s.Try(fn)
	if err == nil {
		return fmt.Errorf("expected a %s error, nothing was raised", kind)
	}
	defer err.Destroy()

	if got := err.Kind(); got != kind {
		return fmt.Errorf("expected a %s error, got %s: %s (%s)", kind, got, err.Error(), err.Meta())
	}
	return nil
}

// Expect is Stack.Expect on the default stack.
func Expect(kind mdwerror.Kind, fn func()) error {
	return defaultStack.Expect(kind, fn)
}
