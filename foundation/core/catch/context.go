package catch

import "context"

type stackKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s *Stack) context.Context {
	return context.WithValue(ctx, stackKey{}, s)
}

// FromContext returns the stack carried by ctx, or the default stack.
func FromContext(ctx context.Context) *Stack {
	if s, ok := ctx.Value(stackKey{}).(*Stack); ok && s != nil {
		return s
	}
	return defaultStack
}
