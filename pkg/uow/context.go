package uow

import "context"

// contextKey prevents collisions with other packages using context values
type contextKey struct{}

// WithContext returns a context carrying the unit of work.
func WithContext(ctx context.Context, u *UnitOfWork) context.Context {
	return context.WithValue(ctx, contextKey{}, u)
}

// FromContext extracts the ambient unit of work, if any.
func FromContext(ctx context.Context) (*UnitOfWork, bool) {
	u, ok := ctx.Value(contextKey{}).(*UnitOfWork)
	return u, ok
}

// MustFromContext panics if no unit of work is found. Use only in code paths
// that cannot function without one.
func MustFromContext(ctx context.Context) *UnitOfWork {
	u, ok := FromContext(ctx)
	if !ok || u == nil {
		panic("uow: no unit of work in context")
	}
	return u
}
