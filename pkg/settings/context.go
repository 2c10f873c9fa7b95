package settings

import "context"

type contextKey struct{}

// IntoContext stores the run settings in ctx.
func IntoContext(ctx context.Context, s *Run) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the run settings stored in ctx, if any.
func FromContext(ctx context.Context) (*Run, bool) {
	s, ok := ctx.Value(contextKey{}).(*Run)
	return s, ok && s != nil
}
