package user

import "context"

type contextKey struct{}

// NewContext returns a context carrying the authenticated principal.
func NewContext(ctx context.Context, usr *User) context.Context {
	return context.WithValue(ctx, contextKey{}, usr)
}

// FromContext retrieves the authenticated principal from the context (if any).
func FromContext(ctx context.Context) (*User, bool) {
	usr, ok := ctx.Value(contextKey{}).(*User)
	return usr, ok
}
