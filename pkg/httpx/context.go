package httpx

import "context"

type ctxKey string

const ctxKeyIdentity ctxKey = "identity"

// Identity is the authenticated caller attached to the request context by the
// session guard.
type Identity struct {
	UserID    int64
	Email     string
	RoleID    int64
	Role      string
	SessionID string
}

// ContextWithIdentity attaches the authenticated identity for downstream
// handlers and authorization guards.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity, id)
}

// IdentityFromContext returns the authenticated identity, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKeyIdentity).(Identity)
	return id, ok
}
