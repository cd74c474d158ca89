package httpx

import "context"

// Identity is the authenticated caller bound to a single request. It is
// derived from a verified access token plus a user lookup, lives only in
// that request's context, and is never shared across requests.
type Identity struct {
	UserID      string
	Email       string
	Role        string
	Authorities []string
}

type identityKey struct{}

// WithIdentity binds an identity into ctx for the rest of the request.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the bound identity, if any. Handlers read it and
// never mutate it.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
