package auth

import "context"

// Identity is the caller established from a verified bearer token.
// It lives only in the request context.
type Identity struct {
	Subject     string
	Authorities []string
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity installed by the token verifier.
// ok is false for anonymous requests.
func IdentityFromContext(ctx context.Context) (id Identity, ok bool) {
	id, ok = ctx.Value(identityKey{}).(Identity)
	return id, ok
}
