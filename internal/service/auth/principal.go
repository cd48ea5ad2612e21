package auth

import "context"

// Principal is the caller of a request: either Anonymous or Authenticated.
// The auth middleware is the only producer of Authenticated.
type Principal interface {
	principal()
}

// Anonymous is a caller that presented no valid credential.
type Anonymous struct{}

// Authenticated is a caller whose credential verified.
type Authenticated struct {
	Identity Identity
}

func (Anonymous) principal()     {}
func (Authenticated) principal() {}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the request's principal, Anonymous if none
// was attached.
func PrincipalFromContext(ctx context.Context) Principal {
	if p, ok := ctx.Value(principalKey{}).(Principal); ok && p != nil {
		return p
	}
	return Anonymous{}
}

// IdentityFromContext returns the identity of an Authenticated principal.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	if a, ok := PrincipalFromContext(ctx).(Authenticated); ok {
		return a.Identity, true
	}
	return Identity{}, false
}
