package httpx

import (
	"context"

	domainauth "github.com/apodaca-kapital/investor-portal/internal/domain/auth"
)

// principalKey is an unexported context key type to avoid collisions across
// packages.
type principalKey struct{}

// Principal is the authenticated caller the gateway attaches to the request
// context: the validated session plus the role resolved for this request.
type Principal struct {
	Session domainauth.Session
	Role    domainauth.Role
}

// IsAdmin reports whether the principal is an administrator.
func (p Principal) IsAdmin() bool { return p.Role == domainauth.RoleAdmin }

// SetPrincipal returns a child context carrying the principal.
func SetPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// GetPrincipal returns the request's principal and whether one is present.
// Handlers behind the gateway can rely on presence; public handlers cannot.
func GetPrincipal(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
