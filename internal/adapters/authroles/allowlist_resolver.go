package authroles

import (
	"strings"

	domainauth "github.com/apodaca-kapital/investor-portal/internal/domain/auth"
)

// AllowlistResolver derives a role from a configured admin email allow-list.
// Membership is the only source of the admin role: nothing client-supplied
// and nothing stored in the session participates in the decision.
type AllowlistResolver struct {
	admins map[string]struct{}
}

// NewAllowlistResolver builds a resolver from configured admin emails.
// Entries are normalized to lower case; empty entries are ignored.
func NewAllowlistResolver(adminEmails []string) *AllowlistResolver {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		admins[e] = struct{}{}
	}
	return &AllowlistResolver{admins: admins}
}

// Resolve returns RoleAdmin when the identity's normalized email is on the
// allow-list, RoleClient otherwise.
func (r *AllowlistResolver) Resolve(identity domainauth.Identity) domainauth.Role {
	if _, ok := r.admins[identity.NormalizedEmail()]; ok {
		return domainauth.RoleAdmin
	}
	return domainauth.RoleClient
}
