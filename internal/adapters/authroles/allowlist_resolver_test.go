package authroles

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/apodaca-kapital/investor-portal/internal/domain/auth"
)

func TestAllowlistResolver_AdminMembership(t *testing.T) {
	resolver := NewAllowlistResolver([]string{"Admin@ApodacaKapital.com", " ops@apodacakapital.com "})

	tests := []struct {
		name  string
		email string
		want  domainauth.Role
	}{
		{"exact match", "admin@apodacakapital.com", domainauth.RoleAdmin},
		{"case insensitive", "ADMIN@APODACAKAPITAL.COM", domainauth.RoleAdmin},
		{"surrounding whitespace", "  ops@apodacakapital.com  ", domainauth.RoleAdmin},
		{"not listed", "cliente@example.com", domainauth.RoleClient},
		{"empty email", "", domainauth.RoleClient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolver.Resolve(domainauth.Identity{ID: "u1", Email: tt.email})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllowlistResolver_EmptyListNeverAdmin(t *testing.T) {
	resolver := NewAllowlistResolver(nil)
	got := resolver.Resolve(domainauth.Identity{ID: "u1", Email: "anyone@example.com"})
	assert.Equal(t, domainauth.RoleClient, got)
}
