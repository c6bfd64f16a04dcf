package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeRedirect(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		want      string
		ok        bool
	}{
		{"plain path", "/inicio", "/inicio", true},
		{"deep path with query", "/admin/clientes?page=2", "/admin/clientes?page=2", true},
		{"root", "/", "/", true},
		{"surrounding whitespace", "  /inicio  ", "/inicio", true},
		{"empty", "", "", false},
		{"whitespace only", "   ", "", false},
		{"relative path", "inicio", "", false},
		{"absolute url", "https://evil.com/phish", "", false},
		{"protocol relative", "//evil.com/phish", "", false},
		{"triple slash", "///evil.com", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SanitizeRedirect(tt.candidate)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeRedirectIdempotent(t *testing.T) {
	candidates := []string{"/inicio", "/admin/clientes?page=2", "  /x ", "//evil.com", "plain"}
	for _, c := range candidates {
		first, ok := SanitizeRedirect(c)
		if !ok {
			continue
		}
		second, ok2 := SanitizeRedirect(first)
		assert.True(t, ok2)
		assert.Equal(t, first, second)
	}
}

func TestPathInArea(t *testing.T) {
	prefixes := []string{"/admin", "/backoffice"}

	assert.True(t, PathInArea("/admin", prefixes))
	assert.True(t, PathInArea("/admin/clientes", prefixes))
	assert.True(t, PathInArea("/backoffice/solicitudes", prefixes))
	assert.False(t, PathInArea("/administracion", prefixes))
	assert.False(t, PathInArea("/inicio", prefixes))
	assert.False(t, PathInArea("/", prefixes))
}
