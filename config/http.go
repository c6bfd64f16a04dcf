package config

import "strings"

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// BaseURL is the base URL of the application (e.g., "https://portal.example.com").
	// Used for generating absolute URLs in magic-link callbacks.
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	// CookieDomain is the domain for session cookies.
	// Leave empty to use the request domain.
	CookieDomain string `env:"APP_COOKIE_DOMAIN" envDefault:""`

	// PublicPaths are path prefixes the gateway never gates. Exact membership
	// is configuration, not inference: the credential-issuance endpoints must
	// always be listed here or login becomes impossible.
	PublicPaths []string `env:"APP_PUBLIC_PATHS" envSeparator:";" envDefault:"/login;/api/auth/;/auth/callback;/static/;/healthz;/favicon.ico;/.well-known/"`

	// AdminPrefixes are the role-restricted path prefixes requiring Role=Admin.
	// Both the admin pages and the admin API live here.
	AdminPrefixes []string `env:"APP_ADMIN_PREFIXES" envSeparator:";" envDefault:"/admin;/backoffice;/api/admin"`

	// AdminHome and ClientHome are the role landing destinations.
	AdminHome  string `env:"APP_ADMIN_HOME"  envDefault:"/admin"`
	ClientHome string `env:"APP_CLIENT_HOME" envDefault:"/inicio"`

	// LoginPath is where unauthenticated browser requests are redirected.
	LoginPath string `env:"APP_LOGIN_PATH" envDefault:"/login"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	h.BaseURL = strings.TrimSuffix(h.BaseURL, "/")
	if h.AdminHome == "" {
		h.AdminHome = "/admin"
	}
	if h.ClientHome == "" {
		h.ClientHome = "/inicio"
	}
	if h.LoginPath == "" {
		h.LoginPath = "/login"
	}
	h.PublicPaths = compactPaths(h.PublicPaths)
	h.AdminPrefixes = compactPaths(h.AdminPrefixes)
}

// compactPaths drops blanks and normalizes away trailing slashes so the
// prefixes match at path-segment boundaries.
func compactPaths(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		trimmed := strings.TrimSpace(p)
		if trimmed == "" {
			continue
		}
		if trimmed != "/" {
			trimmed = strings.TrimSuffix(trimmed, "/")
		}
		out = append(out, trimmed)
	}
	return out
}
