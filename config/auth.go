package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeGoTrue uses the hosted GoTrue-compatible credential service.
	AuthModeGoTrue AuthMode = "gotrue"
	// AuthModeMock uses mock/dev authentication (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "gotrue", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: gotrue, mock)", v)
	}
}

// GoTrueConfig contains configuration for the hosted credential service.
// The portal never verifies credentials itself; it talks to this service.
type GoTrueConfig struct {
	// BaseURL is the root of the auth API (e.g. "https://xyz.supabase.co/auth/v1").
	BaseURL string `env:"BASE_URL"`
	// APIKey is the anon/service key sent with every request.
	APIKey string `env:"API_KEY"`
	// Issuer overrides the token issuer used for JWKS verification.
	// Defaults to BaseURL when empty.
	Issuer string `env:"ISSUER"`
	// Audience expected in access tokens. GoTrue issues "authenticated".
	Audience string `env:"AUDIENCE" envDefault:"authenticated"`
	// Timeout bounds every HTTP call to the credential service.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

// DevAuthConfig controls mock/dev authentication users.
// Used when AUTH_MODE=mock for development and testing.
// Users is a semicolon-separated list of email:bcrypt-hash pairs.
type DevAuthConfig struct {
	Users []string `env:"USERS" envSeparator:";"`
}

// AuthConfig groups all authentication and access-control configuration.
type AuthConfig struct {
	// Mode determines which credential-store adapter to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"gotrue"`

	// GoTrue configuration (used when Mode=gotrue).
	GoTrue GoTrueConfig `envPrefix:"GOTRUE_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// AdminEmails is the allow-list of administrator emails. Role is derived
	// from this list on every request; it is never read from client input or
	// from a persisted profile column.
	AdminEmails []string `env:"ADMIN_EMAILS" envSeparator:";"`

	// SessionTTL is the lifetime of a standard session.
	SessionTTL time.Duration `env:"AUTH_SESSION_TTL" envDefault:"8h"`

	// SessionTTLRemember is the lifetime used when the login request sets the
	// remember flag.
	SessionTTLRemember time.Duration `env:"AUTH_SESSION_TTL_REMEMBER" envDefault:"720h"`

	// RefreshWindow: sessions closer than this to expiry are slid forward on
	// access and the refreshed cookie re-written on the outgoing response.
	RefreshWindow time.Duration `env:"AUTH_REFRESH_WINDOW" envDefault:"30m"`

	// ThrottleMaxAttempts is the number of failed logins tolerated per
	// email+IP inside ThrottleWindow before the throttle rejects attempts.
	ThrottleMaxAttempts int           `env:"AUTH_THROTTLE_MAX_ATTEMPTS" envDefault:"5"`
	ThrottleWindow      time.Duration `env:"AUTH_THROTTLE_WINDOW"       envDefault:"10m"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.SessionTTL <= 0 {
		a.SessionTTL = 8 * time.Hour
	}
	if a.SessionTTLRemember < a.SessionTTL {
		a.SessionTTLRemember = a.SessionTTL
	}
	if a.RefreshWindow <= 0 {
		a.RefreshWindow = 30 * time.Minute
	}
	if a.ThrottleMaxAttempts <= 0 {
		a.ThrottleMaxAttempts = 5
	}
	if a.ThrottleWindow <= 0 {
		a.ThrottleWindow = 10 * time.Minute
	}
}

// WebhookConfig controls the optional notification webhook for new requests.
type WebhookConfig struct {
	// URL is the sink endpoint; empty disables notifications.
	URL string `env:"URL"`
	// AllowedDomains restricts the sink host by registered domain.
	AllowedDomains []string `env:"ALLOWED_DOMAINS" envSeparator:";"`
	// AckExpr is a JMESPath expression evaluated against the sink response;
	// delivery counts as acknowledged only when it yields AckValue.
	AckExpr  string `env:"ACK_EXPR"  envDefault:"ok"`
	AckValue string `env:"ACK_VALUE" envDefault:"true"`
	// Token, when set, is sent as Authorization: Bearer on every delivery.
	Token string `env:"TOKEN"`
	// Timeout bounds each delivery attempt.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"5s"`
}
