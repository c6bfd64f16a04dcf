package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"errors"
	"time"

	domainauth "github.com/apodaca-kapital/investor-portal/internal/domain/auth"
)

// ErrInvalidCredentials is the store's denial: wrong password, unknown user,
// expired one-time code, revoked token. Any other CredentialStore error means
// the store could not be reached and callers must fail closed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Credentials is the outcome of a successful credential-store operation: the
// verified identity plus the opaque token pair the store issued for it.
type Credentials struct {
	Identity     domainauth.Identity
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// MagicLinkInput carries inputs for requesting a one-time login link.
type MagicLinkInput struct {
	Email string
	// CallbackURL is where the emailed link returns; the sanitized next-path
	// is already encoded into it by the caller.
	CallbackURL string
}

// CredentialStore is the hosted credential service (external collaborator).
// The portal never verifies passwords or mints identities itself; every
// method is a remote call and any error, timeouts included, must be
// treated as a denial by callers (fail closed).
type CredentialStore interface {
	// VerifyPassword checks an email/password pair and returns issued credentials.
	VerifyPassword(ctx context.Context, email, password string) (Credentials, error)

	// ExchangeOneTimeCode redeems a single-use magic-link code for credentials.
	ExchangeOneTimeCode(ctx context.Context, code string) (Credentials, error)

	// SendMagicLink asks the store to email a one-time login link.
	SendMagicLink(ctx context.Context, in MagicLinkInput) error

	// CurrentUser validates an access token and returns the identity it proves.
	CurrentUser(ctx context.Context, accessToken string) (domainauth.Identity, error)

	// Refresh exchanges a refresh token for fresh credentials.
	Refresh(ctx context.Context, refreshToken string) (Credentials, error)

	// Invalidate revokes the store-side session behind an access token.
	Invalidate(ctx context.Context, accessToken string) error
}

// UserProvisioner creates users in the credential store. It is separate from
// CredentialStore because only backoffice provisioning needs it and it
// typically requires elevated (service-role) credentials.
type UserProvisioner interface {
	// CreateUser registers an email/password user and returns its identity.
	// An already-registered email returns ErrUserExists.
	CreateUser(ctx context.Context, email, password string) (domainauth.Identity, error)
}

// ErrUserExists is returned by UserProvisioner for an already-registered email.
var ErrUserExists = errors.New("user already exists")

// SessionStore persists and retrieves server-side sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// RoleResolver derives the role for an identity. Implementations must be
// pure and re-evaluated per request; roles are never cached or persisted.
type RoleResolver interface {
	Resolve(identity domainauth.Identity) domainauth.Role
}

// LoginThrottle bounds failed credential attempts per caller.
type LoginThrottle interface {
	// Allow reports whether another attempt is permitted for the key.
	Allow(ctx context.Context, key string) (bool, error)
	// RecordFailure counts a failed attempt against the key.
	RecordFailure(ctx context.Context, key string) error
	// Reset clears the counter after a successful login.
	Reset(ctx context.Context, key string) error
}
