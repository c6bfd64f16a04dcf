package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/apodaca-kapital/investor-portal/internal/domain/auth"
	"github.com/apodaca-kapital/investor-portal/internal/ports"
)

// GenericLoginFailure is the only credential-failure message shown to users.
// It deliberately does not distinguish unknown emails from wrong passwords.
const GenericLoginFailure = "invalid credentials"

// StoreUnavailableMessage is shown when the credential service cannot be
// reached. The attempt is never retried within the same request.
const StoreUnavailableMessage = "authentication service unavailable, try again"

// ErrMissingInput marks malformed login input (empty email or password).
var ErrMissingInput = errors.New("email and password are required")

var errSessionExpired = errors.New("session expired")

// AuthPolicy carries the gateway's destination and lifetime configuration.
type AuthPolicy struct {
	// AdminPrefixes are the role-restricted path prefixes (e.g. /admin).
	AdminPrefixes []string
	// AdminHome and ClientHome are the per-role landing paths.
	AdminHome  string
	ClientHome string
	// BaseURL is the portal's external URL, used to build callback links.
	BaseURL string
	// SessionTTL and SessionTTLRemember are the short and long session
	// lifetimes; the login form's remember flag selects between them.
	SessionTTL         time.Duration
	SessionTTLRemember time.Duration
	// RefreshWindow is how close to expiry a session must be before the
	// gateway refreshes it on the outgoing response.
	RefreshWindow time.Duration
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Store    ports.CredentialStore
	Sessions ports.SessionStore
	Roles    ports.RoleResolver
	Throttle ports.LoginThrottle
	Policy   AuthPolicy
	Logger   *slog.Logger
}

// AuthService orchestrates credential issuance and session lifecycle: the
// password login action, the one-time-link exchange action, per-request
// session validation, and logout. The credential service owns verification;
// this service owns sessions and destinations.
type AuthService struct {
	store    ports.CredentialStore
	sessions ports.SessionStore
	roles    ports.RoleResolver
	throttle ports.LoginThrottle
	policy   AuthPolicy
	logger   *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		store:    opts.Store,
		sessions: opts.Sessions,
		roles:    opts.Roles,
		throttle: opts.Throttle,
		policy:   opts.Policy,
		logger:   logger.With("component", "auth"),
	}
}

// LoginInput carries the password login form.
type LoginInput struct {
	Email             string
	Password          string
	RequestedRedirect string
	Remember          bool
	// ClientIP participates in the throttle key.
	ClientIP string
}

// LoginResult is the structured outcome of a credential-issuance action.
// Expected failures (bad credentials, throttled) come back with OK=false and
// a user-facing message rather than an error.
type LoginResult struct {
	OK         bool
	RedirectTo string
	Message    string
	Session    *domainauth.Session
	Role       domainauth.Role
}

// Login verifies an email/password pair and, on success, creates a session
// and decides the destination.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return nil, ErrMissingInput
	}

	throttleKey := strings.ToLower(email) + "|" + in.ClientIP
	if !s.allowAttempt(ctx, throttleKey) {
		return &LoginResult{OK: false, Message: GenericLoginFailure}, nil
	}

	creds, err := s.store.VerifyPassword(ctx, email, in.Password)
	if err != nil {
		if errors.Is(err, ports.ErrInvalidCredentials) {
			s.recordFailure(ctx, throttleKey)
			return &LoginResult{OK: false, Message: GenericLoginFailure}, nil
		}
		s.logger.ErrorContext(ctx, "credential store unreachable during login", "err", err)
		return &LoginResult{OK: false, Message: StoreUnavailableMessage}, nil
	}

	s.resetThrottle(ctx, throttleKey)

	session, err := s.createSession(ctx, creds, in.Remember)
	if err != nil {
		return nil, err
	}

	role := s.roles.Resolve(creds.Identity)
	return &LoginResult{
		OK:         true,
		RedirectTo: s.destinationAfterLogin(role, in.RequestedRedirect),
		Session:    session,
		Role:       role,
	}, nil
}

// ExchangeInput carries a one-time-link exchange request.
type ExchangeInput struct {
	Code     string
	NextPath string
	Remember bool
}

// ExchangeOneTimeLink redeems a single-use code for a session. Admins always
// land on the admin home regardless of the link's embedded next-path.
func (s *AuthService) ExchangeOneTimeLink(ctx context.Context, in ExchangeInput) (*LoginResult, error) {
	if strings.TrimSpace(in.Code) == "" {
		return &LoginResult{OK: false, Message: GenericLoginFailure}, nil
	}

	creds, err := s.store.ExchangeOneTimeCode(ctx, in.Code)
	if err != nil {
		if errors.Is(err, ports.ErrInvalidCredentials) {
			return &LoginResult{OK: false, Message: GenericLoginFailure}, nil
		}
		s.logger.ErrorContext(ctx, "credential store unreachable during exchange", "err", err)
		return &LoginResult{OK: false, Message: StoreUnavailableMessage}, nil
	}

	session, err := s.createSession(ctx, creds, in.Remember)
	if err != nil {
		return nil, err
	}

	role := s.roles.Resolve(creds.Identity)
	destination := s.policy.ClientHome
	if role == domainauth.RoleAdmin {
		destination = s.policy.AdminHome
	} else if next, ok := domainauth.SanitizeRedirect(in.NextPath); ok {
		destination = next
	}

	return &LoginResult{
		OK:         true,
		RedirectTo: destination,
		Session:    session,
		Role:       role,
	}, nil
}

// MagicLinkRequest carries a one-time-link email request.
type MagicLinkRequest struct {
	Email      string
	RedirectTo string
	// ClientIP participates in the throttle key.
	ClientIP string
}

// RequestMagicLink asks the credential service to email a one-time login
// link. The sanitized next-path is encoded into the callback URL. The outcome
// is identical for known, unknown, and throttled emails.
func (s *AuthService) RequestMagicLink(ctx context.Context, in MagicLinkRequest) error {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return ErrMissingInput
	}

	throttleKey := strings.ToLower(email) + "|" + in.ClientIP
	if !s.allowAttempt(ctx, throttleKey) {
		s.logger.WarnContext(ctx, "magic link request throttled", "email", email)
		return nil
	}
	s.recordFailure(ctx, throttleKey)

	callback := strings.TrimSuffix(s.policy.BaseURL, "/") + "/auth/callback"
	if next, ok := domainauth.SanitizeRedirect(in.RedirectTo); ok {
		callback += "?redirect=" + url.QueryEscape(next)
	} else {
		callback += "?redirect=" + url.QueryEscape(s.policy.ClientHome)
	}

	if err := s.store.SendMagicLink(ctx, ports.MagicLinkInput{Email: email, CallbackURL: callback}); err != nil {
		return fmt.Errorf("send magic link: %w", err)
	}
	return nil
}

// SessionCheck is the per-request validation outcome. Refreshed reports that
// the session was renewed and its fragments must be rewritten on the same
// outgoing response.
type SessionCheck struct {
	Session   domainauth.Session
	Role      domainauth.Role
	Refreshed bool
}

// GetSession validates a session for one request: it loads the stored
// session, re-validates the identity with the credential store, re-derives
// the role, and slides the expiry when the session is close to it. Any store
// failure means no session (fail closed).
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*SessionCheck, error) {
	if sessionID == "" {
		return nil, errSessionExpired
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, errSessionExpired
	}
	if time.Now().After(session.ExpiresAt) {
		_ = s.sessions.Delete(ctx, sessionID)
		return nil, errSessionExpired
	}

	identity, err := s.store.CurrentUser(ctx, session.AccessToken)
	if err != nil {
		refreshed, refreshErr := s.tryRefresh(ctx, &session)
		if refreshErr != nil {
			return nil, errSessionExpired
		}
		identity = refreshed.Identity()
		return &SessionCheck{
			Session:   *refreshed,
			Role:      s.roles.Resolve(identity),
			Refreshed: true,
		}, nil
	}

	check := &SessionCheck{Session: session, Role: s.roles.Resolve(identity)}
	if session.ExpiresWithin(s.policy.RefreshWindow) {
		if refreshed, refreshErr := s.tryRefresh(ctx, &session); refreshErr == nil {
			check.Session = *refreshed
			check.Refreshed = true
		}
	}
	return check, nil
}

// Logout destroys the session and best-effort revokes the store-side token.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err == nil && session.AccessToken != "" {
		if invErr := s.store.Invalidate(ctx, session.AccessToken); invErr != nil {
			s.logger.WarnContext(ctx, "store-side logout failed", "err", invErr)
		}
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// ResolveRole re-derives the role for an identity.
func (s *AuthService) ResolveRole(identity domainauth.Identity) domainauth.Role {
	return s.roles.Resolve(identity)
}

// Policy exposes the destination configuration to the HTTP gateway.
func (s *AuthService) Policy() AuthPolicy {
	return s.policy
}

// --- internals ---

// destinationAfterLogin applies the role asymmetry: admins are only deep-
// linked within the admin area and otherwise land on the admin home; clients
// are never redirected into the admin area.
func (s *AuthService) destinationAfterLogin(role domainauth.Role, requested string) string {
	target, ok := domainauth.SanitizeRedirect(requested)
	if role == domainauth.RoleAdmin {
		if ok && domainauth.PathInArea(target, s.policy.AdminPrefixes) {
			return target
		}
		return s.policy.AdminHome
	}
	if ok && !domainauth.PathInArea(target, s.policy.AdminPrefixes) {
		return target
	}
	return s.policy.ClientHome
}

func (s *AuthService) createSession(ctx context.Context, creds ports.Credentials, remember bool) (*domainauth.Session, error) {
	ttl := s.policy.SessionTTL
	if remember && s.policy.SessionTTLRemember > 0 {
		ttl = s.policy.SessionTTLRemember
	}
	expiresAt := time.Now().Add(ttl)
	// never outlive the token the store issued
	if !creds.ExpiresAt.IsZero() && creds.ExpiresAt.Before(expiresAt) && creds.RefreshToken == "" {
		expiresAt = creds.ExpiresAt
	}

	session := domainauth.Session{
		ID:           uuid.New().String(),
		UserID:       creds.Identity.ID,
		Email:        creds.Identity.Email,
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
		Remember:     remember,
		ExpiresAt:    expiresAt,
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &session, nil
}

// tryRefresh rotates the token pair and extends the session in place,
// keeping the same session ID so the client's fragment stays valid.
func (s *AuthService) tryRefresh(ctx context.Context, session *domainauth.Session) (*domainauth.Session, error) {
	if session.RefreshToken == "" {
		return nil, errSessionExpired
	}

	creds, err := s.store.Refresh(ctx, session.RefreshToken)
	if err != nil {
		return nil, errSessionExpired
	}

	ttl := s.policy.SessionTTL
	if session.Remember && s.policy.SessionTTLRemember > 0 {
		ttl = s.policy.SessionTTLRemember
	}

	renewed := *session
	renewed.AccessToken = creds.AccessToken
	renewed.RefreshToken = creds.RefreshToken
	renewed.ExpiresAt = time.Now().Add(ttl)
	if err := s.sessions.Save(ctx, renewed); err != nil {
		return nil, fmt.Errorf("save refreshed session: %w", err)
	}
	return &renewed, nil
}

// Throttle outages do not lock users out; they only disable the brake.
func (s *AuthService) allowAttempt(ctx context.Context, key string) bool {
	if s.throttle == nil {
		return true
	}
	ok, err := s.throttle.Allow(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "login throttle unavailable", "err", err)
		return true
	}
	return ok
}

func (s *AuthService) recordFailure(ctx context.Context, key string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, key); err != nil {
		s.logger.WarnContext(ctx, "failed to record login failure", "err", err)
	}
}

func (s *AuthService) resetThrottle(ctx context.Context, key string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.Reset(ctx, key); err != nil {
		s.logger.WarnContext(ctx, "failed to reset login throttle", "err", err)
	}
}
