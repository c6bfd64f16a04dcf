package devauth

// Package devauth provides a config-driven CredentialStore for local
// development. Users and bcrypt password hashes come from configuration;
// tokens and magic-link codes live in memory, so restarting the process
// signs everybody out.

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	domainauth "github.com/apodaca-kapital/investor-portal/internal/domain/auth"
	"github.com/apodaca-kapital/investor-portal/internal/ports"
)

// ErrInvalidCredentials is returned for any failed verification. Callers must
// not distinguish unknown users from wrong passwords.
var ErrInvalidCredentials = ports.ErrInvalidCredentials

const defaultTokenTTL = 8 * time.Hour

type devUser struct {
	id           string
	email        string
	passwordHash string
}

type issuedToken struct {
	identity  domainauth.Identity
	refresh   string
	expiresAt time.Time
}

// Store implements ports.CredentialStore against an in-memory user list.
type Store struct {
	mu       sync.Mutex
	users    map[string]devUser // keyed by normalized email
	tokens   map[string]issuedToken
	refresh  map[string]string // refresh token -> access token
	otc      map[string]string // one-time code -> normalized email
	tokenTTL time.Duration
	logger   *slog.Logger
}

// NewStore parses "email:bcrypt-hash" entries into a dev credential store.
func NewStore(userEntries []string, tokenTTL time.Duration, logger *slog.Logger) (*Store, error) {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	if logger == nil {
		logger = slog.Default()
	}

	users := make(map[string]devUser, len(userEntries))
	for _, entry := range userEntries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		email, hash, ok := strings.Cut(entry, ":")
		if !ok || strings.TrimSpace(hash) == "" {
			return nil, fmt.Errorf("dev auth: malformed user entry %q, want email:bcrypt-hash", entry)
		}
		norm := strings.ToLower(strings.TrimSpace(email))
		if norm == "" {
			return nil, errors.New("dev auth: user entry has empty email")
		}
		users[norm] = devUser{
			id:           uuid.NewSHA1(uuid.NameSpaceOID, []byte(norm)).String(),
			email:        norm,
			passwordHash: strings.TrimSpace(hash),
		}
	}
	if len(users) == 0 {
		return nil, errors.New("dev auth: at least one user is required")
	}

	return &Store{
		users:    users,
		tokens:   make(map[string]issuedToken),
		refresh:  make(map[string]string),
		otc:      make(map[string]string),
		tokenTTL: tokenTTL,
		logger:   logger.With("component", "devauth"),
	}, nil
}

// VerifyPassword checks an email/password pair against the configured users.
func (s *Store) VerifyPassword(_ context.Context, email, password string) (ports.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		// burn comparable time so unknown users are not detectable by latency
		_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5B1S9l6FQ0ZC8cbMyTqG0uVhR0TSy"), []byte(password))
		return ports.Credentials{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.passwordHash), []byte(password)); err != nil {
		return ports.Credentials{}, ErrInvalidCredentials
	}
	return s.issueLocked(user)
}

// ExchangeOneTimeCode redeems a magic-link code issued by SendMagicLink.
func (s *Store) ExchangeOneTimeCode(_ context.Context, code string) (ports.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email, ok := s.otc[code]
	if !ok {
		return ports.Credentials{}, ErrInvalidCredentials
	}
	delete(s.otc, code)

	user, ok := s.users[email]
	if !ok {
		return ports.Credentials{}, ErrInvalidCredentials
	}
	return s.issueLocked(user)
}

// SendMagicLink generates a one-time code and logs the full login URL instead
// of sending email. The code is single use.
func (s *Store) SendMagicLink(_ context.Context, in ports.MagicLinkInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	norm := strings.ToLower(strings.TrimSpace(in.Email))
	if _, ok := s.users[norm]; !ok {
		// same outcome as success so the endpoint does not leak membership
		return nil
	}
	code, err := randomString(32)
	if err != nil {
		return fmt.Errorf("generate one-time code: %w", err)
	}
	s.otc[code] = norm

	s.logger.Info("magic link issued",
		"email", norm,
		"url", in.CallbackURL+"&code="+code,
	)
	return nil
}

// CurrentUser validates an access token issued by this store.
func (s *Store) CurrentUser(_ context.Context, accessToken string) (domainauth.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tok, ok := s.tokens[accessToken]
	if !ok || time.Now().After(tok.expiresAt) {
		return domainauth.Identity{}, ErrInvalidCredentials
	}
	return tok.identity, nil
}

// Refresh rotates a token pair.
func (s *Store) Refresh(_ context.Context, refreshToken string) (ports.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	access, ok := s.refresh[refreshToken]
	if !ok {
		return ports.Credentials{}, ErrInvalidCredentials
	}
	tok, ok := s.tokens[access]
	if !ok {
		return ports.Credentials{}, ErrInvalidCredentials
	}

	delete(s.refresh, refreshToken)
	delete(s.tokens, access)

	user, ok := s.users[tok.identity.NormalizedEmail()]
	if !ok {
		return ports.Credentials{}, ErrInvalidCredentials
	}
	return s.issueLocked(user)
}

// CreateUser registers a user at runtime with a bcrypt-hashed password. The
// user is lost on restart, like every other piece of devauth state.
func (s *Store) CreateUser(_ context.Context, email, password string) (domainauth.Identity, error) {
	norm := strings.ToLower(strings.TrimSpace(email))
	if norm == "" {
		return domainauth.Identity{}, errors.New("dev auth: email is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[norm]; ok {
		return domainauth.Identity{}, ports.ErrUserExists
	}
	user := devUser{
		id:           uuid.NewSHA1(uuid.NameSpaceOID, []byte(norm)).String(),
		email:        norm,
		passwordHash: string(hash),
	}
	s.users[norm] = user
	return domainauth.Identity{ID: user.id, Email: user.email}, nil
}

// Invalidate revokes the token pair behind an access token.
func (s *Store) Invalidate(_ context.Context, accessToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tok, ok := s.tokens[accessToken]; ok {
		delete(s.refresh, tok.refresh)
		delete(s.tokens, accessToken)
	}
	return nil
}

func (s *Store) issueLocked(user devUser) (ports.Credentials, error) {
	access, err := randomString(48)
	if err != nil {
		return ports.Credentials{}, fmt.Errorf("generate access token: %w", err)
	}
	refresh, err := randomString(48)
	if err != nil {
		return ports.Credentials{}, fmt.Errorf("generate refresh token: %w", err)
	}

	identity := domainauth.Identity{ID: user.id, Email: user.email}
	expiresAt := time.Now().Add(s.tokenTTL)
	s.tokens[access] = issuedToken{identity: identity, refresh: refresh, expiresAt: expiresAt}
	s.refresh[refresh] = access

	return ports.Credentials{
		Identity:     identity,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
	}, nil
}

func randomString(n int) (string, error) {
	if n <= 0 {
		return "", nil
	}
	bLen := (n*3 + 3) / 4
	b := make([]byte, bLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	s := base64.RawURLEncoding.EncodeToString(b)
	for len(s) < n {
		extra := make([]byte, 1)
		if _, err := rand.Read(extra); err != nil {
			return "", err
		}
		s += base64.RawURLEncoding.EncodeToString(extra)
	}
	return s[:n], nil
}
