package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	domainauth "github.com/apodaca-kapital/investor-portal/internal/domain/auth"
	"github.com/apodaca-kapital/investor-portal/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.CredentialStore = (*MockCredentialStore)(nil)
	_ ports.SessionStore    = (*MemorySessionStore)(nil)
	_ ports.RoleResolver    = (*AllowlistRoleResolver)(nil)
	_ ports.LoginThrottle   = (*MemoryThrottle)(nil)
)

// MockCredentialStore simulates the hosted credential service. Every method
// can be overridden per test; defaults behave like a store with one known
// user, "cliente@example.com" / "secreta123".
type MockCredentialStore struct {
	VerifyPasswordFunc  func(ctx context.Context, email, password string) (ports.Credentials, error)
	ExchangeOneTimeFunc func(ctx context.Context, code string) (ports.Credentials, error)
	SendMagicLinkFunc   func(ctx context.Context, in ports.MagicLinkInput) error
	CurrentUserFunc     func(ctx context.Context, accessToken string) (domainauth.Identity, error)
	RefreshFunc         func(ctx context.Context, refreshToken string) (ports.Credentials, error)
	InvalidateFunc      func(ctx context.Context, accessToken string) error
	SentMagicLinks      []ports.MagicLinkInput
	InvalidatedTokens   []string
	DefaultIdentity     domainauth.Identity
	DefaultTokenTTL     time.Duration
}

// NewMockCredentialStore creates a MockCredentialStore with sensible defaults.
func NewMockCredentialStore() *MockCredentialStore {
	return &MockCredentialStore{
		DefaultIdentity: domainauth.Identity{ID: "mock-user-1", Email: "cliente@example.com"},
		DefaultTokenTTL: time.Hour,
	}
}

func (m *MockCredentialStore) defaultCredentials() ports.Credentials {
	return ports.Credentials{
		Identity:     m.DefaultIdentity,
		AccessToken:  "mock-access",
		RefreshToken: "mock-refresh",
		ExpiresAt:    time.Now().Add(m.DefaultTokenTTL),
	}
}

func (m *MockCredentialStore) VerifyPassword(ctx context.Context, email, password string) (ports.Credentials, error) {
	if m.VerifyPasswordFunc != nil {
		return m.VerifyPasswordFunc(ctx, email, password)
	}
	if strings.EqualFold(strings.TrimSpace(email), m.DefaultIdentity.Email) && password == "secreta123" {
		return m.defaultCredentials(), nil
	}
	return ports.Credentials{}, ports.ErrInvalidCredentials
}

func (m *MockCredentialStore) ExchangeOneTimeCode(ctx context.Context, code string) (ports.Credentials, error) {
	if m.ExchangeOneTimeFunc != nil {
		return m.ExchangeOneTimeFunc(ctx, code)
	}
	if code == "valid-code" {
		return m.defaultCredentials(), nil
	}
	return ports.Credentials{}, ports.ErrInvalidCredentials
}

func (m *MockCredentialStore) SendMagicLink(ctx context.Context, in ports.MagicLinkInput) error {
	if m.SendMagicLinkFunc != nil {
		return m.SendMagicLinkFunc(ctx, in)
	}
	m.SentMagicLinks = append(m.SentMagicLinks, in)
	return nil
}

func (m *MockCredentialStore) CurrentUser(ctx context.Context, accessToken string) (domainauth.Identity, error) {
	if m.CurrentUserFunc != nil {
		return m.CurrentUserFunc(ctx, accessToken)
	}
	if accessToken == "mock-access" {
		return m.DefaultIdentity, nil
	}
	return domainauth.Identity{}, ports.ErrInvalidCredentials
}

func (m *MockCredentialStore) Refresh(ctx context.Context, refreshToken string) (ports.Credentials, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	if refreshToken == "mock-refresh" {
		creds := m.defaultCredentials()
		creds.AccessToken = "mock-access-2"
		creds.RefreshToken = "mock-refresh-2"
		return creds, nil
	}
	return ports.Credentials{}, ports.ErrInvalidCredentials
}

func (m *MockCredentialStore) Invalidate(ctx context.Context, accessToken string) error {
	if m.InvalidateFunc != nil {
		return m.InvalidateFunc(ctx, accessToken)
	}
	m.InvalidatedTokens = append(m.InvalidatedTokens, accessToken)
	return nil
}

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session
	// SaveErr and GetErr force failures for fail-closed tests.
	SaveErr error
	GetErr  error
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]domainauth.Session),
	}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	if m.GetErr != nil {
		return domainauth.Session{}, m.GetErr
	}
	if id == "" {
		return domainauth.Session{}, ErrNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, ErrNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len reports the number of stored sessions.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// ErrNotFound is returned by mocks when an entity is not present.
type notFoundError struct{}

func (notFoundError) Error() string { return "not found" }

var ErrNotFound error = notFoundError{}

// AllowlistRoleResolver resolves admin membership from a fixed email list.
type AllowlistRoleResolver struct {
	AdminEmails []string
}

func (r AllowlistRoleResolver) Resolve(identity domainauth.Identity) domainauth.Role {
	for _, e := range r.AdminEmails {
		if strings.EqualFold(strings.TrimSpace(e), identity.NormalizedEmail()) {
			return domainauth.RoleAdmin
		}
	}
	return domainauth.RoleClient
}

// MemoryThrottle is an in-memory login throttle for unit tests.
type MemoryThrottle struct {
	mu       sync.Mutex
	counts   map[string]int
	Max      int
	AllowErr error
}

// NewMemoryThrottle creates a throttle allowing max attempts per key.
func NewMemoryThrottle(maxAttempts int) *MemoryThrottle {
	return &MemoryThrottle{counts: make(map[string]int), Max: maxAttempts}
}

func (t *MemoryThrottle) Allow(_ context.Context, key string) (bool, error) {
	if t.AllowErr != nil {
		return false, t.AllowErr
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counts[key] < t.Max, nil
}

func (t *MemoryThrottle) RecordFailure(_ context.Context, key string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.counts[key]++
	return nil
}

func (t *MemoryThrottle) Reset(_ context.Context, key string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.counts, key)
	return nil
}
