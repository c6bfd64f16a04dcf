package gotrue

// Package gotrue implements ports.CredentialStore against a GoTrue-compatible
// credential service (the hosted auth API behind the portal). Password and
// refresh grants go through golang.org/x/oauth2; access tokens are verified
// locally against the service's JWKS when possible, with the /user endpoint
// as the remote fallback.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	domainauth "github.com/apodaca-kapital/investor-portal/internal/domain/auth"
	"github.com/apodaca-kapital/investor-portal/internal/ports"
)

// ErrDenied is returned for any credential failure reported by the service.
// Callers surface it as a generic denial; the service's reason is not leaked.
var ErrDenied = ports.ErrInvalidCredentials

// Config holds connection settings for the credential service.
type Config struct {
	// BaseURL is the root of the auth API, e.g. "https://xyz.supabase.co/auth/v1".
	BaseURL string
	// APIKey is sent as the apikey header on every request.
	APIKey string
	// Issuer expected in access tokens. Defaults to BaseURL.
	Issuer string
	// Audience expected in access tokens, normally "authenticated".
	Audience string
	// HTTPClient overrides the default client. Its timeout bounds every call.
	HTTPClient *http.Client
}

// Store is the production credential store.
type Store struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	oauth      *oauth2.Config
	verifier   *gooidc.IDTokenVerifier
}

// NewStore creates a Store. The JWKS key set is fetched lazily on first
// verification, so construction never blocks on the network.
func NewStore(cfg Config) (*Store, error) {
	base := strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("gotrue: base URL is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("gotrue: API key is required")
	}
	issuer := strings.TrimSpace(cfg.Issuer)
	if issuer == "" {
		issuer = base
	}
	audience := cfg.Audience
	if audience == "" {
		audience = "authenticated"
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	keySet := gooidc.NewRemoteKeySet(
		gooidc.ClientContext(context.Background(), httpClient),
		base+"/.well-known/jwks.json",
	)
	verifier := gooidc.NewVerifier(issuer, keySet, &gooidc.Config{
		ClientID: audience,
	})

	return &Store{
		baseURL:    base,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		oauth: &oauth2.Config{
			// GoTrue's token endpoint speaks the resource-owner password and
			// refresh grants with form-encoded parameters.
			Endpoint: oauth2.Endpoint{
				TokenURL:  base + "/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		verifier: verifier,
	}, nil
}

// tokenUser is the "user" object GoTrue embeds in token and verify responses.
type tokenUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// tokenResponse is the service's session payload.
type tokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int64     `json:"expires_in"`
	User         tokenUser `json:"user"`
}

// VerifyPassword checks an email/password pair via the password grant.
func (s *Store) VerifyPassword(ctx context.Context, email, password string) (ports.Credentials, error) {
	tok, err := s.oauth.PasswordCredentialsToken(s.oauthContext(ctx), strings.TrimSpace(email), password)
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) && rerr.Response != nil && rerr.Response.StatusCode < 500 {
			return ports.Credentials{}, ErrDenied
		}
		return ports.Credentials{}, fmt.Errorf("password grant: %w", err)
	}
	return s.credentialsFromOAuthToken(ctx, tok)
}

// ExchangeOneTimeCode redeems a magic-link code via the verify endpoint.
func (s *Store) ExchangeOneTimeCode(ctx context.Context, code string) (ports.Credentials, error) {
	if strings.TrimSpace(code) == "" {
		return ports.Credentials{}, ErrDenied
	}

	body, status, err := s.post(ctx, "/verify", map[string]string{
		"type":  "magiclink",
		"token": code,
	}, "")
	if err != nil {
		return ports.Credentials{}, fmt.Errorf("verify one-time code: %w", err)
	}
	if status != http.StatusOK {
		return ports.Credentials{}, ErrDenied
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return ports.Credentials{}, fmt.Errorf("decode verify response: %w", err)
	}
	return s.credentialsFromResponse(ctx, tr)
}

// SendMagicLink asks the service to email a one-time login link.
func (s *Store) SendMagicLink(ctx context.Context, in ports.MagicLinkInput) error {
	payload := map[string]string{"email": strings.TrimSpace(in.Email)}
	if in.CallbackURL != "" {
		payload["redirect_to"] = in.CallbackURL
	}

	_, status, err := s.post(ctx, "/magiclink", payload, "")
	if err != nil {
		return fmt.Errorf("send magic link: %w", err)
	}
	// 4xx covers unknown emails; treated as sent so the endpoint does not
	// leak account membership.
	if status >= 500 {
		return fmt.Errorf("send magic link: service returned %d", status)
	}
	return nil
}

// CurrentUser validates an access token. Verification is local (JWKS) when
// the key set is reachable, with the /user endpoint as fallback.
func (s *Store) CurrentUser(ctx context.Context, accessToken string) (domainauth.Identity, error) {
	if accessToken == "" {
		return domainauth.Identity{}, ErrDenied
	}

	if identity, err := s.verifyLocally(ctx, accessToken); err == nil {
		return identity, nil
	}

	body, status, err := s.get(ctx, "/user", accessToken)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("fetch current user: %w", err)
	}
	if status != http.StatusOK {
		return domainauth.Identity{}, ErrDenied
	}

	var u tokenUser
	if err := json.Unmarshal(body, &u); err != nil {
		return domainauth.Identity{}, fmt.Errorf("decode user response: %w", err)
	}
	if u.ID == "" {
		return domainauth.Identity{}, ErrDenied
	}
	return domainauth.Identity{ID: u.ID, Email: u.Email}, nil
}

// Refresh exchanges a refresh token for fresh credentials.
func (s *Store) Refresh(ctx context.Context, refreshToken string) (ports.Credentials, error) {
	if refreshToken == "" {
		return ports.Credentials{}, ErrDenied
	}

	seed := &oauth2.Token{RefreshToken: refreshToken, Expiry: time.Now().Add(-time.Minute)}
	tok, err := s.oauth.TokenSource(s.oauthContext(ctx), seed).Token()
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) && rerr.Response != nil && rerr.Response.StatusCode < 500 {
			return ports.Credentials{}, ErrDenied
		}
		return ports.Credentials{}, fmt.Errorf("refresh grant: %w", err)
	}
	return s.credentialsFromOAuthToken(ctx, tok)
}

// Invalidate revokes the store-side session behind an access token.
// CreateUser registers an email/password user through the admin endpoint.
// The configured API key must be a service-role key for this call.
func (s *Store) CreateUser(ctx context.Context, email, password string) (domainauth.Identity, error) {
	payload := map[string]any{
		"email":         email,
		"password":      password,
		"email_confirm": true,
	}
	body, status, err := s.post(ctx, "/admin/users", payload, "")
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("create user: %w", err)
	}
	switch {
	case status == http.StatusUnprocessableEntity || status == http.StatusConflict:
		return domainauth.Identity{}, ports.ErrUserExists
	case status >= 400:
		return domainauth.Identity{}, fmt.Errorf("create user: service returned %d", status)
	}

	var user tokenUser
	if err := json.Unmarshal(body, &user); err != nil {
		return domainauth.Identity{}, fmt.Errorf("create user: decode response: %w", err)
	}
	if user.ID == "" {
		return domainauth.Identity{}, errors.New("create user: response has no id")
	}
	return domainauth.Identity{ID: user.ID, Email: user.Email}, nil
}

func (s *Store) Invalidate(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}
	_, status, err := s.post(ctx, "/logout", nil, accessToken)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if status >= 500 {
		return fmt.Errorf("logout: service returned %d", status)
	}
	return nil
}

// --- helpers ---

// verifyLocally checks the access token signature and claims against the
// service's JWKS.
func (s *Store) verifyLocally(ctx context.Context, accessToken string) (domainauth.Identity, error) {
	tok, err := s.verifier.Verify(gooidc.ClientContext(ctx, s.httpClient), accessToken)
	if err != nil {
		return domainauth.Identity{}, err
	}
	var claims struct {
		Email string `json:"email"`
	}
	if err := tok.Claims(&claims); err != nil {
		return domainauth.Identity{}, err
	}
	if tok.Subject == "" {
		return domainauth.Identity{}, errors.New("token has no subject")
	}
	return domainauth.Identity{ID: tok.Subject, Email: claims.Email}, nil
}

// credentialsFromOAuthToken maps an oauth2 token into Credentials, resolving
// the identity from the embedded user object or the token itself.
func (s *Store) credentialsFromOAuthToken(ctx context.Context, tok *oauth2.Token) (ports.Credentials, error) {
	tr := tokenResponse{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
	}
	if raw, ok := tok.Extra("user").(map[string]any); ok {
		if id, ok := raw["id"].(string); ok {
			tr.User.ID = id
		}
		if email, ok := raw["email"].(string); ok {
			tr.User.Email = email
		}
	}

	creds, err := s.credentialsFromResponse(ctx, tr)
	if err != nil {
		return ports.Credentials{}, err
	}
	if !tok.Expiry.IsZero() {
		creds.ExpiresAt = tok.Expiry
	}
	return creds, nil
}

func (s *Store) credentialsFromResponse(ctx context.Context, tr tokenResponse) (ports.Credentials, error) {
	if tr.AccessToken == "" {
		return ports.Credentials{}, ErrDenied
	}

	identity := domainauth.Identity{ID: tr.User.ID, Email: tr.User.Email}
	if identity.ID == "" {
		resolved, err := s.CurrentUser(ctx, tr.AccessToken)
		if err != nil {
			return ports.Credentials{}, err
		}
		identity = resolved
	}

	expiresAt := time.Now().Add(time.Hour)
	if tr.ExpiresIn > 0 {
		expiresAt = time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	}

	return ports.Credentials{
		Identity:     identity,
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}

// oauthContext injects our HTTP client into oauth2 calls.
func (s *Store) oauthContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
}

func (s *Store) post(ctx context.Context, path string, payload any, bearer string) ([]byte, int, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, body)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	return s.do(req, bearer)
}

func (s *Store) get(ctx context.Context, path, bearer string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return nil, 0, err
	}
	return s.do(req, bearer)
}

func (s *Store) do(req *http.Request, bearer string) ([]byte, int, error) {
	req.Header.Set("apikey", s.apiKey)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	return data, resp.StatusCode, nil
}
