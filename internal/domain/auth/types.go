package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"strings"
	"time"
)

// Role represents an application's authorization role.
// It is derived per request from the admin allow-list and never persisted as
// an authorization source; valid values are defined as constants below.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// Identity represents the authenticated principal returned by the credential
// store. The gateway only ever reads it; it is recomputed on every login or
// token verification, never cached across requests.
type Identity struct {
	ID    string // stable user identifier (sub claim)
	Email string
}

// NormalizedEmail returns the identity's email lower-cased and trimmed, the
// form used for allow-list membership checks.
func (i Identity) NormalizedEmail() string {
	return strings.ToLower(strings.TrimSpace(i.Email))
}

// Session is the server-side record we persist for an authenticated user.
// ID is an opaque session identifier carried by the client in a cookie.
// The access/refresh tokens belong to the credential store; the portal treats
// them as opaque strings.
type Session struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	AccessToken  string    `json:"access_token,omitempty"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	Remember     bool      `json:"remember,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Identity projects the session's principal. Role is intentionally absent:
// callers must resolve it against the allow-list for the current request.
func (s Session) Identity() Identity {
	return Identity{ID: s.UserID, Email: s.Email}
}

// ExpiresWithin reports whether the session expires inside the given window.
func (s Session) ExpiresWithin(window time.Duration) bool {
	return time.Until(s.ExpiresAt) <= window
}
