package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	domainauth "github.com/apodaca-kapital/investor-portal/internal/domain/auth"
	"github.com/apodaca-kapital/investor-portal/internal/service"
)

// SessionChecker is the slice of the auth service the gateway needs.
type SessionChecker interface {
	GetSession(ctx context.Context, sessionID string) (*service.SessionCheck, error)
	Policy() service.AuthPolicy
}

// GatewayConfig configures the per-request access decision.
type GatewayConfig struct {
	Auth  SessionChecker
	Codec SessionCookieCodec
	// PublicPrefixes are paths served without any session read: the login
	// page, the credential-issuance endpoints, the one-time-link exchange
	// endpoint, static assets, health.
	PublicPrefixes []string
	// LoginPath receives unauthenticated page requests.
	LoginPath string
	Logger    *slog.Logger
}

// Gateway decides, once per inbound request, whether to pass the request
// through, send the caller to login, or send an authenticated caller to its
// own role home. Each invocation depends only on the request's credentials
// and the configured path lists; no state is shared between requests.
type Gateway struct {
	auth   SessionChecker
	codec  SessionCookieCodec
	public []string
	login  string
	logger *slog.Logger
}

// NewGateway constructs a Gateway.
func NewGateway(cfg GatewayConfig) *Gateway {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	login := cfg.LoginPath
	if login == "" {
		login = "/login"
	}
	return &Gateway{
		auth:   cfg.Auth,
		codec:  cfg.Codec,
		public: cfg.PublicPrefixes,
		login:  login,
		logger: logger.With("component", "gateway"),
	}
}

// Middleware wraps a handler with the access decision. Session cookies are
// written onto the very response that carries the decision; a refreshed
// session that reached only a discarded response object would sign the user
// out at the next request.
func (g *Gateway) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if g.isPublic(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		sessionID, ok := g.codec.Read(r)
		if !ok {
			g.denyToLogin(w, r)
			return
		}

		check, err := g.auth.GetSession(r.Context(), sessionID)
		if err != nil {
			// expired, invalid, or the credential store was unreachable;
			// all of them mean no session
			g.codec.Clear(w, r)
			g.denyToLogin(w, r)
			return
		}

		policy := g.auth.Policy()
		if domainauth.PathInArea(r.URL.Path, policy.AdminPrefixes) && check.Role != domainauth.RoleAdmin {
			g.denyToRoleHome(w, r, policy.ClientHome)
			return
		}

		if check.Refreshed {
			g.codec.Write(w, r, check.Session.ID, check.Session.ExpiresAt)
		}

		ctx := SetPrincipal(r.Context(), Principal{Session: check.Session, Role: check.Role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (g *Gateway) isPublic(path string) bool {
	return domainauth.PathInArea(path, g.public)
}

// denyToLogin sends the caller to the login page with the sanitized original
// destination, or a 401 for API requests.
func (g *Gateway) denyToLogin(w http.ResponseWriter, r *http.Request) {
	if isAPIPath(r.URL.Path) {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	target := g.login
	if dest, ok := domainauth.SanitizeRedirect(r.URL.RequestURI()); ok && dest != g.login {
		target += "?redirect=" + url.QueryEscape(dest)
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// denyToRoleHome sends an authenticated but unauthorized caller to its own
// home, never back to login.
func (g *Gateway) denyToRoleHome(w http.ResponseWriter, r *http.Request, home string) {
	if isAPIPath(r.URL.Path) {
		WriteError(w, ErrorParams{
			Code:    http.StatusForbidden,
			ErrCode: "insufficient_permissions",
			Err:     errors.New("insufficient permissions"),
		})
		return
	}
	http.Redirect(w, r, home, http.StatusFound)
}

func isAPIPath(path string) bool {
	return strings.HasPrefix(path, "/api/")
}
