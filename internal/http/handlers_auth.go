package httpx

import (
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/apodaca-kapital/investor-portal/internal/service"
)

// AuthHandler serves the credential-issuance endpoints and session status.
// All of its routes are on the gateway's public list: login must never
// require a session.
type AuthHandler struct {
	auth  *service.AuthService
	codec SessionCookieCodec
	login string
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(auth *service.AuthService, codec SessionCookieCodec, loginPath string) *AuthHandler {
	if loginPath == "" {
		loginPath = "/login"
	}
	return &AuthHandler{auth: auth, codec: codec, login: loginPath}
}

type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RedirectTo string `json:"redirectTo,omitempty"`
	Remember   bool   `json:"remember,omitempty"`
}

type loginResponse struct {
	OK         bool   `json:"ok"`
	RedirectTo string `json:"redirectTo,omitempty"`
	Message    string `json:"message,omitempty"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	result, err := h.auth.Login(r.Context(), service.LoginInput{
		Email:             req.Email,
		Password:          req.Password,
		RequestedRedirect: req.RedirectTo,
		Remember:          req.Remember,
		ClientIP:          clientIP(r),
	})
	if err != nil {
		if errors.Is(err, service.ErrMissingInput) {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "missing_input", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "internal", Err: errors.New("internal error")})
		return
	}
	if !result.OK {
		// no session fragments on a failed login
		WriteJSON(w, http.StatusUnauthorized, loginResponse{OK: false, Message: result.Message})
		return
	}

	h.codec.Write(w, r, result.Session.ID, result.Session.ExpiresAt)
	WriteJSON(w, http.StatusOK, loginResponse{OK: true, RedirectTo: result.RedirectTo})
}

type magicLinkRequest struct {
	Email      string `json:"email"`
	RedirectTo string `json:"redirectTo,omitempty"`
}

// MagicLink handles POST /api/auth/magic-link. The response is identical for
// known and unknown emails.
func (h *AuthHandler) MagicLink(w http.ResponseWriter, r *http.Request) {
	var req magicLinkRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	err := h.auth.RequestMagicLink(r.Context(), service.MagicLinkRequest{
		Email:      req.Email,
		RedirectTo: req.RedirectTo,
		ClientIP:   clientIP(r),
	})
	if err != nil {
		if errors.Is(err, service.ErrMissingInput) {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "missing_input", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusBadGateway, ErrCode: "store_unavailable", Err: errors.New("could not send link")})
		return
	}
	WriteJSON(w, http.StatusAccepted, map[string]bool{"ok": true})
}

// Callback handles GET /auth/callback: the one-time-link exchange. The code
// and intended next-path arrive as query parameters from the emailed link.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.auth.ExchangeOneTimeLink(r.Context(), service.ExchangeInput{
		Code:     q.Get("code"),
		NextPath: q.Get("redirect"),
	})
	if err != nil || !result.OK {
		http.Redirect(w, r, h.login+"?error="+url.QueryEscape(service.GenericLoginFailure), http.StatusFound)
		return
	}

	h.codec.Write(w, r, result.Session.ID, result.Session.ExpiresAt)
	http.Redirect(w, r, result.RedirectTo, http.StatusFound)
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if sessionID, ok := h.codec.Read(r); ok {
		if err := h.auth.Logout(r.Context(), sessionID); err != nil {
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "internal", Err: errors.New("logout failed")})
			return
		}
	}
	h.codec.Clear(w, r)
	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type statusUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type statusResponse struct {
	Authenticated bool        `json:"authenticated"`
	User          *statusUser `json:"user,omitempty"`
}

// Status handles GET /api/auth/status: the frontend shell's session probe.
// It is public and performs its own optional session read; an invalid or
// absent session is simply "not authenticated", never an error.
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.codec.Read(r)
	if !ok {
		WriteJSON(w, http.StatusOK, statusResponse{Authenticated: false})
		return
	}
	check, err := h.auth.GetSession(r.Context(), sessionID)
	if err != nil {
		WriteJSON(w, http.StatusOK, statusResponse{Authenticated: false})
		return
	}
	if check.Refreshed {
		h.codec.Write(w, r, check.Session.ID, check.Session.ExpiresAt)
	}
	WriteJSON(w, http.StatusOK, statusResponse{
		Authenticated: true,
		User: &statusUser{
			ID:    check.Session.UserID,
			Email: check.Session.Email,
			Role:  string(check.Role),
		},
	})
}

// clientIP extracts the caller's address for throttle keying, preferring the
// first X-Forwarded-For hop when behind a proxy.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
