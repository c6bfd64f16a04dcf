package httpx

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
)

const (
	// CSRFCookieName is readable by frontend scripts so they can echo the
	// token back in the header.
	CSRFCookieName = "portal_csrf"
	// CSRFHeaderName carries the echoed token on state-changing requests.
	CSRFHeaderName = "X-Csrf-Token"

	csrfTokenBytes    = 32
	csrfCookieMaxAge  = 3600 * 12
	csrfFormFieldName = "csrf_token"
)

// CSRFProtection guards the cookie-authenticated API with the double-submit
// pattern: a random token lives in a script-readable cookie and must be
// echoed back, via header or form field, on every state-changing request.
// Safe methods only ensure the cookie exists.
func CSRFProtection() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := csrfCookieValue(r)
			if token == "" {
				fresh, err := newCSRFToken()
				if err != nil {
					WriteError(w, ErrorParams{
						Code:    http.StatusInternalServerError,
						ErrCode: "internal",
						Err:     errors.New("internal error"),
					})
					return
				}
				token = fresh
				setCSRFCookie(w, r, token)
			}

			if requiresCSRFValidation(r.Method) && !validCSRFEcho(r, token) {
				WriteError(w, ErrorParams{
					Code:    http.StatusForbidden,
					ErrCode: "csrf_token_invalid",
					Err:     errors.New("csrf token missing or invalid"),
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func requiresCSRFValidation(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return false
	default:
		return true
	}
}

func csrfCookieValue(r *http.Request) string {
	cookie, err := r.Cookie(CSRFCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// newCSRFToken fails rather than falling back to a predictable value.
func newCSRFToken() (string, error) {
	b := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

func setCSRFCookie(w http.ResponseWriter, r *http.Request, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:  CSRFCookieName,
		Value: token,
		Path:  "/",
		// scripts must read this cookie to echo it back
		HttpOnly: false,
		Secure:   r.TLS != nil || isForwardedHTTPS(r),
		SameSite: http.SameSiteStrictMode,
		MaxAge:   csrfCookieMaxAge,
	})
}

func isForwardedHTTPS(r *http.Request) bool {
	for proto := range strings.SplitSeq(r.Header.Get("X-Forwarded-Proto"), ",") {
		if strings.EqualFold(strings.TrimSpace(proto), "https") {
			return true
		}
	}
	return false
}

// validCSRFEcho compares the echoed token against the cookie in constant
// time. The header wins; the form field covers multipart uploads.
func validCSRFEcho(r *http.Request, cookieToken string) bool {
	if cookieToken == "" {
		return false
	}

	if header := r.Header.Get(CSRFHeaderName); header != "" {
		return subtle.ConstantTimeCompare([]byte(header), []byte(cookieToken)) == 1
	}

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/x-www-form-urlencoded") || strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseForm(); err != nil {
			return false
		}
		if field := r.FormValue(csrfFormFieldName); field != "" {
			return subtle.ConstantTimeCompare([]byte(field), []byte(cookieToken)) == 1
		}
	}
	return false
}
