package httpx

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// SessionCookieName is the base name of the session transport cookie.
const SessionCookieName = "portal_session"

// cookieChunkSize keeps each fragment safely under the 4KiB browser limit,
// leaving room for the name, attributes, and index suffix.
const cookieChunkSize = 3500

// maxCookieChunks bounds reassembly so a hostile client cannot make us scan
// an unbounded cookie namespace.
const maxCookieChunks = 8

// SessionCookieCodec reads and writes the session value over cookies. Values
// that exceed one cookie's capacity are split into indexed fragments
// (portal_session.0, portal_session.1, ...) and reassembled on read; either
// the whole value round-trips or Read reports absence.
type SessionCookieCodec struct {
	// Secure marks cookies Secure; disable only for local development.
	Secure bool
	// Path defaults to "/".
	Path string
}

func (c SessionCookieCodec) path() string {
	if c.Path == "" {
		return "/"
	}
	return c.Path
}

func (c SessionCookieCodec) newCookie(name, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     c.path(),
		Expires:  expires,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Write sets the session cookies on the response, splitting into fragments
// when the value does not fit a single cookie. Stale fragments beyond the new
// count are expired so shrinking values never leave trailing garbage.
func (c SessionCookieCodec) Write(w http.ResponseWriter, r *http.Request, value string, expires time.Time) {
	if len(value) <= cookieChunkSize {
		http.SetCookie(w, c.newCookie(SessionCookieName, value, expires))
		c.expireFragments(w, r, 0)
		return
	}

	// fragment: the base cookie is dropped, indexed chunks carry the value
	http.SetCookie(w, c.expired(SessionCookieName))
	n := 0
	for len(value) > 0 && n < maxCookieChunks {
		end := min(len(value), cookieChunkSize)
		http.SetCookie(w, c.newCookie(fragmentName(n), value[:end], expires))
		value = value[end:]
		n++
	}
	c.expireFragments(w, r, n)
}

// Read reassembles the session value from the request cookies. The second
// return is false when no session cookie is present.
func (c SessionCookieCodec) Read(r *http.Request) (string, bool) {
	if ck, err := r.Cookie(SessionCookieName); err == nil && ck.Value != "" {
		return ck.Value, true
	}

	var b strings.Builder
	for i := 0; i < maxCookieChunks; i++ {
		ck, err := r.Cookie(fragmentName(i))
		if err != nil || ck.Value == "" {
			break
		}
		b.WriteString(ck.Value)
	}
	if b.Len() == 0 {
		return "", false
	}
	return b.String(), true
}

// Clear expires the base cookie and every fragment present on the request.
func (c SessionCookieCodec) Clear(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, c.expired(SessionCookieName))
	c.expireFragments(w, r, 0)
}

func (c SessionCookieCodec) expired(name string) *http.Cookie {
	ck := c.newCookie(name, "", time.Unix(0, 0))
	ck.MaxAge = -1
	return ck
}

// expireFragments expires indexed fragments from index from onward that the
// client actually sent.
func (c SessionCookieCodec) expireFragments(w http.ResponseWriter, r *http.Request, from int) {
	if r == nil {
		return
	}
	for i := from; i < maxCookieChunks; i++ {
		if _, err := r.Cookie(fragmentName(i)); err != nil {
			return
		}
		http.SetCookie(w, c.expired(fragmentName(i)))
	}
}

func fragmentName(i int) string {
	return fmt.Sprintf("%s.%d", SessionCookieName, i)
}
