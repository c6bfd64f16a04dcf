package auth

import "strings"

// SanitizeRedirect validates a caller-supplied "return to" destination.
// Only same-application paths survive: the candidate must start with a
// single "/" and not with "//", which browsers treat as a protocol-relative
// external URL. Anything else is discarded. The function is idempotent:
// every accepted value passes unchanged through a second call.
func SanitizeRedirect(candidate string) (string, bool) {
	c := strings.TrimSpace(candidate)
	if c == "" {
		return "", false
	}
	if !strings.HasPrefix(c, "/") {
		return "", false
	}
	if strings.HasPrefix(c, "//") {
		return "", false
	}
	return c, true
}

// PathInArea reports whether the path falls under any of the given prefixes.
// A prefix matches exactly or at a "/" boundary, so "/admin" covers "/admin"
// and "/admin/clientes" but not "/administracion".
func PathInArea(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if prefix == "" {
			continue
		}
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
