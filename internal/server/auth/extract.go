package auth

import (
	"net/http"
	"strings"
)

const (
	bearerPrefix    = "Bearer "
	tokenCookieName = "token"
)

// ExtractToken pulls a session token out of an incoming request. The
// Authorization header takes precedence over the token cookie; this ordering
// is part of the API contract.
func ExtractToken(r *http.Request) (string, bool) {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, bearerPrefix) {
		if token := strings.TrimSpace(strings.TrimPrefix(h, bearerPrefix)); token != "" {
			return token, true
		}
	}

	if c, err := r.Cookie(tokenCookieName); err == nil && c.Value != "" {
		return c.Value, true
	}

	return "", false
}
