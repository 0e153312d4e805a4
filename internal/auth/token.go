package auth

import (
	"net/http"
	"strings"
)

// ExtractAccessToken reads the credential from the Authorization header.
// "Bearer <token>" is the expected form; a bare token is accepted too.
func ExtractAccessToken(r *http.Request) string {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	if authHeader == "" {
		return ""
	}

	scheme, token, found := strings.Cut(authHeader, " ")
	if !found {
		return authHeader
	}
	if !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
