package handlers

import (
	"net/http"
	"net/url"
	"strings"
)

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}

// WantsJSON tells API and AJAX callers apart from browser navigation.
func WantsJSON(r *http.Request) bool {
	return r.Header.Get("X-Requested-With") == "XMLHttpRequest" ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}

// RedirectToLogin sends browsers to the login page with a way back; API callers get 401.
func RedirectToLogin(w http.ResponseWriter, r *http.Request, loginURL string) {
	if WantsJSON(r) {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	target := loginURL + "?" + url.Values{"next": {r.URL.RequestURI()}}.Encode()
	http.Redirect(w, r, target, http.StatusFound)
}
