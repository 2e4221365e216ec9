package server

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
)

const bearerPrefix = "Bearer "

// requireToken rejects requests whose Authorization header does not carry
// secret as a bearer token. An empty secret rejects everything, so the RPC
// endpoints stay closed until a secret is configured. Failures are answered
// with a JSON-RPC error object and HTTP 401.
func requireToken(secret string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !authorized(secret, r.Header.Get("Authorization")) {
			writeUnauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// optionalToken checks the bearer token only when a secret is configured.
// The browser proxy route uses it: the original web frontend never sends
// credentials, so it is reachable without one on a loopback-only daemon.
func optionalToken(secret string, next http.Handler) http.Handler {
	if secret == "" {
		return next
	}
	return requireToken(secret, next)
}

// authorized compares in constant time.
func authorized(secret, header string) bool {
	if secret == "" || !strings.HasPrefix(header, bearerPrefix) {
		return false
	}
	token := header[len(bearerPrefix):]
	return subtle.ConstantTimeCompare([]byte(token), []byte(secret)) == 1
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"jsonrpc": "2.0",
		"error": map[string]any{
			"code":    -32600,
			"message": "Unauthorized",
		},
		"id": nil,
	})
}
