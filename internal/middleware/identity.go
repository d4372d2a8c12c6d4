// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// CallerKey is the context key for the caller identity.
	CallerKey contextKey = "caller"
)

// Identity reads the caller identity from the given request header and
// stores it in the request context. The header is expected to be set by a
// trusted upstream authenticator. This middleware does NOT enforce
// authentication; requests without the header continue anonymously.
func Identity(header string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if caller := strings.TrimSpace(r.Header.Get(header)); caller != "" {
				ctx := context.WithValue(r.Context(), CallerKey, caller)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireCaller rejects anonymous requests with 401.
// Must be applied after Identity in the middleware chain.
func RequireCaller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CallerFromCtx(r.Context()) == "" {
			writeError(w, http.StatusUnauthorized, "unauthenticated", "caller identity required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CallerFromCtx extracts the caller identity from the request context.
// Returns "" if the request is anonymous.
func CallerFromCtx(ctx context.Context) string {
	caller, _ := ctx.Value(CallerKey).(string)
	return caller
}

// writeError writes the JSON error envelope shared with the handlers.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}
