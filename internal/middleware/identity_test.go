// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIdentity(t *testing.T) {
	tests := []struct {
		name   string
		header string
		value  string
		want   string
	}{
		{name: "header present", header: "X-Remote-User", value: "alice", want: "alice"},
		{name: "surrounding space trimmed", header: "X-Remote-User", value: "  bob ", want: "bob"},
		{name: "blank is anonymous", header: "X-Remote-User", value: "   ", want: ""},
		{name: "missing is anonymous", header: "X-Remote-User", value: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			handler := Identity("X-Remote-User")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = CallerFromCtx(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.value != "" {
				req.Header.Set(tt.header, tt.value)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			if got != tt.want {
				t.Errorf("caller: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIdentityCustomHeader(t *testing.T) {
	var got string
	handler := Identity("X-Forwarded-User")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = CallerFromCtx(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Remote-User", "ignored")
	req.Header.Set("X-Forwarded-User", "carol")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got != "carol" {
		t.Errorf("caller: got %q, want %q", got, "carol")
	}
}

func TestRequireCaller(t *testing.T) {
	var called bool
	handler := Identity("X-Remote-User")(RequireCaller(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	})))

	t.Run("anonymous is rejected", func(t *testing.T) {
		called = false
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/ideas", nil))

		if called {
			t.Error("next handler must not run for anonymous requests")
		}
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("status: got %d, want 401", rr.Code)
		}

		var body struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.Error.Code != "unauthenticated" {
			t.Errorf("code: got %q, want unauthenticated", body.Error.Code)
		}
	})

	t.Run("identified caller passes", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodPost, "/api/ideas", nil)
		req.Header.Set("X-Remote-User", "alice")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if !called {
			t.Error("next handler should have been called")
		}
		if rr.Code != http.StatusNoContent {
			t.Errorf("status: got %d, want 204", rr.Code)
		}
	})
}
