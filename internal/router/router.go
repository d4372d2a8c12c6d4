// Package router sets up all HTTP routes and middleware chains for the idea
// board. It organizes routes into read and write groups with appropriate
// middleware stacks.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"ideaboard/internal/handlers"
	"ideaboard/internal/middleware"
)

// Options configures the transport.
type Options struct {
	IdentityHeader     string
	RateLimitPerMinute int
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(opts Options, board *handlers.Board) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request. Identity runs before
	// Logger so the access log carries the caller.
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.Identity(opts.IdentityHeader))
	r.Use(middleware.Logger)

	r.NotFound(jsonStatus(http.StatusNotFound, "not_found", "no such route"))
	r.MethodNotAllowed(jsonStatus(http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed"))

	// Health check, no identity.
	r.Get("/health", healthHandler)

	limiter := middleware.NewRateLimiter(opts.RateLimitPerMinute, time.Minute)

	r.Route("/api", func(r chi.Router) {
		// Reads; identity is optional and only shapes the vote fields.
		r.Get("/categories", board.ListCategories)
		r.Get("/ideas", board.ListIdeas)
		r.Get("/ideas/{id}", board.GetIdea)
		r.Get("/ideas/{id}/comments", board.ListComments)

		// Everything below requires a caller.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireCaller)

			r.Get("/me/ideas", board.ListOwnIdeas)
			r.Get("/me/comments", board.ListOwnComments)

			// Mutations are rate limited per caller.
			r.Group(func(r chi.Router) {
				r.Use(limiter.Middleware)

				r.Post("/ideas", board.CreateIdea)
				r.Put("/ideas/{id}/status", board.SetStatus)
				r.Put("/ideas/{id}/vote", board.CastVote)
				r.Delete("/ideas/{id}/vote", board.RemoveVote)
				r.Post("/ideas/{id}/comments", board.AddComment)
			})
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func jsonStatus(status int, code, message string) http.HandlerFunc {
	body := []byte(`{"error":{"code":"` + code + `","message":"` + message + `"}}`)
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		w.Write(body)
	}
}
