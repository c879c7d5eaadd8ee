package handler

import (
	"net/http"

	"github.com/eventtix/eventtix/internal/auth"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter assembles the full route tree with the global middleware stack.
func NewRouter(
	authHandler *AuthHandler,
	eventHandler *EventHandler,
	ticketHandler *TicketHandler,
	tokens *auth.TokenManager,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(Logger)                  // structured access log
	r.Use(CORS)                    // permissive CORS for browser clients

	r.Get("/api/health", HealthCheck)

	// Public surface.
	r.Post("/register", authHandler.Register)
	r.Post("/login", authHandler.Login)
	r.Post("/logout", authHandler.Logout)
	r.Get("/events", eventHandler.List)
	r.Get("/events/{id}", eventHandler.Get)

	// Session-gated surface.
	r.Group(func(r chi.Router) {
		r.Use(RequireAuth(tokens))
		r.Get("/profile", authHandler.Profile)
		r.Post("/createEvent", eventHandler.Create)
		r.Post("/tickets", ticketHandler.Purchase)
		r.Get("/tickets/user/{userId}", ticketHandler.ListForUser)
		r.Delete("/tickets/{ticketId}", ticketHandler.Cancel)
	})

	return r
}
