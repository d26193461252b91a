/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend
  5. Actor:      Resolves the acting user into the request context

SECURITY NOTE:
  POST /api/stamp is intentionally unauthenticated - the badge terminal
  has no session, the card is the credential. Everything else requires a
  resolved actor; session issuance belongs to an upstream gateway (the
  HeaderActor stand-in serves development).

SEE ALSO:
  - handlers.go: Handler implementations
  - actor.go: Acting-user resolution
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured. actorMW
// resolves the acting user; pass HeaderActor(users) outside production.
func NewRouter(h *Handler, actorMW func(http.Handler) http.Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-User-Id"},
		AllowCredentials: true,
	}))
	if actorMW != nil {
		r.Use(actorMW)
	}

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Stamping
		r.Post("/stamp", h.StampBadge)
		r.Post("/stamp/manual", h.StampManual)

		// Journal
		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", h.ListBookings)
			r.Put("/{id}", h.EditBooking)
		})

		// Figures
		r.Get("/dashboard", h.Dashboard)
		r.Get("/month-stats", h.MonthStats)

		// Requests
		r.Route("/requests", func(r chi.Router) {
			r.Get("/", h.ListRequests)
			r.Post("/", h.SubmitRequest)
			r.Put("/{id}/status", h.UpdateRequestStatus)
			r.Post("/{id}/seen", h.MarkRequestSeen)
			r.Delete("/{id}", h.DeleteRequest)
		})

		// Audit trail
		r.Get("/history", h.History)

		// User management
		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.ListUsers)
			r.Post("/", h.CreateUser)
			r.Put("/{id}", h.UpdateUser)
			r.Delete("/{id}", h.DeactivateUser)
		})
	})

	return r
}
