/*
actor.go - Request-scoped acting user

PURPOSE:
  Session issuance and authentication live outside this service. Handlers
  only need "who is acting": an upstream gateway (or the test middleware
  below) resolves the session and injects the user into the request
  context.

CONTRACT:
  Every /api route except POST /api/stamp requires an actor. The badge
  endpoint is unauthenticated: the hardware terminal has no session,
  the card is the credential.
*/
package api

import (
	"context"
	"net/http"

	"github.com/zeitwerk/attendance-engine/attendance"
)

type actorKey struct{}

// WithActor returns a context carrying the acting user.
func WithActor(ctx context.Context, u *attendance.User) context.Context {
	return context.WithValue(ctx, actorKey{}, u)
}

// ActorFrom extracts the acting user, or nil when absent.
func ActorFrom(ctx context.Context) *attendance.User {
	u, _ := ctx.Value(actorKey{}).(*attendance.User)
	return u
}

// HeaderActor is a stand-in for the upstream session gateway: it resolves
// the X-User-Id header against the user store. Suitable for development
// and tests only.
func HeaderActor(users attendance.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-User-Id")
			if id != "" {
				if u, err := users.Get(r.Context(), attendance.UserID(id)); err == nil {
					r = r.WithContext(WithActor(r.Context(), u))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requireActor guards handlers that need a resolved acting user.
func requireActor(w http.ResponseWriter, r *http.Request) *attendance.User {
	actor := ActorFrom(r.Context())
	if actor == nil {
		writeError(w, http.StatusUnauthorized, "No acting user resolved", nil)
		return nil
	}
	return actor
}

// requireAdmin guards admin-only handlers.
func requireAdmin(w http.ResponseWriter, r *http.Request) *attendance.User {
	actor := requireActor(w, r)
	if actor == nil {
		return nil
	}
	if !actor.IsAdmin() {
		writeError(w, http.StatusForbidden, "Admin role required", attendance.ErrNotAllowed)
		return nil
	}
	return actor
}
