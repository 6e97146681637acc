// internal/app/features/profile/routes.go
package profile

import (
	"github.com/emberworks/crewboard/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns a subrouter for the profile endpoints.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Get("/", h.Show)   // mounted under /profile
	r.Put("/", h.Update) // mounted under /profile
	return r
}
