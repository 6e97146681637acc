// internal/app/features/settings/routes.go
package settings

import (
	"github.com/emberworks/crewboard/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns a subrouter for the settings endpoints, mounted under
// /settings.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Get("/preferences", h.ShowPreferences)
	r.Put("/preferences", h.UpdatePreferences)
	r.Post("/account/delete", h.DeleteAccount)
	return r
}
