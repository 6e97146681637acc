// internal/app/features/adminjobs/routes.go
package adminjobs

import (
	"github.com/emberworks/crewboard/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns a subrouter for posting management, mounted under
// /admin. The role middleware rejects non-admins before the handlers
// run; the per-handler gates stay as a second check.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Use(auth.RequireRole("admin"))

	r.Get("/jobs", h.List)
	r.Post("/jobs", h.Create)
	r.Get("/jobs/{jobID}", h.Get)
	r.Put("/jobs/{jobID}", h.Update)
	r.Delete("/jobs/{jobID}", h.Delete)
	r.Post("/jobs/{jobID}/toggle-active", h.ToggleActive)
	r.Get("/stats", h.Stats)
	return r
}
