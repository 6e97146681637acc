// internal/app/features/jobs/routes.go
package jobs

import (
	"github.com/emberworks/crewboard/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns a subrouter for the public posting endpoints, mounted
// at the root.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/jobs", h.List)
	r.Get("/jobs/{jobID}", h.Detail)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSignedIn)
		r.Post("/jobs/{jobID}/bookmark", h.ToggleBookmark)
		r.Post("/jobs/{jobID}/apply", h.Apply)
		r.Get("/bookmarks", h.Bookmarks)
	})

	return r
}
