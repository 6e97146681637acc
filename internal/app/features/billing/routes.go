// internal/app/features/billing/routes.go
package billing

import (
	"github.com/emberworks/crewboard/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns a subrouter for the billing endpoints, mounted under
// /billing.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Post("/subscribe", h.Subscribe)
	r.Post("/cancel", h.Cancel)
	r.Post("/reactivate", h.Reactivate)
	r.Get("/payments", h.PaymentHistory)
	return r
}
