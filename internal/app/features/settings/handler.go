package settings

import (
	"context"
	"encoding/json"
	"net/http"

	apierrors "github.com/emberworks/crewboard/internal/app/features/errors"
	paymentstore "github.com/emberworks/crewboard/internal/app/store/payments"
	preferencestore "github.com/emberworks/crewboard/internal/app/store/preferences"
	userstore "github.com/emberworks/crewboard/internal/app/store/users"
	"github.com/emberworks/crewboard/internal/app/system/auth"
	"github.com/emberworks/crewboard/internal/app/system/gates"
	"github.com/emberworks/crewboard/internal/app/system/timeouts"
	"github.com/emberworks/crewboard/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves preference management and account deletion.
type Handler struct {
	Users       *userstore.Store
	Payments    *paymentstore.Store
	Preferences *preferencestore.Store
	Log         *zap.Logger
}

func NewHandler(users *userstore.Store, payments *paymentstore.Store, prefs *preferencestore.Store, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Payments: payments, Preferences: prefs, Log: logger}
}

// ShowPreferences handles GET /settings/preferences. A user who never
// saved gets the defaults.
func (h *Handler) ShowPreferences(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Preferences.Get(ctx, g.UserID)
	if err != nil {
		apierrors.RenderInternal(w, h.Log, "preferences: load", err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(p)
}

type preferencesRequest struct {
	Notifications models.NotificationSettings `json:"notifications"`
	JobAlerts     models.JobAlertSettings     `json:"job_alerts"`
	Privacy       models.PrivacySettings      `json:"privacy"`
}

// UpdatePreferences handles PUT /settings/preferences. Alert filters are
// validated against the closed category and experience sets.
func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}

	var req preferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.RenderBadRequest(w, "invalid JSON body")
		return
	}

	fields := make(map[string]string)
	for _, jt := range req.JobAlerts.JobTypes {
		if !models.IsValidJobType(jt) {
			fields["job_alerts.job_types"] = "unknown job type: " + jt
			break
		}
	}
	for _, el := range req.JobAlerts.ExperienceLevels {
		if !models.IsValidExperienceLevel(el) {
			fields["job_alerts.experience_levels"] = "unknown experience level: " + el
			break
		}
	}
	if len(fields) > 0 {
		apierrors.RenderValidation(w, fields)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p := models.Preferences{
		UserID:        g.UserID,
		Notifications: req.Notifications,
		JobAlerts:     req.JobAlerts,
		Privacy:       req.Privacy,
	}
	if err := h.Preferences.Upsert(ctx, p); err != nil {
		apierrors.RenderInternal(w, h.Log, "preferences: save", err)
		return
	}

	saved, err := h.Preferences.Get(ctx, g.UserID)
	if err != nil {
		apierrors.RenderInternal(w, h.Log, "preferences: reload", err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(saved)
}

// DeleteAccount handles POST /settings/account/delete. The cascade
// removes the account, its payment ledger, and its preferences, then
// destroys the session. Order matters: the user document goes first so
// a crash mid-cascade can't leave a usable account with orphan data
// pointing at it.
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	n, err := h.Users.Delete(ctx, g.UserID)
	if err != nil {
		apierrors.RenderInternal(w, h.Log, "account delete: user", err)
		return
	}
	if n == 0 {
		apierrors.RenderNotFound(w, "account not found")
		return
	}

	if _, err := h.Payments.DeleteByUser(ctx, g.UserID); err != nil {
		h.Log.Error("account delete: payments cascade failed",
			zap.String("user_id", g.UserID.Hex()), zap.Error(err))
	}
	if _, err := h.Preferences.DeleteByUser(ctx, g.UserID); err != nil {
		h.Log.Error("account delete: preferences cascade failed",
			zap.String("user_id", g.UserID.Hex()), zap.Error(err))
	}

	if err := auth.SignOut(w, r); err != nil {
		h.Log.Warn("account delete: session teardown failed", zap.Error(err))
	}

	h.Log.Info("account deleted", zap.String("user_id", g.UserID.Hex()))

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]bool{"deleted": true})
}
