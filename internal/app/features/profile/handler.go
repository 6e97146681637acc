package profile

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	apierrors "github.com/emberworks/crewboard/internal/app/features/errors"
	userstore "github.com/emberworks/crewboard/internal/app/store/users"
	"github.com/emberworks/crewboard/internal/app/system/entitlement"
	"github.com/emberworks/crewboard/internal/app/system/gates"
	"github.com/emberworks/crewboard/internal/app/system/inputval"
	"github.com/emberworks/crewboard/internal/app/system/normalize"
	"github.com/emberworks/crewboard/internal/app/system/timeouts"
	"github.com/emberworks/crewboard/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves the signed-in account's own profile.
type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Log: logger}
}

type profileResponse struct {
	User        *models.User            `json:"user"`
	Entitlement entitlement.Entitlement `json:"entitlement"`
}

// Show handles GET /profile.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, g.UserID)
	if err != nil {
		apierrors.RenderInternal(w, h.Log, "profile: load user", err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(profileResponse{
		User:        u,
		Entitlement: entitlement.Evaluate(u, time.Now()),
	})
}

type updateRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Update handles PUT /profile. Changing the email to one held by another
// account is a conflict, same as at registration.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.RenderBadRequest(w, "invalid JSON body")
		return
	}

	fields := make(map[string]string)
	if !inputval.IsValidEmail(normalize.Email(req.Email)) {
		fields["email"] = "a valid email address is required"
	}
	if !inputval.NonBlank(req.FirstName) {
		fields["first_name"] = "first name is required"
	}
	if !inputval.NonBlank(req.LastName) {
		fields["last_name"] = "last name is required"
	}
	if len(fields) > 0 {
		apierrors.RenderValidation(w, fields)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	taken, err := h.Users.EmailExistsForOther(ctx, req.Email, g.UserID)
	if err != nil {
		apierrors.RenderInternal(w, h.Log, "profile: email check", err)
		return
	}
	if taken {
		apierrors.RenderConflict(w, "an account with this email already exists")
		return
	}

	err = h.Users.UpdateProfile(ctx, g.UserID, userstore.ProfileUpdate{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err == userstore.ErrDuplicateEmail {
		apierrors.RenderConflict(w, err.Error())
		return
	}
	if err != nil {
		apierrors.RenderInternal(w, h.Log, "profile: update", err)
		return
	}

	u, err := h.Users.GetByID(ctx, g.UserID)
	if err != nil {
		apierrors.RenderInternal(w, h.Log, "profile: reload", err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(profileResponse{
		User:        u,
		Entitlement: entitlement.Evaluate(u, time.Now()),
	})
}
