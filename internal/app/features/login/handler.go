package login

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	apierrors "github.com/emberworks/crewboard/internal/app/features/errors"
	userstore "github.com/emberworks/crewboard/internal/app/store/users"
	"github.com/emberworks/crewboard/internal/app/system/auth"
	"github.com/emberworks/crewboard/internal/app/system/entitlement"
	"github.com/emberworks/crewboard/internal/app/system/timeouts"
	"github.com/emberworks/crewboard/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves sign-in and sign-out.
type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Log: logger}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User        *models.User            `json:"user"`
	Entitlement entitlement.Entitlement `json:"entitlement"`
}

// Login handles POST /login. Wrong email and wrong password get the same
// answer so the endpoint doesn't confirm which addresses have accounts.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.RenderBadRequest(w, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.Authenticate(ctx, req.Email, req.Password)
	if err == userstore.ErrBadCredentials {
		apierrors.RenderError(w, http.StatusUnauthorized, err.Error())
		return
	}
	if err != nil {
		apierrors.RenderInternal(w, h.Log, "login", err)
		return
	}

	if err := auth.SignIn(w, r, auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.FullName(),
		Email: u.Email,
		Role:  u.Role,
	}); err != nil {
		apierrors.RenderInternal(w, h.Log, "login: session", err)
		return
	}

	// Best effort; a failed stamp shouldn't block the sign-in.
	if err := h.Users.UpdateLastLogin(ctx, u.ID); err != nil {
		h.Log.Warn("login: last-login stamp failed",
			zap.String("user_id", u.ID.Hex()), zap.Error(err))
	}

	h.Log.Info("signed in", zap.String("user_id", u.ID.Hex()))

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(loginResponse{
		User:        u,
		Entitlement: entitlement.Evaluate(u, time.Now()),
	})
}

// Logout handles POST /logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := auth.SignOut(w, r); err != nil {
		apierrors.RenderInternal(w, h.Log, "logout", err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]bool{"signed_out": true})
}
