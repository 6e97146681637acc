package register

import (
	"context"
	"encoding/json"
	"net/http"

	apierrors "github.com/emberworks/crewboard/internal/app/features/errors"
	userstore "github.com/emberworks/crewboard/internal/app/store/users"
	"github.com/emberworks/crewboard/internal/app/system/auth"
	"github.com/emberworks/crewboard/internal/app/system/inputval"
	"github.com/emberworks/crewboard/internal/app/system/normalize"
	"github.com/emberworks/crewboard/internal/app/system/timeouts"
	"github.com/emberworks/crewboard/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves account registration.
type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Log: logger}
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type registerResponse struct {
	User *models.User `json:"user"`
}

// Register handles POST /register. New accounts always start as
// unsubscribed standard users; roles are never taken from the request.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.RenderBadRequest(w, "invalid JSON body")
		return
	}

	if fields := validate(req); len(fields) > 0 {
		apierrors.RenderValidation(w, fields)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.Create(ctx, models.User{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      models.RoleUser,
	})
	if err == userstore.ErrDuplicateEmail {
		apierrors.RenderConflict(w, err.Error())
		return
	}
	if err != nil {
		apierrors.RenderInternal(w, h.Log, "register", err)
		return
	}

	// Sign the new account in right away.
	if err := auth.SignIn(w, r, auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.FullName(),
		Email: u.Email,
		Role:  u.Role,
	}); err != nil {
		apierrors.RenderInternal(w, h.Log, "register: session", err)
		return
	}

	h.Log.Info("account registered", zap.String("user_id", u.ID.Hex()))

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(registerResponse{User: &u})
}

func validate(req registerRequest) map[string]string {
	fields := make(map[string]string)
	if !inputval.IsValidEmail(normalize.Email(req.Email)) {
		fields["email"] = "a valid email address is required"
	}
	if len(req.Password) < inputval.MinPasswordLength {
		fields["password"] = "password must be at least 6 characters"
	}
	if !inputval.NonBlank(req.FirstName) {
		fields["first_name"] = "first name is required"
	}
	if !inputval.NonBlank(req.LastName) {
		fields["last_name"] = "last name is required"
	}
	return fields
}
