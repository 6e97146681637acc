package billing

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	apierrors "github.com/emberworks/crewboard/internal/app/features/errors"
	paymentstore "github.com/emberworks/crewboard/internal/app/store/payments"
	userstore "github.com/emberworks/crewboard/internal/app/store/users"
	"github.com/emberworks/crewboard/internal/app/system/entitlement"
	"github.com/emberworks/crewboard/internal/app/system/gates"
	"github.com/emberworks/crewboard/internal/app/system/timeouts"
	"github.com/emberworks/crewboard/internal/domain/models"
	"go.uber.org/zap"
)

// Config carries the subscription terms. There is no external payment
// provider; charges always succeed after a configurable delay that
// stands in for processor latency.
type Config struct {
	PriceCents      int64
	PeriodDays      int
	ProcessingDelay time.Duration
}

// Handler serves subscription lifecycle and payment history.
type Handler struct {
	Users    *userstore.Store
	Payments *paymentstore.Store
	Cfg      Config
	Log      *zap.Logger
}

func NewHandler(users *userstore.Store, payments *paymentstore.Store, cfg Config, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Payments: payments, Cfg: cfg, Log: logger}
}

type statusResponse struct {
	User        *models.User            `json:"user"`
	Entitlement entitlement.Entitlement `json:"entitlement"`
}

func (h *Handler) respondWithUser(w http.ResponseWriter, u *models.User) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(statusResponse{
		User:        u,
		Entitlement: entitlement.Evaluate(u, time.Now()),
	})
}

// Subscribe handles POST /billing/subscribe. Subscribing while already
// active extends nothing and is a conflict; cancel first or wait for
// expiry.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	u, err := h.Users.GetByID(ctx, g.UserID)
	if err != nil {
		apierrors.RenderInternal(w, h.Log, "subscribe: load user", err)
		return
	}

	now := time.Now()
	if entitlement.Evaluate(u, now).IsSubscribed {
		apierrors.RenderConflict(w, "subscription is already active")
		return
	}

	// Simulated processor round-trip.
	if h.Cfg.ProcessingDelay > 0 {
		select {
		case <-time.After(h.Cfg.ProcessingDelay):
		case <-ctx.Done():
			apierrors.RenderInternal(w, h.Log, "subscribe: processing", ctx.Err())
			return
		}
	}

	expiry := now.Add(time.Duration(h.Cfg.PeriodDays) * 24 * time.Hour)
	payment, err := h.Payments.Append(ctx, models.Payment{
		UserID:      g.UserID,
		AmountCents: h.Cfg.PriceCents,
		Status:      models.PaymentSucceeded,
		PaymentDate: now,
		PeriodStart: now,
		PeriodEnd:   expiry,
	})
	if err != nil {
		apierrors.RenderInternal(w, h.Log, "subscribe: record payment", err)
		return
	}

	if err := h.Users.SetSubscription(ctx, g.UserID, models.SubscriptionActive, expiry); err != nil {
		apierrors.RenderInternal(w, h.Log, "subscribe: activate", err)
		return
	}

	h.Log.Info("subscription activated",
		zap.String("user_id", g.UserID.Hex()),
		zap.String("txn_ref", payment.TxnRef),
		zap.Int64("amount_cents", payment.AmountCents))

	u, err = h.Users.GetByID(ctx, g.UserID)
	if err != nil {
		apierrors.RenderInternal(w, h.Log, "subscribe: reload", err)
		return
	}
	h.respondWithUser(w, u)
}

// Cancel handles POST /billing/cancel. Entitlement needs an active
// status, so cancelling ends subscriber access right away; the expiry is
// kept so the remaining period can be restored by Reactivate.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.GetByID(ctx, g.UserID)
	if err != nil {
		apierrors.RenderInternal(w, h.Log, "cancel: load user", err)
		return
	}
	if u.SubscriptionStatus != models.SubscriptionActive {
		apierrors.RenderConflict(w, "no active subscription to cancel")
		return
	}

	if err := h.Users.SetSubscription(ctx, g.UserID, models.SubscriptionCancelled, u.SubscriptionExpiry); err != nil {
		apierrors.RenderInternal(w, h.Log, "cancel", err)
		return
	}

	h.Log.Info("subscription cancelled", zap.String("user_id", g.UserID.Hex()))

	u, err = h.Users.GetByID(ctx, g.UserID)
	if err != nil {
		apierrors.RenderInternal(w, h.Log, "cancel: reload", err)
		return
	}
	h.respondWithUser(w, u)
}

// Reactivate handles POST /billing/reactivate. Only a cancelled,
// still-unexpired subscription can be reactivated without a new charge;
// a lapsed one has to subscribe again.
func (h *Handler) Reactivate(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.GetByID(ctx, g.UserID)
	if err != nil {
		apierrors.RenderInternal(w, h.Log, "reactivate: load user", err)
		return
	}
	if u.SubscriptionStatus != models.SubscriptionCancelled {
		apierrors.RenderConflict(w, "only a cancelled subscription can be reactivated")
		return
	}
	if !u.SubscriptionExpiry.After(time.Now()) {
		apierrors.RenderConflict(w, "subscription period has ended; subscribe again")
		return
	}

	if err := h.Users.SetSubscription(ctx, g.UserID, models.SubscriptionActive, u.SubscriptionExpiry); err != nil {
		apierrors.RenderInternal(w, h.Log, "reactivate", err)
		return
	}

	h.Log.Info("subscription reactivated", zap.String("user_id", g.UserID.Hex()))

	u, err = h.Users.GetByID(ctx, g.UserID)
	if err != nil {
		apierrors.RenderInternal(w, h.Log, "reactivate: reload", err)
		return
	}
	h.respondWithUser(w, u)
}

// PaymentHistory handles GET /billing/payments, most recent first.
func (h *Handler) PaymentHistory(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	payments, err := h.Payments.ListByUser(ctx, g.UserID)
	if err != nil {
		apierrors.RenderInternal(w, h.Log, "payment history", err)
		return
	}
	if payments == nil {
		payments = []models.Payment{}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]any{"payments": payments})
}
