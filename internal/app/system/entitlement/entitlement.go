// internal/app/system/entitlement/entitlement.go

// Package entitlement derives the authorization facts for a viewer at a
// point in time: authenticated, subscribed, admin.
//
// Evaluate is pure and takes the clock as a parameter. Because a
// subscription lapses with time, results must not be cached beyond the
// current request; callers re-evaluate whenever a gating decision is made.
package entitlement

import (
	"time"

	"github.com/emberworks/crewboard/internal/domain/models"
)

// Entitlement is the derived viewer state consumed by the visibility
// policy and the query pipeline.
type Entitlement struct {
	IsAuthenticated bool `json:"is_authenticated"`
	IsSubscribed    bool `json:"is_subscribed"`
	IsAdmin         bool `json:"is_admin"`
}

// Anonymous is the entitlement of a visitor with no account.
var Anonymous = Entitlement{}

// Evaluate computes the entitlement for u at the given time. A nil u means
// an anonymous visitor. A subscription counts only while its status is
// active AND its expiry is strictly in the future; an "active" record with
// a past expiry is not subscribed.
func Evaluate(u *models.User, now time.Time) Entitlement {
	if u == nil {
		return Anonymous
	}
	return Entitlement{
		IsAuthenticated: true,
		IsSubscribed: u.SubscriptionStatus == models.SubscriptionActive &&
			u.SubscriptionExpiry.After(now),
		IsAdmin: u.Role == models.RoleAdmin,
	}
}
