// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user account can hold. Administrators manage postings; everyone
// else is a standard user who may or may not hold a subscription.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Subscription states. An "active" status alone does not grant access:
// entitlement also checks SubscriptionExpiry against the current time.
const (
	SubscriptionActive    = "active"
	SubscriptionInactive  = "inactive"
	SubscriptionCancelled = "cancelled"
)

// User represents a registered account: standard users and admins.
//
// NOTE:
//   - Password is stored as entered. The product has no credential
//     hardening; Authenticate in the user store is the single place that
//     compares it, so a hashing migration touches one call site.
//   - SavedJobs may contain ids of postings that were later deleted;
//     readers filter those defensively.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	EmailCI   string             `bson:"email_ci" json:"-"` // lowercase, diacritics-stripped
	Password  string             `bson:"password" json:"-"`
	FirstName string             `bson:"first_name" json:"first_name"`
	LastName  string             `bson:"last_name" json:"last_name"`
	Role      string             `bson:"role" json:"role"` // user | admin

	SubscriptionStatus string    `bson:"subscription_status" json:"subscription_status"` // active | inactive | cancelled
	SubscriptionExpiry time.Time `bson:"subscription_expiry,omitempty" json:"subscription_expiry,omitempty"`

	SavedJobs []primitive.ObjectID `bson:"saved_jobs,omitempty" json:"saved_jobs,omitempty"`

	JoinDate  time.Time `bson:"join_date" json:"join_date"`
	LastLogin time.Time `bson:"last_login,omitempty" json:"last_login,omitempty"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsValidRole reports whether role is one of the recognized account roles.
func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// IsValidSubscriptionStatus reports whether s is a recognized state.
func IsValidSubscriptionStatus(s string) bool {
	switch s {
	case SubscriptionActive, SubscriptionInactive, SubscriptionCancelled:
		return true
	}
	return false
}

// HasSaved reports whether the user has bookmarked the given posting.
func (u *User) HasSaved(jobID primitive.ObjectID) bool {
	for _, id := range u.SavedJobs {
		if id == jobID {
			return true
		}
	}
	return false
}

// FullName returns the display name for the account.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
