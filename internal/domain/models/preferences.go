// internal/domain/models/preferences.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationSettings controls which emails the user receives.
type NotificationSettings struct {
	NewJobs               bool `bson:"new_jobs" json:"new_jobs"`
	SubscriptionReminders bool `bson:"subscription_reminders" json:"subscription_reminders"`
	JobAlerts             bool `bson:"job_alerts" json:"job_alerts"`
	WeeklyDigest          bool `bson:"weekly_digest" json:"weekly_digest"`
}

// JobAlertSettings narrows which postings trigger an alert.
type JobAlertSettings struct {
	Locations        []string `bson:"locations,omitempty" json:"locations,omitempty"`
	JobTypes         []string `bson:"job_types,omitempty" json:"job_types,omitempty"`
	ExperienceLevels []string `bson:"experience_levels,omitempty" json:"experience_levels,omitempty"`
	MinPayRate       string   `bson:"min_pay_rate,omitempty" json:"min_pay_rate,omitempty"`
}

// PrivacySettings controls profile exposure.
type PrivacySettings struct {
	ProfileVisible bool `bson:"profile_visible" json:"profile_visible"`
	EmailVisible   bool `bson:"email_visible" json:"email_visible"`
	AllowMarketing bool `bson:"allow_marketing" json:"allow_marketing"`
}

// Preferences is the per-user settings document (one per user). Pure data:
// nothing in the core reads these to make decisions.
type Preferences struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`

	Notifications NotificationSettings `bson:"notifications" json:"notifications"`
	JobAlerts     JobAlertSettings     `bson:"job_alerts" json:"job_alerts"`
	Privacy       PrivacySettings      `bson:"privacy" json:"privacy"`

	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// DefaultPreferences returns the settings a fresh account starts with.
func DefaultPreferences(userID primitive.ObjectID) Preferences {
	return Preferences{
		UserID: userID,
		Notifications: NotificationSettings{
			NewJobs:               true,
			SubscriptionReminders: true,
			JobAlerts:             true,
			WeeklyDigest:          false,
		},
		Privacy: PrivacySettings{
			ProfileVisible: true,
			EmailVisible:   false,
			AllowMarketing: true,
		},
	}
}
