// internal/domain/models/job.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JobTypes is the closed set of posting categories. Create/update rejects
// anything outside this list.
var JobTypes = []string{
	"Hotshot Crew",
	"Engine Crew",
	"Hand Crew",
	"Helitack",
	"Smokejumper",
	"Aviation",
	"Heavy Equipment",
	"Prevention",
	"Investigation",
	"Medical",
	"Leadership",
	"Support",
}

// ExperienceLevels is the closed set of experience tiers.
var ExperienceLevels = []string{
	"Entry Level",
	"Intermediate",
	"Advanced",
}

// Job represents a single posting.
//
// PayRate is a free-text descriptor ("$22-28/hour", "Negotiable"). The
// first "$"-prefixed integer in it doubles as the numeric floor for range
// filtering and pay sorting; see jobquery.ParsePayFloor.
//
// Views and Applications are monotonically non-decreasing and change only
// through the store's increment operations, never through Update.
type Job struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title    string             `bson:"title" json:"title"`
	TitleCI  string             `bson:"title_ci" json:"-"` // lowercase, diacritics-stripped
	Agency   string             `bson:"agency" json:"agency"`
	Location string             `bson:"location" json:"location"`
	PayRate  string             `bson:"pay_rate" json:"pay_rate"`
	JobType  string             `bson:"job_type" json:"job_type"`

	StartDate       time.Time `bson:"start_date" json:"start_date"`
	EndDate         time.Time `bson:"end_date" json:"end_date"`
	ExperienceLevel string    `bson:"experience_level" json:"experience_level"`

	// Subscriber-gated fields. The visibility policy strips these before
	// they reach a non-subscribed caller.
	Description       string   `bson:"description" json:"description"`
	Requirements      []string `bson:"requirements" json:"requirements"`
	ApplicationMethod string   `bson:"application_method" json:"application_method"`
	ContactEmail      string   `bson:"contact_email" json:"contact_email"`

	PostedDate time.Time `bson:"posted_date" json:"posted_date"`
	IsActive   bool      `bson:"is_active" json:"is_active"`

	Views        int64 `bson:"views" json:"views"`
	Applications int64 `bson:"applications" json:"applications"`
}

// IsValidJobType reports whether t is one of the recognized categories.
func IsValidJobType(t string) bool {
	for _, jt := range JobTypes {
		if jt == t {
			return true
		}
	}
	return false
}

// IsValidExperienceLevel reports whether lvl is a recognized tier.
func IsValidExperienceLevel(lvl string) bool {
	for _, el := range ExperienceLevels {
		if el == lvl {
			return true
		}
	}
	return false
}
