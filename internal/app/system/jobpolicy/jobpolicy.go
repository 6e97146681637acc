// internal/app/system/jobpolicy/jobpolicy.go

// Package jobpolicy decides, for a given viewer entitlement and posting,
// which fields are disclosable and which actions are permitted.
//
// The policy is the single source of truth for gating: route middleware
// and handlers use the same predicates (via Permit), so a screen that is
// reachable never renders undisclosed content.
package jobpolicy

import (
	"github.com/emberworks/crewboard/internal/app/system/entitlement"
	"github.com/emberworks/crewboard/internal/domain/models"
)

// Action identifies an operation on a posting that the policy can permit.
type Action string

const (
	ActionBookmark     Action = "bookmark"
	ActionApply        Action = "apply"
	ActionEdit         Action = "edit"
	ActionDelete       Action = "delete"
	ActionToggleActive Action = "toggle_active"
)

// View is the redacted wire form of a posting. Basic fields are always
// present; the gated fields are pointers with omitempty so they are absent
// from the encoded output entirely (never blank, never leaked) unless the
// viewer is subscribed.
type View struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Agency          string `json:"agency"`
	Location        string `json:"location"`
	PayRate         string `json:"pay_rate"`
	JobType         string `json:"job_type"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	ExperienceLevel string `json:"experience_level"`
	PostedDate      string `json:"posted_date"`
	Views           int64  `json:"views"`
	Applications    int64  `json:"applications"`

	Description       *string   `json:"description,omitempty"`
	Requirements      *[]string `json:"requirements,omitempty"`
	ApplicationMethod *string   `json:"application_method,omitempty"`
	ContactEmail      *string   `json:"contact_email,omitempty"`

	Actions ActionSet `json:"actions"`
}

// ActionSet is the per-viewer permission set attached to every View.
type ActionSet struct {
	CanBookmark     bool `json:"can_bookmark"`
	CanApply        bool `json:"can_apply"`
	CanEdit         bool `json:"can_edit"`
	CanDelete       bool `json:"can_delete"`
	CanToggleActive bool `json:"can_toggle_active"`
}

const dateLayout = "2006-01-02"

// Disclose builds the redacted view of job for the given entitlement.
func Disclose(ent entitlement.Entitlement, job models.Job) View {
	v := View{
		ID:              job.ID.Hex(),
		Title:           job.Title,
		Agency:          job.Agency,
		Location:        job.Location,
		PayRate:         job.PayRate,
		JobType:         job.JobType,
		StartDate:       job.StartDate.Format(dateLayout),
		EndDate:         job.EndDate.Format(dateLayout),
		ExperienceLevel: job.ExperienceLevel,
		PostedDate:      job.PostedDate.Format(dateLayout),
		Views:           job.Views,
		Applications:    job.Applications,
		Actions:         Actions(ent),
	}

	if ent.IsSubscribed {
		desc := job.Description
		reqs := job.Requirements
		method := job.ApplicationMethod
		contact := job.ContactEmail
		v.Description = &desc
		v.Requirements = &reqs
		v.ApplicationMethod = &method
		v.ContactEmail = &contact
	}

	return v
}

// Actions returns the permission set for the entitlement. Bookmarking
// needs only an account; applying needs a live subscription; management
// actions need the admin role.
func Actions(ent entitlement.Entitlement) ActionSet {
	return ActionSet{
		CanBookmark:     ent.IsAuthenticated,
		CanApply:        ent.IsSubscribed,
		CanEdit:         ent.IsAdmin,
		CanDelete:       ent.IsAdmin,
		CanToggleActive: ent.IsAdmin,
	}
}

// Permit reports whether the entitlement allows the given action.
// Unknown actions are denied.
func Permit(ent entitlement.Entitlement, action Action) bool {
	switch action {
	case ActionBookmark:
		return ent.IsAuthenticated
	case ActionApply:
		return ent.IsSubscribed
	case ActionEdit, ActionDelete, ActionToggleActive:
		return ent.IsAdmin
	}
	return false
}
