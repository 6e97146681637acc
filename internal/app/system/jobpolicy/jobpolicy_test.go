package jobpolicy_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/emberworks/crewboard/internal/app/system/entitlement"
	"github.com/emberworks/crewboard/internal/app/system/jobpolicy"
	"github.com/emberworks/crewboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testJob() models.Job {
	return models.Job{
		ID:                primitive.NewObjectID(),
		Title:             "Hotshot Crew Member",
		Agency:            "U.S. Forest Service",
		Location:          "Orange County, CA",
		PayRate:           "$18-22/hour",
		JobType:           "Hotshot Crew",
		StartDate:         time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC),
		EndDate:           time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC),
		ExperienceLevel:   "Entry Level",
		Description:       "Join our hotshot crew for the fire season.",
		Requirements:      []string{"Physical fitness test", "Valid driver's license"},
		ApplicationMethod: "email",
		ContactEmail:      "hiring@usfs.gov",
		PostedDate:        time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		IsActive:          true,
		Views:             145,
	}
}

func TestDisclose_AnonymousOmitsGatedFields(t *testing.T) {
	v := jobpolicy.Disclose(entitlement.Anonymous, testJob())

	if v.Description != nil || v.Requirements != nil ||
		v.ApplicationMethod != nil || v.ContactEmail != nil {
		t.Fatal("gated fields must be nil for an anonymous viewer")
	}
	if v.Title == "" || v.Agency == "" || v.PayRate == "" {
		t.Error("basic fields must always be populated")
	}
}

func TestDisclose_AuthenticatedUnsubscribedOmitsGatedFields(t *testing.T) {
	ent := entitlement.Entitlement{IsAuthenticated: true}

	v := jobpolicy.Disclose(ent, testJob())

	if v.Description != nil || v.ContactEmail != nil {
		t.Error("an unsubscribed account must not see gated fields")
	}
	if !v.Actions.CanBookmark {
		t.Error("an authenticated account may bookmark")
	}
	if v.Actions.CanApply {
		t.Error("an unsubscribed account must not apply")
	}
}

func TestDisclose_SubscribedSeesEverything(t *testing.T) {
	ent := entitlement.Entitlement{IsAuthenticated: true, IsSubscribed: true}
	job := testJob()

	v := jobpolicy.Disclose(ent, job)

	if v.Description == nil || *v.Description != job.Description {
		t.Error("subscriber must see the description")
	}
	if v.Requirements == nil || len(*v.Requirements) != len(job.Requirements) {
		t.Error("subscriber must see the requirements list")
	}
	if v.ContactEmail == nil || *v.ContactEmail != job.ContactEmail {
		t.Error("subscriber must see the contact email")
	}
	if !v.Actions.CanApply {
		t.Error("subscriber may apply")
	}
}

// The redaction must hold at the serialization boundary: encoding a
// non-subscriber's view must not emit the gated keys at all.
func TestDisclose_GatedFieldsAbsentFromJSON(t *testing.T) {
	v := jobpolicy.Disclose(entitlement.Anonymous, testJob())

	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(raw)

	for _, key := range []string{"description", "requirements", "application_method", "contact_email"} {
		if strings.Contains(body, `"`+key+`"`) {
			t.Errorf("encoded view leaks gated key %q: %s", key, body)
		}
	}
}

func TestPermit_Matrix(t *testing.T) {
	anon := entitlement.Anonymous
	authed := entitlement.Entitlement{IsAuthenticated: true}
	sub := entitlement.Entitlement{IsAuthenticated: true, IsSubscribed: true}
	admin := entitlement.Entitlement{IsAuthenticated: true, IsAdmin: true}

	cases := []struct {
		name   string
		ent    entitlement.Entitlement
		action jobpolicy.Action
		want   bool
	}{
		{"anon bookmark", anon, jobpolicy.ActionBookmark, false},
		{"authed bookmark", authed, jobpolicy.ActionBookmark, true},
		{"authed apply", authed, jobpolicy.ActionApply, false},
		{"subscriber apply", sub, jobpolicy.ActionApply, true},
		{"subscriber edit", sub, jobpolicy.ActionEdit, false},
		{"admin edit", admin, jobpolicy.ActionEdit, true},
		{"admin delete", admin, jobpolicy.ActionDelete, true},
		{"admin toggle", admin, jobpolicy.ActionToggleActive, true},
		{"admin apply without subscription", admin, jobpolicy.ActionApply, false},
		{"unknown action", admin, jobpolicy.Action("publish"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := jobpolicy.Permit(tc.ent, tc.action); got != tc.want {
				t.Errorf("Permit(%+v, %q) = %v, want %v", tc.ent, tc.action, got, tc.want)
			}
		})
	}
}
