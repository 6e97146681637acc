package jobquery_test

import (
	"testing"
	"time"

	"github.com/emberworks/crewboard/internal/app/system/entitlement"
	"github.com/emberworks/crewboard/internal/app/system/jobquery"
	"github.com/emberworks/crewboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	anon       = entitlement.Anonymous
	subscriber = entitlement.Entitlement{IsAuthenticated: true, IsSubscribed: true}
)

func day(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

func posting(title, agency, location, payRate string, posted time.Time, active bool) models.Job {
	return models.Job{
		ID:                primitive.NewObjectID(),
		Title:             title,
		Agency:            agency,
		Location:          location,
		PayRate:           payRate,
		JobType:           "Hand Crew",
		ExperienceLevel:   "Intermediate",
		Description:       "Seasonal wildland fire work.",
		Requirements:      []string{"S-130/S-190"},
		ApplicationMethod: "email",
		ContactEmail:      "jobs@example.gov",
		PostedDate:        posted,
		IsActive:          active,
	}
}

func fixtureCollection() []models.Job {
	return []models.Job{
		posting("Hotshot Crew Member", "U.S. Forest Service", "Orange County, CA", "$18-22/hour", day(1), true),
		posting("Engine Crew Operator", "CAL FIRE", "Riverside County, CA", "$22-28/hour", day(2), true),
		posting("Hand Crew Supervisor", "OCFA", "Orange County, CA", "$25-32/hour", day(3), true),
		posting("Lookout", "CAL FIRE", "San Diego County, CA", "$20/hour", day(4), false),
	}
}

func TestRun_AnonymousDropsInactiveAndRedacts(t *testing.T) {
	results := jobquery.Run(fixtureCollection(), jobquery.Filter{}, jobquery.SortPostedDateDesc, anon)

	if len(results) != 3 {
		t.Fatalf("expected 3 results (inactive dropped), got %d", len(results))
	}
	for _, res := range results {
		if !res.Job.IsActive {
			t.Errorf("inactive posting %q leaked into results", res.Job.Title)
		}
		if res.View.Description != nil || res.View.ContactEmail != nil {
			t.Errorf("gated fields leaked to anonymous viewer on %q", res.Job.Title)
		}
	}
}

func TestRun_InactiveDroppedRegardlessOfOtherFilters(t *testing.T) {
	// The inactive lookout matches this location filter; it must still be
	// excluded because the active stage runs first and unconditionally.
	f := jobquery.Filter{Location: "san diego"}

	results := jobquery.Run(fixtureCollection(), f, jobquery.SortPostedDateDesc, subscriber)

	if len(results) != 0 {
		t.Fatalf("expected 0 results, got %d", len(results))
	}
}

func TestRun_SubscriberSearchHotshot(t *testing.T) {
	results := jobquery.Run(fixtureCollection(), jobquery.Filter{Search: "hotshot"}, jobquery.SortPostedDateDesc, subscriber)

	if len(results) != 1 {
		t.Fatalf("expected exactly 1 match, got %d", len(results))
	}
	v := results[0].View
	if v.Title != "Hotshot Crew Member" {
		t.Errorf("wrong match: %q", v.Title)
	}
	if v.Description == nil || v.Requirements == nil || v.ContactEmail == nil {
		t.Error("subscriber result must carry the full field set")
	}
	if !v.Actions.CanApply {
		t.Error("subscriber result must have CanApply=true")
	}
}

func TestRun_SearchSpansAgencyDescriptionLocation(t *testing.T) {
	jobs := fixtureCollection()
	jobs[1].Description = "Operate pumps and hoselays near the fireline."

	cases := []struct {
		term string
		want int
	}{
		{"cal fire", 1},    // agency (the matching CAL FIRE posting that is active)
		{"hoselays", 1},    // description
		{"orange", 2},      // location
		{"supervisor", 1},  // title
		{"helicopter", 0},  // nothing
	}
	for _, tc := range cases {
		got := len(jobquery.Run(jobs, jobquery.Filter{Search: tc.term}, jobquery.SortPostedDateDesc, anon))
		if got != tc.want {
			t.Errorf("search %q: got %d results, want %d", tc.term, got, tc.want)
		}
	}
}

func TestRun_LocationTypeExperienceFilters(t *testing.T) {
	jobs := fixtureCollection()
	jobs[0].JobType = "Hotshot Crew"
	jobs[0].ExperienceLevel = "Entry Level"

	if got := len(jobquery.Run(jobs, jobquery.Filter{Location: "riverside"}, jobquery.SortPostedDateDesc, anon)); got != 1 {
		t.Errorf("location filter: got %d, want 1", got)
	}
	if got := len(jobquery.Run(jobs, jobquery.Filter{JobType: "hotshot"}, jobquery.SortPostedDateDesc, anon)); got != 1 {
		t.Errorf("job type filter: got %d, want 1", got)
	}
	if got := len(jobquery.Run(jobs, jobquery.Filter{Experience: "entry"}, jobquery.SortPostedDateDesc, anon)); got != 1 {
		t.Errorf("experience filter: got %d, want 1", got)
	}
	// AND-combined: location matches two postings, type narrows to one.
	f := jobquery.Filter{Location: "orange", JobType: "hand"}
	if got := len(jobquery.Run(jobs, f, jobquery.SortPostedDateDesc, anon)); got != 1 {
		t.Errorf("combined filters: got %d, want 1", got)
	}
}

func TestRun_PayFloorFilter(t *testing.T) {
	jobs := []models.Job{
		posting("Fuels Technician", "BLM", "Inyo County, CA", "$30-38/hour", day(1), true),
		posting("Camp Help", "Private", "Kern County, CA", "Negotiable", day(2), true),
	}

	floor := func(n int) jobquery.Filter {
		return jobquery.Filter{PayFloor: n, HasFloor: true}
	}

	if got := len(jobquery.Run(jobs, floor(25), jobquery.SortPostedDateDesc, anon)); got != 1 {
		t.Errorf("floor 25: got %d, want 1", got)
	}
	if got := len(jobquery.Run(jobs, floor(30), jobquery.SortPostedDateDesc, anon)); got != 1 {
		t.Errorf("floor 30: got %d, want 1 (boundary is inclusive)", got)
	}
	if got := len(jobquery.Run(jobs, floor(35), jobquery.SortPostedDateDesc, anon)); got != 0 {
		t.Errorf("floor 35: got %d, want 0", got)
	}
	// No floor set: the unparseable posting is included again.
	if got := len(jobquery.Run(jobs, jobquery.Filter{}, jobquery.SortPostedDateDesc, anon)); got != 2 {
		t.Errorf("no floor: got %d, want 2", got)
	}
}

func TestRun_SortPostedDateDesc(t *testing.T) {
	results := jobquery.Run(fixtureCollection(), jobquery.Filter{}, jobquery.SortPostedDateDesc, anon)

	for i := 1; i < len(results); i++ {
		if results[i].Job.PostedDate.After(results[i-1].Job.PostedDate) {
			t.Fatalf("posted dates out of order at %d", i)
		}
	}
}

func TestRun_SortTitleAsc(t *testing.T) {
	results := jobquery.Run(fixtureCollection(), jobquery.Filter{}, jobquery.SortTitleAsc, anon)

	for i := 1; i < len(results); i++ {
		if results[i].Job.Title < results[i-1].Job.Title {
			t.Fatalf("titles out of order: %q before %q", results[i-1].Job.Title, results[i].Job.Title)
		}
	}
}

func TestRun_SortPayRateDesc_UnparseableSortsAsZero(t *testing.T) {
	jobs := []models.Job{
		posting("Negotiable Role", "Private", "Kern County, CA", "Negotiable", day(1), true),
		posting("Paid Role", "BLM", "Inyo County, CA", "$25/hour", day(2), true),
	}

	results := jobquery.Run(jobs, jobquery.Filter{}, jobquery.SortPayRateDesc, anon)

	if results[0].Job.Title != "Paid Role" {
		t.Error("parseable rate must sort above an unparseable one")
	}
}

// Equal sort keys must preserve collection order (stable sort).
func TestRun_SortStability(t *testing.T) {
	sameDay := day(5)
	jobs := []models.Job{
		posting("First Inserted", "Agency A", "Orange County, CA", "$20/hour", sameDay, true),
		posting("Second Inserted", "Agency B", "Orange County, CA", "$20/hour", sameDay, true),
	}

	byDate := jobquery.Run(jobs, jobquery.Filter{}, jobquery.SortPostedDateDesc, anon)
	if byDate[0].Job.Title != "First Inserted" || byDate[1].Job.Title != "Second Inserted" {
		t.Error("date sort with equal keys must preserve insertion order")
	}

	byPay := jobquery.Run(jobs, jobquery.Filter{}, jobquery.SortPayRateDesc, anon)
	if byPay[0].Job.Title != "First Inserted" || byPay[1].Job.Title != "Second Inserted" {
		t.Error("pay sort with equal keys must preserve insertion order")
	}
}

func TestRun_DoesNotMutateInput(t *testing.T) {
	jobs := fixtureCollection()
	before := make([]string, len(jobs))
	for i, j := range jobs {
		before[i] = j.Title
	}

	jobquery.Run(jobs, jobquery.Filter{}, jobquery.SortTitleAsc, anon)

	for i, j := range jobs {
		if j.Title != before[i] {
			t.Fatal("pipeline reordered the caller's snapshot")
		}
		if j.Views != 0 {
			t.Fatal("pipeline must never touch the view counter")
		}
	}
}

func TestParseSortKey(t *testing.T) {
	if jobquery.ParseSortKey("pay_rate") != jobquery.SortPayRateDesc {
		t.Error("pay_rate not recognized")
	}
	if jobquery.ParseSortKey("title") != jobquery.SortTitleAsc {
		t.Error("title not recognized")
	}
	if jobquery.ParseSortKey("") != jobquery.SortPostedDateDesc {
		t.Error("empty key must default to date order")
	}
	if jobquery.ParseSortKey("bogus") != jobquery.SortPostedDateDesc {
		t.Error("unknown key must default to date order")
	}
}
