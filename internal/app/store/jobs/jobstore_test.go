package jobstore_test

import (
	"testing"
	"time"

	jobstore "github.com/emberworks/crewboard/internal/app/store/jobs"
	"github.com/emberworks/crewboard/internal/domain/models"
	"github.com/emberworks/crewboard/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validJob() models.Job {
	return models.Job{
		Title:             "Engine Crew Operator",
		Agency:            "CAL FIRE",
		Location:          "Riverside County, CA",
		PayRate:           "$22-28/hour",
		JobType:           "Engine Crew",
		ExperienceLevel:   "Intermediate",
		Description:       "Operate a type 3 engine.",
		Requirements:      []string{"Class B license"},
		ApplicationMethod: "email",
		ContactEmail:      "hiring@fire.ca.gov",
		IsActive:          true,
	}
}

func TestCreate_ZeroesCounters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := jobstore.New(db)

	j := validJob()
	j.Views = 999
	j.Applications = 42

	created, err := store.Create(ctx, j)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Views != 0 || created.Applications != 0 {
		t.Errorf("counters must start at zero, got views=%d applications=%d",
			created.Views, created.Applications)
	}
	if created.PostedDate.IsZero() {
		t.Error("posted date must be stamped")
	}
}

func TestCreate_RejectsUnknownJobType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := jobstore.New(db)

	j := validJob()
	j.JobType = "Skydiving"
	if _, err := store.Create(ctx, j); err == nil {
		t.Error("unknown job type must be rejected")
	}

	j = validJob()
	j.ExperienceLevel = "Wizard"
	if _, err := store.Create(ctx, j); err == nil {
		t.Error("unknown experience level must be rejected")
	}
}

func TestCreate_SanitizesDescription(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := jobstore.New(db)

	j := validJob()
	j.Description = "<p>Legit</p><script>alert(1)</script>"

	created, err := store.Create(ctx, j)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Description != "<p>Legit</p>" {
		t.Errorf("description not sanitized: %q", created.Description)
	}
}

func TestUpdate_PreservesCounters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := jobstore.New(db)

	created, err := store.Create(ctx, validJob())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Accrue some counts, then edit the posting.
	for i := 0; i < 3; i++ {
		if err := store.IncrementViews(ctx, created.ID); err != nil {
			t.Fatalf("IncrementViews: %v", err)
		}
	}
	if err := store.IncrementApplications(ctx, created.ID); err != nil {
		t.Fatalf("IncrementApplications: %v", err)
	}

	upd := jobstore.Update{
		Title:           "Engine Crew Captain",
		Agency:          created.Agency,
		Location:        created.Location,
		PayRate:         "$30/hour",
		JobType:         created.JobType,
		StartDate:       time.Now(),
		EndDate:         time.Now().Add(90 * 24 * time.Hour),
		ExperienceLevel: "Advanced",
		Description:     "Lead a type 3 engine crew.",
		IsActive:        true,
	}
	if err := store.Update(ctx, created.ID, upd); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "Engine Crew Captain" {
		t.Errorf("title not updated: %q", got.Title)
	}
	if got.Views != 3 || got.Applications != 1 {
		t.Errorf("edit clobbered counters: views=%d applications=%d", got.Views, got.Applications)
	}
}

func TestUpdate_MissingPosting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := jobstore.New(db)

	upd := jobstore.Update{Title: "X", Agency: "Y", Location: "Z", JobType: "Hand Crew", IsActive: true}
	if err := store.Update(ctx, primitive.NewObjectID(), upd); err == nil {
		t.Error("updating a missing posting must fail")
	}
}

func TestListActive_ExcludesInactive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := jobstore.New(db)
	fix := testutil.NewFixtures(t, db)

	fix.CreateJob(ctx, "Active One", "USFS")
	fix.CreateJob(ctx, "Active Two", "BLM")
	fix.CreateInactiveJob(ctx, "Hidden", "OCFA")

	active, err := store.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(active) != 2 {
		t.Errorf("ListActive returned %d postings, want 2", len(active))
	}

	all, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("ListAll returned %d postings, want 3", len(all))
	}
}

func TestToggleActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := jobstore.New(db)
	fix := testutil.NewFixtures(t, db)

	job := fix.CreateJob(ctx, "Togglable", "USFS")

	next, err := store.ToggleActive(ctx, job.ID)
	if err != nil {
		t.Fatalf("ToggleActive: %v", err)
	}
	if next {
		t.Error("active posting must toggle to inactive")
	}

	next, err = store.ToggleActive(ctx, job.ID)
	if err != nil {
		t.Fatalf("ToggleActive: %v", err)
	}
	if !next {
		t.Error("inactive posting must toggle back to active")
	}
}

func TestGetByIDs_SkipsDangling(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := jobstore.New(db)
	fix := testutil.NewFixtures(t, db)

	kept := fix.CreateJob(ctx, "Kept", "USFS")
	ids := []primitive.ObjectID{kept.ID, primitive.NewObjectID()}

	jobs, err := store.GetByIDs(ctx, ids)
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(jobs) != 1 {
		t.Errorf("expected 1 posting (dangling id skipped), got %d", len(jobs))
	}

	jobs, err = store.GetByIDs(ctx, nil)
	if err != nil {
		t.Fatalf("GetByIDs(nil): %v", err)
	}
	if jobs != nil {
		t.Error("empty id list must return nothing")
	}
}

func TestCounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := jobstore.New(db)
	fix := testutil.NewFixtures(t, db)

	fix.CreateJob(ctx, "One", "USFS")
	fix.CreateInactiveJob(ctx, "Two", "BLM")

	total, active, err := store.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if total != 2 || active != 1 {
		t.Errorf("counts = (%d, %d), want (2, 1)", total, active)
	}
}
