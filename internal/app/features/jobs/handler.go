package jobs

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	apierrors "github.com/emberworks/crewboard/internal/app/features/errors"
	jobstore "github.com/emberworks/crewboard/internal/app/store/jobs"
	userstore "github.com/emberworks/crewboard/internal/app/store/users"
	"github.com/emberworks/crewboard/internal/app/system/authz"
	"github.com/emberworks/crewboard/internal/app/system/entitlement"
	"github.com/emberworks/crewboard/internal/app/system/gates"
	"github.com/emberworks/crewboard/internal/app/system/jobpolicy"
	"github.com/emberworks/crewboard/internal/app/system/jobquery"
	"github.com/emberworks/crewboard/internal/app/system/normalize"
	"github.com/emberworks/crewboard/internal/app/system/paging"
	"github.com/emberworks/crewboard/internal/app/system/timeouts"
	"github.com/emberworks/crewboard/internal/app/system/viewtrack"
	"github.com/emberworks/crewboard/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the public posting surface: listing, detail, bookmarks,
// and applications.
type Handler struct {
	Jobs  *jobstore.Store
	Users *userstore.Store
	Views *viewtrack.Tracker
	Log   *zap.Logger
}

func NewHandler(jobs *jobstore.Store, users *userstore.Store, views *viewtrack.Tracker, logger *zap.Logger) *Handler {
	return &Handler{Jobs: jobs, Users: users, Views: views, Log: logger}
}

// entitlementFor derives the caller's entitlement from a fresh user
// record. Session state only identifies the account; subscription checks
// always hit the store so an expiry or cancellation takes effect on the
// next request.
func (h *Handler) entitlementFor(ctx context.Context, r *http.Request) (entitlement.Entitlement, *models.User) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		return entitlement.Anonymous, nil
	}
	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		// A stale session for a deleted account reads as anonymous.
		return entitlement.Anonymous, nil
	}
	return entitlement.Evaluate(u, time.Now()), u
}

type listResponse struct {
	Jobs       []jobpolicy.View `json:"jobs"`
	Total      int              `json:"total"`
	Categories []string         `json:"categories"`
	Page       paging.Range     `json:"page"`
}

// List handles GET /jobs with optional filter and sort parameters:
// location, category, experience, pay_floor, q, sort, start.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ent, _ := h.entitlementFor(ctx, r)

	snapshot, err := h.Jobs.ListActive(ctx)
	if err != nil {
		apierrors.RenderInternal(w, h.Log, "list jobs", err)
		return
	}

	f := jobquery.Filter{
		Location:   normalize.QueryParam(query.Get(r, "location")),
		JobType:    normalize.QueryParam(query.Get(r, "category")),
		Experience: normalize.QueryParam(query.Get(r, "experience")),
		Search:     normalize.QueryParam(query.Get(r, "q")),
	}
	if raw := query.Get(r, "pay_floor"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			apierrors.RenderValidation(w, map[string]string{"pay_floor": "must be a non-negative integer"})
			return
		}
		f.PayFloor = n
		f.HasFloor = true
	}

	results := jobquery.Run(snapshot, f, jobquery.ParseSortKey(query.Get(r, "sort")), ent)

	page, rng := paging.Window(results, paging.ParseStart(r))
	views := make([]jobpolicy.View, len(page))
	for i, res := range page {
		views[i] = res.View
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(listResponse{
		Jobs:       views,
		Total:      len(results),
		Categories: models.JobTypes,
		Page:       rng,
	})
}

// Detail handles GET /jobs/{jobID}. Each first view from a browser bumps
// the posting's view counter; repeat views within the tracking window do
// not.
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	jobID, ok := parseJobID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	job, err := h.Jobs.GetByID(ctx, jobID)
	if err == mongo.ErrNoDocuments {
		apierrors.RenderNotFound(w, "job not found")
		return
	}
	if err != nil {
		apierrors.RenderInternal(w, h.Log, "job detail", err)
		return
	}

	ent, u := h.entitlementFor(ctx, r)

	// Inactive postings stay reachable only for admins.
	if !job.IsActive && !ent.IsAdmin {
		apierrors.RenderNotFound(w, "job not found")
		return
	}

	if !h.Views.Seen(r, jobID.Hex()) {
		if err := h.Jobs.IncrementViews(ctx, jobID); err != nil {
			h.Log.Warn("view increment failed", zap.String("job_id", jobID.Hex()), zap.Error(err))
		} else {
			job.Views++
			h.Views.Record(w, r, jobID.Hex())
		}
	}

	view := jobpolicy.Disclose(ent, *job)

	resp := struct {
		Job   jobpolicy.View `json:"job"`
		Saved bool           `json:"saved"`
	}{Job: view}
	if u != nil {
		resp.Saved = u.HasSaved(jobID)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(resp)
}

// ToggleBookmark handles POST /jobs/{jobID}/bookmark.
func (h *Handler) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}
	jobID, ok := parseJobID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.Jobs.GetByID(ctx, jobID); err == mongo.ErrNoDocuments {
		apierrors.RenderNotFound(w, "job not found")
		return
	} else if err != nil {
		apierrors.RenderInternal(w, h.Log, "bookmark: load job", err)
		return
	}

	saved, err := h.Users.ToggleBookmark(ctx, g.UserID, jobID)
	if err != nil {
		apierrors.RenderInternal(w, h.Log, "bookmark toggle", err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]bool{"saved": saved})
}

// Bookmarks handles GET /bookmarks. Saved ids whose postings were deleted
// are silently skipped.
func (h *Handler) Bookmarks(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.GetByID(ctx, g.UserID)
	if err != nil {
		apierrors.RenderInternal(w, h.Log, "bookmarks: load user", err)
		return
	}

	jobs, err := h.Jobs.GetByIDs(ctx, u.SavedJobs)
	if err != nil {
		apierrors.RenderInternal(w, h.Log, "bookmarks: load jobs", err)
		return
	}

	ent := entitlement.Evaluate(u, time.Now())
	views := make([]jobpolicy.View, 0, len(jobs))
	for _, job := range jobs {
		views = append(views, jobpolicy.Disclose(ent, job))
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]any{"jobs": views})
}

// Apply handles POST /jobs/{jobID}/apply. Applying needs a live
// subscription; the posting's application counter records the intent.
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}
	jobID, ok := parseJobID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ent, _ := h.entitlementFor(ctx, r)
	if !jobpolicy.Permit(ent, jobpolicy.ActionApply) {
		apierrors.RenderForbidden(w, "an active subscription is required to apply")
		return
	}

	job, err := h.Jobs.GetByID(ctx, jobID)
	if err == mongo.ErrNoDocuments {
		apierrors.RenderNotFound(w, "job not found")
		return
	}
	if err != nil {
		apierrors.RenderInternal(w, h.Log, "apply: load job", err)
		return
	}
	if !job.IsActive {
		apierrors.RenderNotFound(w, "job not found")
		return
	}

	if err := h.Jobs.IncrementApplications(ctx, jobID); err != nil {
		apierrors.RenderInternal(w, h.Log, "apply: increment", err)
		return
	}

	h.Log.Info("application recorded",
		zap.String("job_id", jobID.Hex()),
		zap.String("user_id", g.UserID.Hex()))

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"applied":            true,
		"application_method": job.ApplicationMethod,
		"contact_email":      job.ContactEmail,
	})
}

func parseJobID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	raw := chi.URLParam(r, "jobID")
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		apierrors.RenderBadRequest(w, "malformed job id")
		return primitive.NilObjectID, false
	}
	return id, true
}
