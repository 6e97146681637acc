package adminjobs

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	apierrors "github.com/emberworks/crewboard/internal/app/features/errors"
	jobstore "github.com/emberworks/crewboard/internal/app/store/jobs"
	paymentstore "github.com/emberworks/crewboard/internal/app/store/payments"
	userstore "github.com/emberworks/crewboard/internal/app/store/users"
	"github.com/emberworks/crewboard/internal/app/system/gates"
	"github.com/emberworks/crewboard/internal/app/system/inputval"
	"github.com/emberworks/crewboard/internal/app/system/timeouts"
	"github.com/emberworks/crewboard/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves posting management and the stats dashboard. Every route
// sits behind the admin role gate; responses carry full posting documents
// including counters and inactive entries.
type Handler struct {
	Jobs     *jobstore.Store
	Users    *userstore.Store
	Payments *paymentstore.Store
	Log      *zap.Logger
}

func NewHandler(jobs *jobstore.Store, users *userstore.Store, payments *paymentstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Jobs: jobs, Users: users, Payments: payments, Log: logger}
}

// jobRequest is the create/update payload. Counters, the posted date, and
// the id are never accepted from the client.
type jobRequest struct {
	Title             string    `json:"title"`
	Agency            string    `json:"agency"`
	Location          string    `json:"location"`
	PayRate           string    `json:"pay_rate"`
	JobType           string    `json:"job_type"`
	StartDate         time.Time `json:"start_date"`
	EndDate           time.Time `json:"end_date"`
	ExperienceLevel   string    `json:"experience_level"`
	Description       string    `json:"description"`
	Requirements      []string  `json:"requirements"`
	ApplicationMethod string    `json:"application_method"`
	ContactEmail      string    `json:"contact_email"`
	IsActive          bool      `json:"is_active"`
}

func (req *jobRequest) validate() map[string]string {
	fields := make(map[string]string)
	if !inputval.NonBlank(req.Title) {
		fields["title"] = "title is required"
	}
	if !inputval.NonBlank(req.Agency) {
		fields["agency"] = "agency is required"
	}
	if !inputval.NonBlank(req.Location) {
		fields["location"] = "location is required"
	}
	if !inputval.NonBlank(req.PayRate) {
		fields["pay_rate"] = "pay rate is required"
	}
	if !models.IsValidJobType(req.JobType) {
		fields["job_type"] = "unknown job type: " + req.JobType
	}
	if req.ExperienceLevel != "" && !models.IsValidExperienceLevel(req.ExperienceLevel) {
		fields["experience_level"] = "unknown experience level: " + req.ExperienceLevel
	}
	if req.ContactEmail != "" && !inputval.IsValidEmail(req.ContactEmail) {
		fields["contact_email"] = "invalid email address"
	}
	return fields
}

// List handles GET /admin/jobs: every posting, active or not, newest
// first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAdmin(w, r, "admin access required")
	if !g.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	jobs, err := h.Jobs.ListAll(ctx)
	if err != nil {
		apierrors.RenderInternal(w, h.Log, "admin: list jobs", err)
		return
	}
	if jobs == nil {
		jobs = []models.Job{}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]any{"jobs": jobs, "total": len(jobs)})
}

// Create handles POST /admin/jobs.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAdmin(w, r, "admin access required")
	if !g.OK {
		return
	}

	var req jobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.RenderBadRequest(w, "invalid JSON body")
		return
	}
	if fields := req.validate(); len(fields) > 0 {
		apierrors.RenderValidation(w, fields)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	job, err := h.Jobs.Create(ctx, models.Job{
		Title:             req.Title,
		Agency:            req.Agency,
		Location:          req.Location,
		PayRate:           req.PayRate,
		JobType:           req.JobType,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		ExperienceLevel:   req.ExperienceLevel,
		Description:       req.Description,
		Requirements:      req.Requirements,
		ApplicationMethod: req.ApplicationMethod,
		ContactEmail:      req.ContactEmail,
		IsActive:          req.IsActive,
	})
	if err != nil {
		apierrors.RenderInternal(w, h.Log, "admin: create job", err)
		return
	}

	h.Log.Info("job created",
		zap.String("job_id", job.ID.Hex()),
		zap.String("title", job.Title),
		zap.String("admin_id", g.UserID.Hex()))

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{"job": job})
}

// Get handles GET /admin/jobs/{jobID}. Unlike the public detail route it
// returns inactive postings and never bumps the view counter.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAdmin(w, r, "admin access required")
	if !g.OK {
		return
	}
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
		apierrors.RenderInternal(w, h.Log, "admin: get job", err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]any{"job": job})
}

// Update handles PUT /admin/jobs/{jobID}. View and application counts
// accrued since the posting was loaded survive the edit.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAdmin(w, r, "admin access required")
	if !g.OK {
		return
	}
	jobID, ok := parseJobID(w, r)
	if !ok {
		return
	}

	var req jobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.RenderBadRequest(w, "invalid JSON body")
		return
	}
	if fields := req.validate(); len(fields) > 0 {
		apierrors.RenderValidation(w, fields)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Jobs.Update(ctx, jobID, jobstore.Update{
		Title:             req.Title,
		Agency:            req.Agency,
		Location:          req.Location,
		PayRate:           req.PayRate,
		JobType:           req.JobType,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		ExperienceLevel:   req.ExperienceLevel,
		Description:       req.Description,
		Requirements:      req.Requirements,
		ApplicationMethod: req.ApplicationMethod,
		ContactEmail:      req.ContactEmail,
		IsActive:          req.IsActive,
	})
	if err == mongo.ErrNoDocuments {
		apierrors.RenderNotFound(w, "job not found")
		return
	}
	if err != nil {
		apierrors.RenderInternal(w, h.Log, "admin: update job", err)
		return
	}

	job, err := h.Jobs.GetByID(ctx, jobID)
	if err != nil {
		apierrors.RenderInternal(w, h.Log, "admin: reload job", err)
		return
	}

	h.Log.Info("job updated",
		zap.String("job_id", jobID.Hex()),
		zap.String("admin_id", g.UserID.Hex()))

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]any{"job": job})
}

// Delete handles DELETE /admin/jobs/{jobID}. Bookmarks pointing at the
// posting are left in place; the bookmarks listing skips dangling ids.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAdmin(w, r, "admin access required")
	if !g.OK {
		return
	}
	jobID, ok := parseJobID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	n, err := h.Jobs.Delete(ctx, jobID)
	if err != nil {
		apierrors.RenderInternal(w, h.Log, "admin: delete job", err)
		return
	}
	if n == 0 {
		apierrors.RenderNotFound(w, "job not found")
		return
	}

	h.Log.Info("job deleted",
		zap.String("job_id", jobID.Hex()),
		zap.String("admin_id", g.UserID.Hex()))

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]bool{"deleted": true})
}

// ToggleActive handles POST /admin/jobs/{jobID}/toggle-active.
func (h *Handler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAdmin(w, r, "admin access required")
	if !g.OK {
		return
	}
	jobID, ok := parseJobID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	active, err := h.Jobs.ToggleActive(ctx, jobID)
	if err == mongo.ErrNoDocuments {
		apierrors.RenderNotFound(w, "job not found")
		return
	}
	if err != nil {
		apierrors.RenderInternal(w, h.Log, "admin: toggle active", err)
		return
	}

	h.Log.Info("job active flag toggled",
		zap.String("job_id", jobID.Hex()),
		zap.Bool("is_active", active),
		zap.String("admin_id", g.UserID.Hex()))

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]bool{"is_active": active})
}

type statsResponse struct {
	TotalJobs         int64 `json:"total_jobs"`
	ActiveJobs        int64 `json:"active_jobs"`
	TotalViews        int64 `json:"total_views"`
	TotalApplications int64 `json:"total_applications"`
	TotalUsers        int64 `json:"total_users"`
	SubscribedUsers   int64 `json:"subscribed_users"`
	TotalPayments     int64 `json:"total_payments"`
	RevenueCents      int64 `json:"revenue_cents"`
}

// Stats handles GET /admin/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAdmin(w, r, "admin access required")
	if !g.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var resp statsResponse
	var err error
	if resp.TotalJobs, resp.ActiveJobs, err = h.Jobs.Counts(ctx); err != nil {
		apierrors.RenderInternal(w, h.Log, "admin stats: jobs", err)
		return
	}
	if resp.TotalViews, resp.TotalApplications, err = h.Jobs.EngagementTotals(ctx); err != nil {
		apierrors.RenderInternal(w, h.Log, "admin stats: engagement", err)
		return
	}
	if resp.TotalUsers, resp.SubscribedUsers, err = h.Users.Counts(ctx); err != nil {
		apierrors.RenderInternal(w, h.Log, "admin stats: users", err)
		return
	}
	if resp.TotalPayments, resp.RevenueCents, err = h.Payments.Totals(ctx); err != nil {
		apierrors.RenderInternal(w, h.Log, "admin stats: payments", err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(resp)
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
