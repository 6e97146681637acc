// internal/app/system/jobquery/jobquery.go

// Package jobquery turns a snapshot of the job collection into the ordered,
// policy-annotated listing a viewer sees.
//
// The stages run in a fixed order: active filter, attribute filters,
// sort, visibility annotation. The pipeline is pure: it never mutates the
// input slice or touches counters. Callers re-fetch the snapshot from the
// store before each run rather than holding one across mutations.
package jobquery

import (
	"sort"
	"strings"

	"github.com/emberworks/crewboard/internal/app/system/entitlement"
	"github.com/emberworks/crewboard/internal/app/system/jobpolicy"
	"github.com/emberworks/crewboard/internal/domain/models"
)

// SortKey selects the listing order.
type SortKey string

const (
	SortPostedDateDesc SortKey = "date"     // newest first (default)
	SortPayRateDesc    SortKey = "pay_rate" // highest parsed floor first
	SortTitleAsc       SortKey = "title"    // lexicographic
)

// ParseSortKey maps a request parameter to a SortKey, defaulting to
// posted-date order for anything unrecognized.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortPayRateDesc, SortTitleAsc:
		return SortKey(s)
	}
	return SortPostedDateDesc
}

// Filter is the attribute-filter specification. All fields are optional
// and AND-combined; string matches are case-insensitive substring matches.
type Filter struct {
	Location   string
	JobType    string
	Experience string
	PayFloor   int  // minimum parsed pay floor; active only when HasFloor
	HasFloor   bool
	Search     string // matched against title, agency, description, location
}

// Result pairs a surviving posting with its policy-redacted view.
type Result struct {
	Job  models.Job
	View jobpolicy.View
}

// Run executes the pipeline over a snapshot of the job collection for the
// given viewer entitlement. Inactive postings are dropped unconditionally;
// the admin management screen uses a separate, unfiltered store query.
func Run(jobs []models.Job, f Filter, key SortKey, ent entitlement.Entitlement) []Result {
	kept := make([]models.Job, 0, len(jobs))
	for _, job := range jobs {
		if !job.IsActive {
			continue
		}
		if !matches(job, f) {
			continue
		}
		kept = append(kept, job)
	}

	sortJobs(kept, key)

	out := make([]Result, len(kept))
	for i, job := range kept {
		out[i] = Result{Job: job, View: jobpolicy.Disclose(ent, job)}
	}
	return out
}

func matches(job models.Job, f Filter) bool {
	if f.Location != "" && !containsFold(job.Location, f.Location) {
		return false
	}
	if f.JobType != "" && !containsFold(job.JobType, f.JobType) {
		return false
	}
	if f.Experience != "" && !containsFold(job.ExperienceLevel, f.Experience) {
		return false
	}
	if f.HasFloor {
		floor, ok := ParsePayFloor(job.PayRate)
		if !ok || floor < f.PayFloor {
			return false
		}
	}
	if f.Search != "" {
		if !containsFold(job.Title, f.Search) &&
			!containsFold(job.Agency, f.Search) &&
			!containsFold(job.Description, f.Search) &&
			!containsFold(job.Location, f.Search) {
			return false
		}
	}
	return true
}

// sortJobs orders kept in place. All three orders are stable: postings
// with equal keys keep their collection order.
func sortJobs(jobs []models.Job, key SortKey) {
	switch key {
	case SortPayRateDesc:
		sort.SliceStable(jobs, func(i, j int) bool {
			return payFloorOrZero(jobs[i].PayRate) > payFloorOrZero(jobs[j].PayRate)
		})
	case SortTitleAsc:
		sort.SliceStable(jobs, func(i, j int) bool {
			return jobs[i].Title < jobs[j].Title
		})
	default:
		sort.SliceStable(jobs, func(i, j int) bool {
			return jobs[i].PostedDate.After(jobs[j].PostedDate)
		})
	}
}

func payFloorOrZero(desc string) int {
	floor, ok := ParsePayFloor(desc)
	if !ok {
		return 0
	}
	return floor
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
