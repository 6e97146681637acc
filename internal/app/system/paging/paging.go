// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// PageSize is the default number of postings shown in paged lists.
const PageSize = 20

// ParseStart extracts the human-friendly "start" query parameter (1-based index).
// Returns 1 if not present or invalid.
func ParseStart(r *http.Request) int {
	s := query.Get(r, "start")
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Range holds computed display range values for a paginated list.
type Range struct {
	Start     int // 1-based start index (0 if no results)
	End       int // 1-based end index (0 if no results)
	PrevStart int // start value for previous page link
	NextStart int // start value for next page link
	HasPrev   bool
	HasNext   bool
}

// Window slices one page out of the full result set and computes the
// display range. The pipeline filters and sorts in memory, so paging is
// a plain offset slice over the finished listing.
func Window[T any](rows []T, start int) ([]T, Range) {
	return windowWithSize(rows, start, PageSize)
}

func windowWithSize[T any](rows []T, start, pageSize int) ([]T, Range) {
	total := len(rows)
	if start < 1 {
		start = 1
	}
	if start > total {
		// Past the end: empty page, link back to the last real page.
		prev := total - pageSize + 1
		if prev < 1 {
			prev = 1
		}
		return rows[:0], Range{PrevStart: prev, NextStart: prev, HasPrev: total > 0}
	}

	end := start + pageSize - 1
	if end > total {
		end = total
	}
	page := rows[start-1 : end]

	prevStart := start - pageSize
	if prevStart < 1 {
		prevStart = 1
	}

	return page, Range{
		Start:     start,
		End:       end,
		PrevStart: prevStart,
		NextStart: end + 1,
		HasPrev:   start > 1,
		HasNext:   end < total,
	}
}
