package paging

import (
	"net/http/httptest"
	"testing"
)

func rows(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestParseStart(t *testing.T) {
	cases := []struct {
		query string
		want  int
	}{
		{"", 1},
		{"start=1", 1},
		{"start=21", 21},
		{"start=0", 1},
		{"start=-5", 1},
		{"start=abc", 1},
	}
	for _, tc := range cases {
		r := httptest.NewRequest("GET", "/jobs?"+tc.query, nil)
		if got := ParseStart(r); got != tc.want {
			t.Errorf("ParseStart(%q) = %d, want %d", tc.query, got, tc.want)
		}
	}
}

func TestWindow_FirstPage(t *testing.T) {
	page, rng := Window(rows(45), 1)

	if len(page) != PageSize {
		t.Fatalf("page length = %d, want %d", len(page), PageSize)
	}
	if page[0] != 1 || page[len(page)-1] != PageSize {
		t.Errorf("wrong slice: first=%d last=%d", page[0], page[len(page)-1])
	}
	if rng.HasPrev {
		t.Error("first page must not have prev")
	}
	if !rng.HasNext || rng.NextStart != PageSize+1 {
		t.Errorf("next: HasNext=%v NextStart=%d", rng.HasNext, rng.NextStart)
	}
}

func TestWindow_LastPartialPage(t *testing.T) {
	page, rng := Window(rows(45), 41)

	if len(page) != 5 {
		t.Fatalf("page length = %d, want 5", len(page))
	}
	if rng.Start != 41 || rng.End != 45 {
		t.Errorf("range = %d-%d, want 41-45", rng.Start, rng.End)
	}
	if !rng.HasPrev || rng.PrevStart != 21 {
		t.Errorf("prev: HasPrev=%v PrevStart=%d", rng.HasPrev, rng.PrevStart)
	}
	if rng.HasNext {
		t.Error("last page must not have next")
	}
}

func TestWindow_Empty(t *testing.T) {
	page, rng := Window(rows(0), 1)

	if len(page) != 0 {
		t.Fatalf("expected empty page, got %d rows", len(page))
	}
	if rng.HasPrev || rng.HasNext {
		t.Error("empty listing has no prev/next")
	}
}

func TestWindow_StartPastEnd(t *testing.T) {
	page, rng := Window(rows(10), 99)

	if len(page) != 0 {
		t.Fatalf("expected empty page, got %d rows", len(page))
	}
	if !rng.HasPrev || rng.PrevStart != 1 {
		t.Errorf("past-end page must link back: HasPrev=%v PrevStart=%d", rng.HasPrev, rng.PrevStart)
	}
}

func TestWindow_ExactMultiple(t *testing.T) {
	_, rng := Window(rows(PageSize*2), PageSize+1)

	if rng.HasNext {
		t.Error("second of two exact pages must not have next")
	}
	if !rng.HasPrev || rng.PrevStart != 1 {
		t.Errorf("prev: HasPrev=%v PrevStart=%d", rng.HasPrev, rng.PrevStart)
	}
}
