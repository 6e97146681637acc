package errors_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	apierrors "github.com/emberworks/crewboard/internal/app/features/errors"
	"go.uber.org/zap"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	return body
}

func TestRenderNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	apierrors.RenderNotFound(rec, "job not found")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if body := decode(t, rec); body["error"] != "job not found" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestRenderValidation(t *testing.T) {
	rec := httptest.NewRecorder()
	apierrors.RenderValidation(rec, map[string]string{
		"title":    "title is required",
		"job_type": "unknown job type",
	})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
	body := decode(t, rec)
	fields, ok := body["fields"].(map[string]any)
	if !ok {
		t.Fatal("expected fields map in envelope")
	}
	if fields["title"] != "title is required" {
		t.Errorf("fields.title = %v", fields["title"])
	}
}

func TestRenderError_OmitsEmptyFields(t *testing.T) {
	rec := httptest.NewRecorder()
	apierrors.RenderConflict(rec, "an account with this email already exists")

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
	if _, present := decode(t, rec)["fields"]; present {
		t.Error("fields key must be absent when there are no field errors")
	}
}

func TestRenderInternal_HidesCause(t *testing.T) {
	rec := httptest.NewRecorder()
	apierrors.RenderInternal(rec, zap.NewNop(), "list jobs", fmt.Errorf("connection refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if body := decode(t, rec); body["error"] != "internal error" {
		t.Errorf("internal cause leaked: %v", body["error"])
	}
}
