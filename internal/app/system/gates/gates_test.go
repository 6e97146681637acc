package gates_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/emberworks/crewboard/internal/app/system/auth"
	"github.com/emberworks/crewboard/internal/app/system/gates"
)

// Helper to create a request with user context
func withTestUser(r *http.Request, role string) *http.Request {
	user := &auth.SessionUser{
		ID:    "507f1f77bcf86cd799439011", // Valid ObjectID hex
		Name:  "Test User",
		Email: "test@example.com",
		Role:  role,
	}
	return auth.WithTestUser(r, user)
}

// Test RequireAuth

func TestRequireAuth_Authenticated(t *testing.T) {
	req := httptest.NewRequest("GET", "/bookmarks", nil)
	req = withTestUser(req, "user")
	rec := httptest.NewRecorder()

	result := gates.RequireAuth(rec, req)

	if !result.OK {
		t.Error("expected OK to be true for authenticated user")
	}
	if result.Role != "user" {
		t.Errorf("Role: got %q, want %q", result.Role, "user")
	}
	if result.Name != "Test User" {
		t.Errorf("Name: got %q, want %q", result.Name, "Test User")
	}
	if result.UserID.IsZero() {
		t.Error("expected UserID to be set")
	}
}

func TestRequireAuth_NotAuthenticated(t *testing.T) {
	req := httptest.NewRequest("GET", "/bookmarks", nil)
	rec := httptest.NewRecorder()

	result := gates.RequireAuth(rec, req)

	if result.OK {
		t.Error("expected OK to be false for unauthenticated user")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

// Test RequireAdmin

func TestRequireAdmin_AsAdmin(t *testing.T) {
	req := httptest.NewRequest("GET", "/admin/stats", nil)
	req = withTestUser(req, "admin")
	rec := httptest.NewRecorder()

	result := gates.RequireAdmin(rec, req, "Admin only")

	if !result.OK {
		t.Error("expected OK to be true for admin user")
	}
	if result.Role != "admin" {
		t.Errorf("Role: got %q, want %q", result.Role, "admin")
	}
}

func TestRequireAdmin_NotAuthenticated(t *testing.T) {
	req := httptest.NewRequest("GET", "/admin/stats", nil)
	rec := httptest.NewRecorder()

	result := gates.RequireAdmin(rec, req, "Admin only")

	if result.OK {
		t.Error("expected OK to be false for unauthenticated user")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAdmin_WrongRole(t *testing.T) {
	req := httptest.NewRequest("GET", "/admin/stats", nil)
	req = withTestUser(req, "user")
	rec := httptest.NewRecorder()

	result := gates.RequireAdmin(rec, req, "Admin only")

	if result.OK {
		t.Error("expected OK to be false for non-admin user")
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}

// Test RequireAnyRole

func TestRequireAnyRole(t *testing.T) {
	cases := []struct {
		name    string
		role    string
		allowed []string
		wantOK  bool
	}{
		{"matching role", "admin", []string{"admin"}, true},
		{"second of two", "user", []string{"admin", "user"}, true},
		{"no match", "user", []string{"admin"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := withTestUser(httptest.NewRequest("GET", "/x", nil), tc.role)
			rec := httptest.NewRecorder()

			result := gates.RequireAnyRole(rec, req, "nope", tc.allowed...)

			if result.OK != tc.wantOK {
				t.Errorf("OK = %v, want %v", result.OK, tc.wantOK)
			}
		})
	}
}
