package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v5"

	"github.com/prismtrack/console/internal/backend"
	"github.com/prismtrack/console/internal/http/authn"
)

func attachTenantSession(c *echo.Context) {
	c.Set(authn.ContextKeySession, &backend.Session{
		AccessToken:  "acc",
		RefreshToken: "ref",
		Principal:    backend.PrincipalTenant,
	})
}

func tenantBackendMux(t *testing.T, agentsStatus int) http.Handler {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /tenant/companies", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"companies": []map[string]any{
				{
					"id":             3,
					"tenant_id":      1,
					"name":           "North Plant",
					"company_org_id": "COM-3",
					"created_at":     time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC).Format(time.RFC3339),
					"is_active":      true,
				},
			},
			"total": 1,
		})
	})
	mux.HandleFunc("GET /tenant/users", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"users": []map[string]any{
				{
					"id":         9,
					"tenant_id":  1,
					"username":   "jsmith",
					"email":      "jsmith@acme.test",
					"role":       "manager",
					"created_at": time.Now().UTC().Format(time.RFC3339),
					"is_active":  true,
				},
			},
			"total": 1,
		})
	})
	mux.HandleFunc("GET /tenant/org-ids", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"tenant": map[string]any{"org_id": "TEN-1", "type": "tenant", "name": "Acme Corp", "id": 1},
			"companies": []map[string]any{
				{"org_id": "COM-3", "type": "company", "name": "North Plant", "id": 3},
			},
			"branches": []map[string]any{
				{"org_id": "BRA-8", "type": "branch", "name": "Dock B", "id": 8, "company_id": 3},
			},
			"total": 3,
		})
	})
	mux.HandleFunc("GET /tenant/agents", func(w http.ResponseWriter, r *http.Request) {
		if agentsStatus != http.StatusOK {
			w.WriteHeader(agentsStatus)
			return
		}
		writeJSON(t, w, map[string]any{"agents": []map[string]any{}, "total": 14})
	})
	return mux
}

func TestHandleTenantDashboardRendersAllSections(t *testing.T) {
	h := newBackendHandlers(t, tenantBackendMux(t, http.StatusOK))

	c, rec := newTestContext(http.MethodGet, "http://example.com/tenant")
	attachTenantSession(c)

	if err := h.HandleTenantDashboard(c); err != nil {
		t.Fatalf("HandleTenantDashboard() error = %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"North Plant",
		"COM-3",
		"jsmith@acme.test",
		"/tenant/companies/3/branches",
		"/tenant/downloads/TEN-1",
		"/tenant/downloads/BRA-8",
		"14",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestHandleTenantDashboardSurvivesAgentFetchFailure(t *testing.T) {
	h := newBackendHandlers(t, tenantBackendMux(t, http.StatusBadGateway))

	c, rec := newTestContext(http.MethodGet, "http://example.com/tenant")
	attachTenantSession(c)

	if err := h.HandleTenantDashboard(c); err != nil {
		t.Fatalf("HandleTenantDashboard() error = %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "North Plant") {
		t.Fatalf("body missing company row: %q", body)
	}
	if strings.Contains(body, "Failed to load dashboard") {
		t.Fatalf("agent failure must not fail the page: %q", body)
	}
}

func TestHandleCompanyCreatePostRequiresName(t *testing.T) {
	h := newBackendHandlers(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be called without a name")
	}))

	c, rec := newFormContext(http.MethodPost, "http://example.com/tenant/companies", url.Values{"name": {"  "}})
	attachTenantSession(c)

	if err := h.HandleCompanyCreatePost(c); err != nil {
		t.Fatalf("HandleCompanyCreatePost() error = %v", err)
	}

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if got := rec.Header().Get("Location"); got != "/tenant" {
		t.Fatalf("Location = %q, want %q", got, "/tenant")
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Fatal("expected an error toast cookie")
	}
}

func TestHandleCompanyCreatePostCreatesAndRedirects(t *testing.T) {
	h := newBackendHandlers(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/tenant/companies" {
			t.Errorf("unexpected backend call %s %s", r.Method, r.URL.Path)
		}
		var in backend.CompanyCreate
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		if in.Name != "South Plant" {
			t.Errorf("name = %q", in.Name)
		}
		writeJSON(t, w, map[string]any{
			"id":             4,
			"tenant_id":      1,
			"name":           in.Name,
			"company_org_id": "COM-4",
			"created_at":     time.Now().UTC().Format(time.RFC3339),
			"is_active":      true,
		})
	}))

	c, rec := newFormContext(http.MethodPost, "http://example.com/tenant/companies", url.Values{"name": {" South Plant "}})
	attachTenantSession(c)

	if err := h.HandleCompanyCreatePost(c); err != nil {
		t.Fatalf("HandleCompanyCreatePost() error = %v", err)
	}

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if got := rec.Header().Get("Location"); got != "/tenant" {
		t.Fatalf("Location = %q, want %q", got, "/tenant")
	}
}

func TestHandleUserCreatePostValidation(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
	}{
		{name: "missing password", form: url.Values{"username": {"j"}, "email": {"j@acme.test"}, "password": {""}}},
		{name: "bad email", form: url.Values{"username": {"j"}, "email": {"nope"}, "password": {"pw"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newBackendHandlers(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("backend must not be called on validation failure")
			}))

			c, rec := newFormContext(http.MethodPost, "http://example.com/tenant/users", tt.form)
			attachTenantSession(c)

			if err := h.HandleUserCreatePost(c); err != nil {
				t.Fatalf("HandleUserCreatePost() error = %v", err)
			}
			if rec.Code != http.StatusSeeOther {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
			}
		})
	}
}

func TestHandleUserCreatePostDefaultsRoleToViewer(t *testing.T) {
	h := newBackendHandlers(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in backend.UserCreate
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		if in.Role != "viewer" {
			t.Errorf("role = %q, want viewer", in.Role)
		}
		writeJSON(t, w, map[string]any{
			"id": 5, "tenant_id": 1, "username": in.Username, "email": in.Email,
			"role": in.Role, "created_at": time.Now().UTC().Format(time.RFC3339), "is_active": true,
		})
	}))

	form := url.Values{
		"username": {"jsmith"},
		"email":    {"jsmith@acme.test"},
		"password": {"pw"},
		"role":     {"astronaut"},
	}
	c, rec := newFormContext(http.MethodPost, "http://example.com/tenant/users", form)
	attachTenantSession(c)

	if err := h.HandleUserCreatePost(c); err != nil {
		t.Fatalf("HandleUserCreatePost() error = %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
}

func TestHandleBranchesGetRendersRoster(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /tenant/companies/3/branches", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"branches": []map[string]any{
				{
					"id":            8,
					"company_id":    3,
					"name":          "Dock B",
					"location":      "Pier 4",
					"ip_addresses":  "10.0.0.0/24",
					"branch_org_id": "BRA-8",
					"created_at":    time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC).Format(time.RFC3339),
					"is_active":     true,
				},
			},
			"total": 1,
		})
	})
	mux.HandleFunc("GET /tenant/companies", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"companies": []map[string]any{
				{
					"id": 3, "tenant_id": 1, "name": "North Plant", "company_org_id": "COM-3",
					"created_at": time.Now().UTC().Format(time.RFC3339), "is_active": true,
				},
			},
			"total": 1,
		})
	})
	h := newBackendHandlers(t, mux)

	c, rec := newTestContext(http.MethodGet, "http://example.com/tenant/companies/3/branches")
	c.SetPathValues(echo.PathValues{{Name: "id", Value: "3"}})
	attachTenantSession(c)

	if err := h.HandleBranchesGet(c); err != nil {
		t.Fatalf("HandleBranchesGet() error = %v", err)
	}

	body := rec.Body.String()
	for _, want := range []string{"Dock B", "Pier 4", "BRA-8", "North Plant"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestHandleBranchCreatePostRedirectsBack(t *testing.T) {
	h := newBackendHandlers(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/tenant/companies/3/branches" {
			t.Errorf("unexpected backend call %s %s", r.Method, r.URL.Path)
		}
		writeJSON(t, w, map[string]any{
			"id": 9, "company_id": 3, "name": "Dock C", "location": "", "ip_addresses": "",
			"branch_org_id": "BRA-9", "created_at": time.Now().UTC().Format(time.RFC3339), "is_active": true,
		})
	}))

	c, rec := newFormContext(http.MethodPost, "http://example.com/tenant/companies/3/branches", url.Values{"name": {"Dock C"}})
	c.SetPathValues(echo.PathValues{{Name: "id", Value: "3"}})
	attachTenantSession(c)

	if err := h.HandleBranchCreatePost(c); err != nil {
		t.Fatalf("HandleBranchCreatePost() error = %v", err)
	}

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if got := rec.Header().Get("Location"); got != "/tenant/companies/3/branches" {
		t.Fatalf("Location = %q", got)
	}
}
