package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v5"
)

func newTestContext(method, target string) (*echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

func parseVaryHeader(value string) map[string]int {
	parts := strings.Split(value, ",")
	out := make(map[string]int, len(parts))
	for _, part := range parts {
		token := strings.ToLower(strings.TrimSpace(part))
		if token == "" {
			continue
		}
		out[token]++
	}
	return out
}

func TestAddVary(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "http://example.com/")
	c.Response().Header().Set(echo.HeaderVary, "Accept-Encoding")

	addVary(c, "HX-Request", "hx-target", "Accept-Encoding")

	got := parseVaryHeader(c.Response().Header().Get(echo.HeaderVary))
	if got["accept-encoding"] != 1 {
		t.Fatalf("Vary missing accept-encoding: %v", got)
	}
	if got["hx-request"] != 1 {
		t.Fatalf("Vary missing hx-request: %v", got)
	}
	if got["hx-target"] != 1 {
		t.Fatalf("Vary missing hx-target: %v", got)
	}
}

func TestAddVaryPreservesWildcard(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "http://example.com/")
	c.Response().Header().Set(echo.HeaderVary, "*")

	addVary(c, "HX-Request")

	if got := c.Response().Header().Get(echo.HeaderVary); got != "*" {
		t.Fatalf("Vary = %q, want *", got)
	}
}

func TestRedirectToUsesSeeOtherForBrowsers(t *testing.T) {
	c, rec := newTestContext(http.MethodPost, "http://example.com/logout")

	if err := redirectTo(c, "/login"); err != nil {
		t.Fatalf("redirectTo() error = %v", err)
	}

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if got := rec.Header().Get("Location"); got != "/login" {
		t.Fatalf("Location = %q, want %q", got, "/login")
	}
}

func TestRedirectToUsesHXRedirectForHTMX(t *testing.T) {
	c, rec := newTestContext(http.MethodPost, "http://example.com/logout")
	c.Request().Header.Set("HX-Request", "true")

	if err := redirectTo(c, "/login"); err != nil {
		t.Fatalf("redirectTo() error = %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("HX-Redirect"); got != "/login" {
		t.Fatalf("HX-Redirect = %q, want %q", got, "/login")
	}
	if vary := parseVaryHeader(rec.Header().Get(echo.HeaderVary)); vary["hx-request"] != 1 {
		t.Fatalf("Vary header missing hx-request: %v", vary)
	}
}
