package metrics

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestStartServerDisabledAddrs(t *testing.T) {
	t.Parallel()

	for _, addr := range []string{"", "  ", "off", "OFF", "disabled", "false"} {
		srv, errCh := StartServer(context.Background(), addr)
		if srv != nil || errCh != nil {
			t.Errorf("StartServer(%q) started a listener", addr)
		}
	}
}

func TestOpsMuxServesScrapeAndLiveness(t *testing.T) {
	t.Parallel()

	mux := opsMux()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))
	if rec.Code != 200 || rec.Body.String() != "ok" {
		t.Errorf("healthz = %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 200 {
		t.Fatalf("metrics status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Error("metrics output missing default collectors")
	}
}
