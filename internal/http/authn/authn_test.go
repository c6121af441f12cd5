package authn

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/labstack/echo/v5"

	"github.com/prismtrack/console/internal/backend"
	"github.com/prismtrack/console/internal/http/session"
)

func TestSanitizeNext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "whitespace", in: "   ", want: ""},
		{name: "root", in: "/", want: ""},
		{name: "ok_path", in: "/tenant/agents", want: "/tenant/agents"},
		{name: "ok_path_query", in: "/tenant/agents?skip=100", want: "/tenant/agents?skip=100"},
		{name: "ok_root_query", in: "/?foo=bar", want: "/?foo=bar"},
		{name: "absolute_url", in: "https://evil.example/", want: ""},
		{name: "protocol_relative", in: "//evil.example/", want: ""},
		{name: "triple_slash", in: "///evil.example/", want: ""},
		{name: "backslash", in: "/\\evil.example/", want: ""},
		{name: "encoded_slash", in: "/%2f%2fevil.example/", want: ""},
		{name: "encoded_backslash", in: "/%5cevil.example/", want: ""},
		{name: "login_path", in: "/login", want: ""},
		{name: "login_subpath", in: "/login/tenant", want: ""},
		{name: "newline", in: "/\n/evil", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SanitizeNext(tt.in); got != tt.want {
				t.Fatalf("SanitizeNext(%q)=%q; want %q", tt.in, got, tt.want)
			}
		})
	}
}

func requireTestContext(t *testing.T, sessions *scs.SessionManager, method, target string, sess *backend.Session) (*echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	ctx, err := sessions.Load(req.Context(), "")
	if err != nil {
		t.Fatalf("sessions.Load() error = %v", err)
	}
	if sess != nil {
		if err := session.Save(ctx, sessions, sess); err != nil {
			t.Fatalf("session.Save() error = %v", err)
		}
	}
	c.SetRequest(req.WithContext(ctx))
	return c, rec
}

func TestRequireRedirectsAnonymousToLogin(t *testing.T) {
	sessions := scs.New()
	c, rec := requireTestContext(t, sessions, http.MethodGet, "http://example.com/tenant/agents?skip=100", nil)

	mw := Require(sessions, backend.PrincipalTenant)
	err := mw(func(c *echo.Context) error {
		t.Fatal("next handler should not run")
		return nil
	})(c)
	if err != nil {
		t.Fatalf("middleware error = %v", err)
	}

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if got := rec.Header().Get("Location"); got != "/login?next=%2Ftenant%2Fagents%3Fskip%3D100" {
		t.Fatalf("Location = %q", got)
	}
}

func TestRequireRejectsWrongPrincipal(t *testing.T) {
	sessions := scs.New()
	sess := &backend.Session{AccessToken: "a", RefreshToken: "r", Principal: backend.PrincipalTenant}
	c, rec := requireTestContext(t, sessions, http.MethodGet, "http://example.com/platform", sess)

	mw := Require(sessions, backend.PrincipalPlatformAdmin)
	err := mw(func(c *echo.Context) error {
		t.Fatal("next handler should not run")
		return nil
	})(c)
	if err != nil {
		t.Fatalf("middleware error = %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
}

func TestRequireAttachesSession(t *testing.T) {
	sessions := scs.New()
	sess := &backend.Session{AccessToken: "a", RefreshToken: "r", Principal: backend.PrincipalTenant}
	c, _ := requireTestContext(t, sessions, http.MethodGet, "http://example.com/tenant", sess)

	var ran bool
	mw := Require(sessions, backend.PrincipalTenant)
	err := mw(func(c *echo.Context) error {
		ran = true
		got, ok := SessionFromContext(c)
		if !ok {
			t.Fatal("SessionFromContext: no session attached")
		}
		if got.AccessToken != "a" || got.Principal != backend.PrincipalTenant {
			t.Fatalf("attached session = %+v", got)
		}
		return nil
	})(c)
	if err != nil {
		t.Fatalf("middleware error = %v", err)
	}
	if !ran {
		t.Fatal("next handler did not run")
	}
}

func TestRequirePostRedirectCarriesNoNext(t *testing.T) {
	sessions := scs.New()
	c, rec := requireTestContext(t, sessions, http.MethodPost, "http://example.com/tenant/companies", nil)

	mw := Require(sessions, backend.PrincipalTenant)
	if err := mw(func(c *echo.Context) error { return nil })(c); err != nil {
		t.Fatalf("middleware error = %v", err)
	}
	if got := rec.Header().Get("Location"); got != "/login" {
		t.Fatalf("Location = %q, want %q", got, "/login")
	}
}
