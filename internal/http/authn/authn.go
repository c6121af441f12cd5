package authn

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/alexedwards/scs/v2"
	"github.com/labstack/echo/v5"

	"github.com/prismtrack/console/internal/backend"
	"github.com/prismtrack/console/internal/http/session"
)

const ContextKeySession = "auth_session"

// SessionFromContext returns the credential session a Require middleware
// attached for this request.
func SessionFromContext(c *echo.Context) (*backend.Session, bool) {
	s, ok := c.Get(ContextKeySession).(*backend.Session)
	return s, ok
}

// Require gates a route group on an authenticated session holding the given
// principal type. Anything else lands on the login page; the console never
// renders a mixed or partial view for the wrong role.
func Require(sessions *scs.SessionManager, principal backend.Principal) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			sess := session.Load(c.Request().Context(), sessions)
			if !sess.Authenticated() || sess.Principal != principal {
				return handleUnauth(c)
			}
			c.Set(ContextKeySession, sess)
			return next(c)
		}
	}
}

func handleUnauth(c *echo.Context) error {
	location := "/login"
	if c.Request().Method == http.MethodGet {
		if next := SanitizeNext(c.Request().URL.RequestURI()); next != "" {
			location = "/login?next=" + url.QueryEscape(next)
		}
	}
	return c.Redirect(http.StatusSeeOther, location)
}

// SanitizeNext keeps post-login redirect targets on-site. Anything absolute,
// protocol-relative or pointing back at the login flow is dropped.
func SanitizeNext(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || len(next) > 2048 {
		return ""
	}
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return ""
	}

	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" || u.Scheme != "" {
		return ""
	}
	if next == "/" || u.Path == "/login" || strings.HasPrefix(u.Path, "/login/") {
		return ""
	}
	if strings.Contains(next, "\\") || strings.Contains(u.Path, "\\") {
		return ""
	}
	if strings.HasPrefix(u.Path, "//") {
		return ""
	}
	return next
}
