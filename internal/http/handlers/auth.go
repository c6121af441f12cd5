package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"

	"github.com/prismtrack/console/internal/backend"
	"github.com/prismtrack/console/internal/http/authn"
	"github.com/prismtrack/console/internal/http/session"
	"github.com/prismtrack/console/internal/http/viewmodels"
	"github.com/prismtrack/console/internal/http/views"
)

// HandleRoot routes by held principal: platform admins land on the tenant
// roster, tenant admins on their dashboard, everyone else on login.
func (h *Handlers) HandleRoot(c *echo.Context) error {
	sess := session.Load(c.Request().Context(), h.Sessions)
	switch {
	case sess.Authenticated() && sess.Principal == backend.PrincipalPlatformAdmin:
		return c.Redirect(http.StatusSeeOther, "/platform")
	case sess.Authenticated() && sess.Principal == backend.PrincipalTenant:
		return c.Redirect(http.StatusSeeOther, "/tenant")
	default:
		return c.Redirect(http.StatusSeeOther, "/login")
	}
}

func (h *Handlers) HandleLoginGet(c *echo.Context) error {
	sess := session.Load(c.Request().Context(), h.Sessions)
	if sess.Authenticated() {
		return c.Redirect(http.StatusSeeOther, "/")
	}

	csrfToken, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	data := viewmodels.LoginViewData{
		CSRFToken: csrfToken,
		Next:      authn.SanitizeNext(c.QueryParam("next")),
		Toast:     popFlashToast(c),
	}
	return h.RenderComponent(c, views.Layout(viewmodels.LayoutData{Title: "Sign In", CSRFToken: csrfToken}, views.LoginPage(data)))
}

// HandleLoginPlatformPost signs a platform operator in with username and
// password.
func (h *Handlers) HandleLoginPlatformPost(c *echo.Context) error {
	return h.handleLogin(c, loginRequest{
		mode:     "platform",
		identity: strings.TrimSpace(c.FormValue("username")),
		password: c.FormValue("password"),
		landing:  "/platform",
		login: func(c *echo.Context, sess *backend.Session, identity, password string) error {
			return h.API.LoginPlatformAdmin(c.Request().Context(), sess, identity, password)
		},
	})
}

// HandleLoginTenantPost signs a tenant admin in with email and password.
func (h *Handlers) HandleLoginTenantPost(c *echo.Context) error {
	return h.handleLogin(c, loginRequest{
		mode:     "tenant",
		identity: strings.ToLower(strings.TrimSpace(c.FormValue("email"))),
		password: c.FormValue("password"),
		landing:  "/tenant",
		login: func(c *echo.Context, sess *backend.Session, identity, password string) error {
			return h.API.LoginTenant(c.Request().Context(), sess, identity, password)
		},
	})
}

type loginRequest struct {
	mode     string
	identity string
	password string
	landing  string
	login    func(c *echo.Context, sess *backend.Session, identity, password string) error
}

func (h *Handlers) handleLogin(c *echo.Context, req loginRequest) error {
	ctx := c.Request().Context()
	next := authn.SanitizeNext(c.FormValue("next"))

	csrfToken, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	data := viewmodels.LoginViewData{
		CSRFToken: csrfToken,
		Mode:      req.mode,
		Identity:  req.identity,
		Next:      next,
	}
	layout := viewmodels.LayoutData{Title: "Sign In", CSRFToken: csrfToken}

	if req.identity == "" || strings.TrimSpace(req.password) == "" {
		data.ErrorMessage = "Please fill in all fields."
		return h.RenderComponent(c, views.Layout(layout, views.LoginPage(data)))
	}

	sess := &backend.Session{}
	if err := req.login(c, sess, req.identity, req.password); err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			data.ErrorMessage = "Login failed: " + apiErr.Message()
			return h.RenderComponent(c, views.Layout(layout, views.LoginPage(data)))
		}
		return err
	}

	if err := h.Sessions.RenewToken(ctx); err != nil {
		return err
	}
	if err := session.Save(ctx, h.Sessions, sess); err != nil {
		return err
	}

	if next != "" {
		return c.Redirect(http.StatusSeeOther, next)
	}
	return c.Redirect(http.StatusSeeOther, req.landing)
}

func (h *Handlers) HandleLogoutPost(c *echo.Context) error {
	if err := h.Sessions.Destroy(c.Request().Context()); err != nil {
		return err
	}
	setFlashToast(c, viewmodels.ToastViewData{
		Category: "success",
		Title:    "Signed out",
	})
	return redirectTo(c, "/login")
}
