// Package handlers contains HTTP handler logic split by console area.
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/a-h/templ"
	"github.com/alexedwards/scs/v2"
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"

	"github.com/prismtrack/console/internal/backend"
	"github.com/prismtrack/console/internal/config"
	"github.com/prismtrack/console/internal/http/authn"
	"github.com/prismtrack/console/internal/http/session"
	"github.com/prismtrack/console/internal/http/viewmodels"
	"github.com/prismtrack/console/internal/http/views"
)

const (
	// ContextKeyRequestID stores the request id (X-Request-ID) for logging and client error references.
	ContextKeyRequestID = "request_id"

	// InternalErrorCode is a stable error code safe to return to clients.
	InternalErrorCode = "INTERNAL_ERROR"
)

// Handlers groups all HTTP handlers and shared dependencies.
type Handlers struct {
	Cfg      config.Config
	API      *backend.Client
	Sessions *scs.SessionManager
}

// LayoutData builds the common layout data for page rendering.
func (h *Handlers) LayoutData(c *echo.Context, title string) viewmodels.LayoutData {
	csrfToken, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	principal := ""
	if sess, ok := authn.SessionFromContext(c); ok {
		principal = string(sess.Principal)
	}
	return viewmodels.LayoutData{
		Title:      title,
		CSRFToken:  csrfToken,
		Principal:  principal,
		ActivePath: c.Request().URL.Path,
		Toast:      popFlashToast(c),
	}
}

// RenderPage renders a body component inside the console layout.
func (h *Handlers) RenderPage(c *echo.Context, layout viewmodels.LayoutData, body templ.Component) error {
	return h.RenderComponent(c, views.Layout(layout, body))
}

// RenderComponent renders a templ component as the response.
func (h *Handlers) RenderComponent(c *echo.Context, component templ.Component) error {
	c.Response().Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(c.Request().Context(), c.Response()); err != nil {
		return h.RenderError(c, err)
	}
	return nil
}

// RenderError returns a plain text error response.
func (h *Handlers) RenderError(c *echo.Context, err error) error {
	requestID, _ := c.Get(ContextKeyRequestID).(string)
	path := ""
	if req := c.Request(); req != nil && req.URL != nil {
		path = req.URL.Path
	}
	method := ""
	if req := c.Request(); req != nil {
		method = req.Method
	}
	c.Logger().Error("http error",
		"request_id", requestID,
		"method", method,
		"path", path,
		"ip", c.RealIP(),
		"error", err,
	)

	msg := "Internal server error."
	if requestID != "" {
		msg = fmt.Sprintf("%s Reference: %s.", msg, requestID)
	}
	msg = fmt.Sprintf("%s Code: %s.", msg, InternalErrorCode)
	return c.String(http.StatusInternalServerError, msg)
}

// RenderNotFound renders the 404 page.
func (h *Handlers) RenderNotFound(c *echo.Context) error {
	c.Response().Header().Set("Content-Type", "text/html; charset=utf-8")
	c.Response().WriteHeader(http.StatusNotFound)
	layout := h.LayoutData(c, "Not Found")
	if err := views.Layout(layout, views.NotFoundPage()).Render(c.Request().Context(), c.Response()); err != nil {
		return h.RenderError(c, err)
	}
	return nil
}

// HandleHealthz returns a simple health check response.
func (h *Handlers) HandleHealthz(c *echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// requestSession returns the credential session the authn middleware loaded,
// or a fresh load for routes outside a Require group.
func (h *Handlers) requestSession(c *echo.Context) *backend.Session {
	if sess, ok := authn.SessionFromContext(c); ok {
		return sess
	}
	return session.Load(c.Request().Context(), h.Sessions)
}

// persistSession writes rotated tokens back to the session store. It must
// run after every backend call that may have refreshed.
func (h *Handlers) persistSession(c *echo.Context, sess *backend.Session) error {
	if !sess.TokensRotated() {
		return nil
	}
	return session.Save(c.Request().Context(), h.Sessions, sess)
}

// expireSession handles a dead credential pair: the stored session is
// destroyed and the browser is sent back to login.
func (h *Handlers) expireSession(c *echo.Context) error {
	if err := h.Sessions.Destroy(c.Request().Context()); err != nil {
		return err
	}
	setFlashToast(c, viewmodels.ToastViewData{
		Category:    "warning",
		Title:       "Session expired",
		Description: "Please sign in again.",
	})
	return redirectTo(c, "/login")
}

// isSessionExpired reports whether a backend failure means the credentials
// are gone, also persisting the cleared state.
func (h *Handlers) handleExpired(c *echo.Context, err error) (bool, error) {
	if !errors.Is(err, backend.ErrSessionExpired) {
		return false, nil
	}
	return true, h.expireSession(c)
}
