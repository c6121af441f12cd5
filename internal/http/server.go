package httpapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"

	"github.com/prismtrack/console/internal/backend"
	"github.com/prismtrack/console/internal/config"
	"github.com/prismtrack/console/internal/http/authn"
	"github.com/prismtrack/console/internal/http/handlers"
)

// EchoServer is the HTTP server wrapper.
type EchoServer struct {
	h   *handlers.Handlers
	e   *echo.Echo
	srv *http.Server
}

// NewEchoServer creates a new HTTP server.
func NewEchoServer(cfg config.Config, api *backend.Client, sessions *scs.SessionManager) (*EchoServer, error) {
	h := &handlers.Handlers{Cfg: cfg, API: api, Sessions: sessions}
	es := &EchoServer{h: h, e: echo.New()}
	es.e.HTTPErrorHandler = es.httpErrorHandler
	es.registerRoutes()
	return es, nil
}

func (es *EchoServer) registerRoutes() {
	es.e.GET("/healthz", es.h.HandleHealthz)

	console := es.e.Group("")
	console.Use(requestIDMiddleware())
	console.Use(echo.WrapMiddleware(es.h.Sessions.LoadAndSave))
	console.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
		TokenLookup:    "header:" + echo.HeaderXCSRFToken + ",form:_csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSameSite: http.SameSiteLaxMode,
	}))

	console.GET("/", es.h.HandleRoot)
	console.GET("/login", es.h.HandleLoginGet)
	console.POST("/login/platform", es.h.HandleLoginPlatformPost)
	console.POST("/login/tenant", es.h.HandleLoginTenantPost)
	console.POST("/logout", es.h.HandleLogoutPost)

	platform := console.Group("/platform", authn.Require(es.h.Sessions, backend.PrincipalPlatformAdmin))
	platform.GET("", es.h.HandlePlatformDashboard)
	platform.GET("/tenants/new", es.h.HandleTenantNewGet)
	platform.POST("/tenants", es.h.HandleTenantCreatePost)
	platform.GET("/tenants/:id", es.h.HandleClient360Get)
	platform.POST("/tenants/:id", es.h.HandleTenantUpdatePost)
	platform.POST("/tenants/:id/delete", es.h.HandleTenantDeletePost)

	tenant := console.Group("/tenant", authn.Require(es.h.Sessions, backend.PrincipalTenant))
	tenant.GET("", es.h.HandleTenantDashboard)
	tenant.POST("/companies", es.h.HandleCompanyCreatePost)
	tenant.GET("/companies/:id/branches", es.h.HandleBranchesGet)
	tenant.POST("/companies/:id/branches", es.h.HandleBranchCreatePost)
	tenant.POST("/users", es.h.HandleUserCreatePost)
	tenant.GET("/agents", es.h.HandleAgentsGet)
	tenant.GET("/agents/:id", es.h.HandleAgentDetailsGet)
	tenant.GET("/downloads/:orgID", es.h.HandleAgentDownloadGet)

	es.e.Static("/static", "web/static")
}

// requestIDMiddleware tags every request with an id for the error reference
// shown to clients and carried in logs.
func requestIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			id := c.Request().Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			c.Set(handlers.ContextKeyRequestID, id)
			c.Response().Header().Set(echo.HeaderXRequestID, id)
			return next(c)
		}
	}
}

func (es *EchoServer) httpErrorHandler(c *echo.Context, err error) {
	if r, _ := echo.UnwrapResponse(c.Response()); r != nil && r.Committed {
		return
	}
	switch status := httpStatusFromError(err); status {
	case http.StatusNotFound:
		_ = es.h.RenderNotFound(c)
	case http.StatusInternalServerError:
		_ = es.h.RenderError(c, err)
	default:
		_ = c.String(status, http.StatusText(status))
	}
}

// httpStatusFromError maps an error to the response status, defaulting to
// 500. Error messages never pass through to the body.
func httpStatusFromError(err error) int {
	var statusCoder interface{ StatusCode() int }
	if errors.As(err, &statusCoder) {
		return statusCoder.StatusCode()
	}
	return http.StatusInternalServerError
}

// StartServer starts the HTTP server with a custom http.Server.
func (es *EchoServer) StartServer(server *http.Server) error {
	server.Handler = es.e
	es.srv = server
	return server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (es *EchoServer) Shutdown(ctx context.Context) error {
	if es.srv == nil {
		return nil
	}
	return es.srv.Shutdown(ctx)
}
