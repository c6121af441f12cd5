package handlers

import (
	"errors"
	"net/http"
	"net/mail"
	"strconv"
	"strings"

	"github.com/labstack/echo/v5"

	"github.com/prismtrack/console/internal/backend"
	"github.com/prismtrack/console/internal/http/viewmodels"
	"github.com/prismtrack/console/internal/http/views"
)

// HandlePlatformDashboard renders the tenant roster.
func (h *Handlers) HandlePlatformDashboard(c *echo.Context) error {
	sess := h.requestSession(c)
	skip, limit := h.parseListParams(c)

	list, err := h.API.ListTenants(c.Request().Context(), sess, skip, limit)
	if expired, expErr := h.handleExpired(c, err); expired {
		return expErr
	}
	if persistErr := h.persistSession(c, sess); persistErr != nil {
		return persistErr
	}

	layout := h.LayoutData(c, "Tenants")
	if err != nil {
		return h.RenderPage(c, layout, views.ErrorBannerPage("Failed to load tenants: "+backend.UserMessage(err)))
	}

	data := viewmodels.PlatformDashboardViewData{
		Layout:     layout,
		Total:      list.Total,
		Pagination: buildPagination("/platform", skip, limit, len(list.Tenants), list.Total),
	}
	for _, tenant := range list.Tenants {
		data.Tenants = append(data.Tenants, viewmodels.TenantRowItem{
			ID:         tenant.ID,
			Name:       tenant.Name,
			AdminEmail: tenant.AdminEmail,
			OrgID:      tenant.TenantOrgID,
			Created:    viewmodels.FormatDate(tenant.CreatedAt),
			Active:     tenant.IsActive,
		})
	}
	return h.RenderPage(c, layout, views.PlatformDashboard(data))
}

func (h *Handlers) HandleTenantNewGet(c *echo.Context) error {
	layout := h.LayoutData(c, "Create Tenant")
	return h.RenderPage(c, layout, views.TenantForm(viewmodels.TenantFormViewData{
		Layout:    layout,
		CSRFToken: layout.CSRFToken,
	}))
}

// HandleTenantCreatePost provisions a tenant. Validation or backend failure
// re-renders the form with the submitted values.
func (h *Handlers) HandleTenantCreatePost(c *echo.Context) error {
	sess := h.requestSession(c)
	layout := h.LayoutData(c, "Create Tenant")

	form := viewmodels.TenantFormViewData{
		Layout:       layout,
		CSRFToken:    layout.CSRFToken,
		Name:         strings.TrimSpace(c.FormValue("name")),
		AdminEmail:   strings.TrimSpace(c.FormValue("admin_email")),
		CompanyName:  strings.TrimSpace(c.FormValue("company_name")),
		Address:      strings.TrimSpace(c.FormValue("address")),
		Phone:        strings.TrimSpace(c.FormValue("phone")),
		IndustryType: strings.TrimSpace(c.FormValue("industry_type")),
	}
	password := c.FormValue("admin_password")

	switch {
	case form.Name == "" || form.AdminEmail == "" || strings.TrimSpace(password) == "":
		form.ErrorMessage = "Name, admin email and admin password are required."
	case !validEmail(form.AdminEmail):
		form.ErrorMessage = "Admin email is not a valid address."
	}
	if form.ErrorMessage != "" {
		return h.RenderPage(c, layout, views.TenantForm(form))
	}

	tenant, err := h.API.CreateTenant(c.Request().Context(), sess, backend.TenantCreate{
		Name:          form.Name,
		AdminEmail:    form.AdminEmail,
		AdminPassword: password,
		CompanyName:   form.CompanyName,
		Address:       form.Address,
		Phone:         form.Phone,
		IndustryType:  form.IndustryType,
	})
	if expired, expErr := h.handleExpired(c, err); expired {
		return expErr
	}
	if persistErr := h.persistSession(c, sess); persistErr != nil {
		return persistErr
	}
	if err != nil {
		form.ErrorMessage = "Failed to create tenant: " + backend.UserMessage(err)
		return h.RenderPage(c, layout, views.TenantForm(form))
	}

	setFlashToast(c, viewmodels.ToastViewData{
		Category:    "success",
		Title:       "Tenant created",
		Description: "Org ID " + tenant.TenantOrgID + ", API key " + tenant.AdminAPIKey,
	})
	return c.Redirect(http.StatusSeeOther, "/platform/tenants/"+strconv.Itoa(tenant.ID))
}

// HandleClient360Get renders the tenant drill-down. The stats fetch runs
// first; the tenant record fetch depends on nothing but keeps the original
// ordering so a missing tenant 404s before rendering partial stats.
func (h *Handlers) HandleClient360Get(c *echo.Context) error {
	tenantID, err := pathID(c, "id")
	if err != nil {
		return h.RenderNotFound(c)
	}
	sess := h.requestSession(c)
	ctx := c.Request().Context()

	stats, err := h.API.GetTenantStats(ctx, sess, tenantID)
	if expired, expErr := h.handleExpired(c, err); expired {
		return expErr
	}
	if persistErr := h.persistSession(c, sess); persistErr != nil {
		return persistErr
	}
	layout := h.LayoutData(c, "Client 360")
	if err != nil {
		if isNotFound(err) {
			return h.RenderNotFound(c)
		}
		return h.RenderPage(c, layout, views.ErrorBannerPage("Failed to load tenant: "+backend.UserMessage(err)))
	}

	tenant, err := h.API.GetTenant(ctx, sess, tenantID)
	if expired, expErr := h.handleExpired(c, err); expired {
		return expErr
	}
	if persistErr := h.persistSession(c, sess); persistErr != nil {
		return persistErr
	}
	if err != nil {
		return h.RenderPage(c, layout, views.ErrorBannerPage("Failed to load tenant: "+backend.UserMessage(err)))
	}

	return h.RenderPage(c, layout, views.Client360(h.client360Data(layout, tenant, stats)))
}

func (h *Handlers) client360Data(layout viewmodels.LayoutData, tenant *backend.Tenant, stats *backend.TenantStats) viewmodels.Client360ViewData {
	return viewmodels.Client360ViewData{
		Layout:     layout,
		CSRFToken:  layout.CSRFToken,
		TenantID:   tenant.ID,
		Name:       tenant.Name,
		AdminEmail: tenant.AdminEmail,
		OrgID:      tenant.TenantOrgID,
		APIKey:     tenant.AdminAPIKey,
		Created:    viewmodels.FormatDate(tenant.CreatedAt),
		Active:     tenant.IsActive,
		Companies:  stats.Statistics.Companies,
		Branches:   stats.Statistics.Branches,
		Users:      stats.Statistics.Users,
		Agents:     stats.Statistics.Agents,
	}
}

// HandleTenantUpdatePost applies name and admin-email changes.
func (h *Handlers) HandleTenantUpdatePost(c *echo.Context) error {
	tenantID, err := pathID(c, "id")
	if err != nil {
		return h.RenderNotFound(c)
	}
	sess := h.requestSession(c)

	name := strings.TrimSpace(c.FormValue("name"))
	email := strings.TrimSpace(c.FormValue("admin_email"))
	if name == "" || email == "" {
		setFlashToast(c, viewmodels.ToastViewData{
			Category:    "error",
			Title:       "Update failed",
			Description: "Name and admin email are required.",
		})
		return c.Redirect(http.StatusSeeOther, "/platform/tenants/"+strconv.Itoa(tenantID))
	}
	if !validEmail(email) {
		setFlashToast(c, viewmodels.ToastViewData{
			Category:    "error",
			Title:       "Update failed",
			Description: "Admin email is not a valid address.",
		})
		return c.Redirect(http.StatusSeeOther, "/platform/tenants/"+strconv.Itoa(tenantID))
	}

	_, err = h.API.UpdateTenant(c.Request().Context(), sess, tenantID, backend.TenantUpdate{
		Name:       &name,
		AdminEmail: &email,
	})
	if expired, expErr := h.handleExpired(c, err); expired {
		return expErr
	}
	if persistErr := h.persistSession(c, sess); persistErr != nil {
		return persistErr
	}
	if err != nil {
		setFlashToast(c, viewmodels.ToastViewData{
			Category:    "error",
			Title:       "Update failed",
			Description: backend.UserMessage(err),
		})
	} else {
		setFlashToast(c, viewmodels.ToastViewData{
			Category: "success",
			Title:    "Tenant updated",
		})
	}
	return c.Redirect(http.StatusSeeOther, "/platform/tenants/"+strconv.Itoa(tenantID))
}

// HandleTenantDeletePost deactivates a tenant and returns to the roster.
func (h *Handlers) HandleTenantDeletePost(c *echo.Context) error {
	tenantID, err := pathID(c, "id")
	if err != nil {
		return h.RenderNotFound(c)
	}
	sess := h.requestSession(c)

	err = h.API.DeleteTenant(c.Request().Context(), sess, tenantID)
	if expired, expErr := h.handleExpired(c, err); expired {
		return expErr
	}
	if persistErr := h.persistSession(c, sess); persistErr != nil {
		return persistErr
	}
	if err != nil {
		setFlashToast(c, viewmodels.ToastViewData{
			Category:    "error",
			Title:       "Deactivation failed",
			Description: backend.UserMessage(err),
		})
		return c.Redirect(http.StatusSeeOther, "/platform/tenants/"+strconv.Itoa(tenantID))
	}

	setFlashToast(c, viewmodels.ToastViewData{
		Category: "success",
		Title:    "Tenant deactivated",
	})
	return c.Redirect(http.StatusSeeOther, "/platform")
}

func pathID(c *echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(c.Param(name)))
	if err != nil || id < 1 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

func isNotFound(err error) bool {
	var apiErr *backend.APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

func validEmail(addr string) bool {
	parsed, err := mail.ParseAddress(addr)
	return err == nil && parsed.Address == addr
}
