package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v5"
	"golang.org/x/sync/errgroup"

	"github.com/prismtrack/console/internal/backend"
	"github.com/prismtrack/console/internal/http/viewmodels"
	"github.com/prismtrack/console/internal/http/views"
)

// HandleTenantDashboard renders the tenant home page. The four independent
// fetches run concurrently; the agent roster degrades to an empty count
// when its endpoint fails, the rest surface their error.
func (h *Handlers) HandleTenantDashboard(c *echo.Context) error {
	sess := h.requestSession(c)
	ctx := c.Request().Context()

	var (
		companies *backend.CompanyList
		users     *backend.UserList
		orgs      *backend.OrgDirectory
		agents    *backend.AgentList
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		companies, err = h.API.ListCompanies(gctx, sess)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = h.API.ListUsers(gctx, sess)
		return err
	})
	g.Go(func() error {
		var err error
		orgs, err = h.API.ListOrgIDs(gctx, sess)
		return err
	})
	g.Go(func() error {
		list, err := h.API.ListAgents(gctx, sess, 0, 1)
		if err != nil {
			agents = &backend.AgentList{}
			return nil
		}
		agents = list
		return nil
	})
	err := g.Wait()

	if expired, expErr := h.handleExpired(c, err); expired {
		return expErr
	}
	if persistErr := h.persistSession(c, sess); persistErr != nil {
		return persistErr
	}
	layout := h.LayoutData(c, "Dashboard")
	if err != nil {
		return h.RenderPage(c, layout, views.ErrorBannerPage("Failed to load dashboard: "+backend.UserMessage(err)))
	}

	data := viewmodels.TenantDashboardViewData{
		Layout:       layout,
		CSRFToken:    layout.CSRFToken,
		CompanyTotal: companies.Total,
		UserTotal:    users.Total,
		AgentTotal:   agents.Total,
		UserForm:     viewmodels.UserFormViewData{Role: "viewer"},
	}
	for _, company := range companies.Companies {
		data.Companies = append(data.Companies, companyRow(company))
	}
	for _, user := range users.Users {
		data.Users = append(data.Users, viewmodels.UserRowItem{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     user.Role,
			Created:  viewmodels.FormatDate(user.CreatedAt),
			Active:   user.IsActive,
		})
	}
	data.Downloads = downloadRows(orgs)
	return h.RenderPage(c, layout, views.TenantDashboard(data))
}

func companyRow(company backend.Company) viewmodels.CompanyRowItem {
	return viewmodels.CompanyRowItem{
		ID:      company.ID,
		Name:    company.Name,
		OrgID:   company.CompanyOrgID,
		Created: viewmodels.FormatDate(company.CreatedAt),
		Active:  company.IsActive,
	}
}

// downloadRows flattens the org directory in display order: tenant first,
// then companies, then branches.
func downloadRows(orgs *backend.OrgDirectory) []viewmodels.DownloadRowItem {
	if orgs == nil {
		return nil
	}
	rows := make([]viewmodels.DownloadRowItem, 0, orgs.Total)
	rows = append(rows, viewmodels.DownloadRowItem{
		OrgID: orgs.Tenant.OrgID,
		Kind:  orgs.Tenant.Type,
		Name:  orgs.Tenant.Name,
	})
	for _, org := range orgs.Companies {
		rows = append(rows, viewmodels.DownloadRowItem{OrgID: org.OrgID, Kind: org.Type, Name: org.Name})
	}
	for _, org := range orgs.Branches {
		rows = append(rows, viewmodels.DownloadRowItem{OrgID: org.OrgID, Kind: org.Type, Name: org.Name})
	}
	return rows
}

// HandleCompanyCreatePost adds a company and returns to the dashboard.
func (h *Handlers) HandleCompanyCreatePost(c *echo.Context) error {
	sess := h.requestSession(c)

	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		setFlashToast(c, viewmodels.ToastViewData{
			Category:    "error",
			Title:       "Company not created",
			Description: "Company name is required.",
		})
		return c.Redirect(http.StatusSeeOther, "/tenant")
	}

	company, err := h.API.CreateCompany(c.Request().Context(), sess, backend.CompanyCreate{Name: name})
	if expired, expErr := h.handleExpired(c, err); expired {
		return expErr
	}
	if persistErr := h.persistSession(c, sess); persistErr != nil {
		return persistErr
	}
	if err != nil {
		setFlashToast(c, viewmodels.ToastViewData{
			Category:    "error",
			Title:       "Company not created",
			Description: backend.UserMessage(err),
		})
		return c.Redirect(http.StatusSeeOther, "/tenant")
	}

	setFlashToast(c, viewmodels.ToastViewData{
		Category:    "success",
		Title:       "Company created",
		Description: "Org ID " + company.CompanyOrgID,
	})
	return c.Redirect(http.StatusSeeOther, "/tenant")
}

// HandleUserCreatePost adds a console user and returns to the dashboard.
func (h *Handlers) HandleUserCreatePost(c *echo.Context) error {
	sess := h.requestSession(c)

	username := strings.TrimSpace(c.FormValue("username"))
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")
	role := normalizeRole(c.FormValue("role"))

	var problem string
	switch {
	case username == "" || email == "" || strings.TrimSpace(password) == "":
		problem = "Username, email and password are required."
	case !validEmail(email):
		problem = "Email is not a valid address."
	}
	if problem != "" {
		setFlashToast(c, viewmodels.ToastViewData{
			Category:    "error",
			Title:       "User not created",
			Description: problem,
		})
		return c.Redirect(http.StatusSeeOther, "/tenant")
	}

	_, err := h.API.CreateUser(c.Request().Context(), sess, backend.UserCreate{
		Username: username,
		Email:    email,
		Password: password,
		Role:     role,
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
			Title:       "User not created",
			Description: backend.UserMessage(err),
		})
		return c.Redirect(http.StatusSeeOther, "/tenant")
	}

	setFlashToast(c, viewmodels.ToastViewData{
		Category: "success",
		Title:    "User created",
	})
	return c.Redirect(http.StatusSeeOther, "/tenant")
}

func normalizeRole(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "admin":
		return "admin"
	case "manager":
		return "manager"
	default:
		return "viewer"
	}
}

// HandleBranchesGet lists one company's branches with the add form.
func (h *Handlers) HandleBranchesGet(c *echo.Context) error {
	companyID, err := pathID(c, "id")
	if err != nil {
		return h.RenderNotFound(c)
	}
	sess := h.requestSession(c)
	ctx := c.Request().Context()

	var (
		branches  *backend.BranchList
		companies *backend.CompanyList
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		branches, err = h.API.ListBranches(gctx, sess, companyID)
		return err
	})
	g.Go(func() error {
		var err error
		companies, err = h.API.ListCompanies(gctx, sess)
		return err
	})
	err = g.Wait()

	if expired, expErr := h.handleExpired(c, err); expired {
		return expErr
	}
	if persistErr := h.persistSession(c, sess); persistErr != nil {
		return persistErr
	}
	layout := h.LayoutData(c, "Branches")
	if err != nil {
		if isNotFound(err) {
			return h.RenderNotFound(c)
		}
		return h.RenderPage(c, layout, views.ErrorBannerPage("Failed to load branches: "+backend.UserMessage(err)))
	}

	data := viewmodels.BranchesViewData{
		Layout:      layout,
		CSRFToken:   layout.CSRFToken,
		CompanyID:   companyID,
		CompanyName: companyName(companies, companyID),
		Total:       branches.Total,
	}
	for _, branch := range branches.Branches {
		data.Branches = append(data.Branches, viewmodels.BranchRowItem{
			ID:          branch.ID,
			Name:        branch.Name,
			Location:    branch.Location,
			IPAddresses: branch.IPAddresses,
			OrgID:       branch.BranchOrgID,
			Created:     viewmodels.FormatDate(branch.CreatedAt),
			Active:      branch.IsActive,
		})
	}
	return h.RenderPage(c, layout, views.Branches(data))
}

func companyName(companies *backend.CompanyList, companyID int) string {
	if companies == nil {
		return ""
	}
	for _, company := range companies.Companies {
		if company.ID == companyID {
			return company.Name
		}
	}
	return ""
}

// HandleBranchCreatePost adds a branch under a company.
func (h *Handlers) HandleBranchCreatePost(c *echo.Context) error {
	companyID, err := pathID(c, "id")
	if err != nil {
		return h.RenderNotFound(c)
	}
	sess := h.requestSession(c)
	branchesHref := "/tenant/companies/" + c.Param("id") + "/branches"

	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		setFlashToast(c, viewmodels.ToastViewData{
			Category:    "error",
			Title:       "Branch not created",
			Description: "Branch name is required.",
		})
		return c.Redirect(http.StatusSeeOther, branchesHref)
	}

	branch, err := h.API.CreateBranch(c.Request().Context(), sess, companyID, backend.BranchCreate{
		Name:        name,
		Location:    strings.TrimSpace(c.FormValue("location")),
		IPAddresses: strings.TrimSpace(c.FormValue("ip_addresses")),
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
			Title:       "Branch not created",
			Description: backend.UserMessage(err),
		})
		return c.Redirect(http.StatusSeeOther, branchesHref)
	}

	setFlashToast(c, viewmodels.ToastViewData{
		Category:    "success",
		Title:       "Branch created",
		Description: "Org ID " + branch.BranchOrgID,
	})
	return c.Redirect(http.StatusSeeOther, branchesHref)
}
