package backend

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

type Company struct {
	ID           int       `json:"id"`
	TenantID     int       `json:"tenant_id"`
	Name         string    `json:"name"`
	CompanyOrgID string    `json:"company_org_id"`
	CreatedAt    time.Time `json:"created_at"`
	IsActive     bool      `json:"is_active"`
}

type CompanyList struct {
	Companies []Company `json:"companies"`
	Total     int       `json:"total"`
}

type CompanyCreate struct {
	Name string `json:"name"`
}

type Branch struct {
	ID          int       `json:"id"`
	CompanyID   int       `json:"company_id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	IPAddresses string    `json:"ip_addresses"`
	BranchOrgID string    `json:"branch_org_id"`
	CreatedAt   time.Time `json:"created_at"`
	IsActive    bool      `json:"is_active"`
}

type BranchList struct {
	Branches []Branch `json:"branches"`
	Total    int      `json:"total"`
}

type BranchCreate struct {
	Name        string `json:"name"`
	Location    string `json:"location,omitempty"`
	IPAddresses string `json:"ip_addresses,omitempty"`
}

// User is a tenant-scoped console account (admin, manager or viewer).
type User struct {
	ID        int       `json:"id"`
	TenantID  int       `json:"tenant_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `json:"is_active"`
}

type UserList struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
}

type UserCreate struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// OrgRef identifies one node of the tenant's organization tree. Type is
// "tenant", "company" or "branch"; CompanyID is set for branches only.
type OrgRef struct {
	OrgID     string `json:"org_id"`
	Type      string `json:"type"`
	Name      string `json:"name"`
	ID        int    `json:"id"`
	CompanyID int    `json:"company_id,omitempty"`
}

// OrgDirectory lists every org ID an agent package can be issued for.
type OrgDirectory struct {
	Tenant    OrgRef   `json:"tenant"`
	Companies []OrgRef `json:"companies"`
	Branches  []OrgRef `json:"branches"`
	Total     int      `json:"total"`
}

type Agent struct {
	ID           int       `json:"id"`
	OrgID        string    `json:"org_id"`
	OrgType      string    `json:"org_type"`
	MachineName  string    `json:"machine_name"`
	HardwareUUID string    `json:"hardware_uuid"`
	LastSeen     time.Time `json:"last_seen"`
	Status       string    `json:"status"`
	RegisteredAt time.Time `json:"registered_at"`
}

type AgentList struct {
	Agents []Agent `json:"agents"`
	Total  int     `json:"total"`
}

type TelemetryRecord struct {
	WindowTitle   string    `json:"window_title"`
	ProcessName   string    `json:"process_name"`
	Timestamp     time.Time `json:"timestamp"`
	IsIdle        bool      `json:"is_idle"`
	ScreenshotURL string    `json:"screenshot_url"`
}

type TelemetryList struct {
	Telemetry []TelemetryRecord `json:"telemetry"`
	Total     int               `json:"total"`
}

func (c *Client) ListCompanies(ctx context.Context, sess *Session) (*CompanyList, error) {
	var out CompanyList
	if err := c.call(ctx, sess, "list_companies", http.MethodGet, "/tenant/companies", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCompany(ctx context.Context, sess *Session, in CompanyCreate) (*Company, error) {
	var out Company
	if err := c.call(ctx, sess, "create_company", http.MethodPost, "/tenant/companies", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListBranches(ctx context.Context, sess *Session, companyID int) (*BranchList, error) {
	var out BranchList
	path := fmt.Sprintf("/tenant/companies/%d/branches", companyID)
	if err := c.call(ctx, sess, "list_branches", http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateBranch(ctx context.Context, sess *Session, companyID int, in BranchCreate) (*Branch, error) {
	var out Branch
	path := fmt.Sprintf("/tenant/companies/%d/branches", companyID)
	if err := c.call(ctx, sess, "create_branch", http.MethodPost, path, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListUsers(ctx context.Context, sess *Session) (*UserList, error) {
	var out UserList
	if err := c.call(ctx, sess, "list_users", http.MethodGet, "/tenant/users", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateUser(ctx context.Context, sess *Session, in UserCreate) (*User, error) {
	var out User
	if err := c.call(ctx, sess, "create_user", http.MethodPost, "/tenant/users", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListOrgIDs(ctx context.Context, sess *Session) (*OrgDirectory, error) {
	var out OrgDirectory
	if err := c.call(ctx, sess, "list_org_ids", http.MethodGet, "/tenant/org-ids", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListAgents(ctx context.Context, sess *Session, skip, limit int) (*AgentList, error) {
	var out AgentList
	if err := c.call(ctx, sess, "list_agents", http.MethodGet, "/tenant/agents", pageQuery(skip, limit), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetAgent(ctx context.Context, sess *Session, agentID int) (*Agent, error) {
	var out Agent
	path := fmt.Sprintf("/tenant/agents/%d", agentID)
	if err := c.call(ctx, sess, "get_agent", http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListTelemetry(ctx context.Context, sess *Session, agentID, skip, limit int) (*TelemetryList, error) {
	var out TelemetryList
	path := fmt.Sprintf("/tenant/agents/%d/telemetry", agentID)
	if err := c.call(ctx, sess, "list_telemetry", http.MethodGet, path, pageQuery(skip, limit), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
