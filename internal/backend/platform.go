package backend

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Tenant is a customer organization provisioned by a platform operator.
type Tenant struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	AdminEmail  string    `json:"admin_email"`
	TenantOrgID string    `json:"tenant_org_id"`
	AdminAPIKey string    `json:"admin_api_key"`
	CreatedBy   int       `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	IsActive    bool      `json:"is_active"`
}

type TenantList struct {
	Tenants []Tenant `json:"tenants"`
	Total   int      `json:"total"`
}

// TenantCreate carries the provisioning form. The client-detail fields are
// optional and omitted from the payload when empty.
type TenantCreate struct {
	Name          string `json:"name"`
	AdminEmail    string `json:"admin_email"`
	AdminPassword string `json:"admin_password"`
	CompanyName   string `json:"company_name,omitempty"`
	Address       string `json:"address,omitempty"`
	Phone         string `json:"phone,omitempty"`
	IndustryType  string `json:"industry_type,omitempty"`
}

// TenantUpdate is a partial update; nil fields are left untouched.
type TenantUpdate struct {
	Name       *string `json:"name,omitempty"`
	AdminEmail *string `json:"admin_email,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

// TenantStatsSummary is the tenant slice echoed back by the stats endpoint.
// It is narrower than Tenant: no API key and no creator.
type TenantStatsSummary struct {
	ID          int       `json:"id"`
	TenantOrgID string    `json:"tenant_org_id"`
	Name        string    `json:"name"`
	AdminEmail  string    `json:"admin_email"`
	CreatedAt   time.Time `json:"created_at"`
	IsActive    bool      `json:"is_active"`
}

type TenantStats struct {
	Tenant     TenantStatsSummary `json:"tenant"`
	Statistics struct {
		Companies int `json:"companies"`
		Branches  int `json:"branches"`
		Users     int `json:"users"`
		Agents    int `json:"agents"`
	} `json:"statistics"`
}

func (c *Client) ListTenants(ctx context.Context, sess *Session, skip, limit int) (*TenantList, error) {
	var out TenantList
	if err := c.call(ctx, sess, "list_tenants", http.MethodGet, "/platform-admin/tenants", pageQuery(skip, limit), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateTenant(ctx context.Context, sess *Session, in TenantCreate) (*Tenant, error) {
	var out Tenant
	if err := c.call(ctx, sess, "create_tenant", http.MethodPost, "/platform-admin/tenants", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetTenant(ctx context.Context, sess *Session, tenantID int) (*Tenant, error) {
	var out Tenant
	path := fmt.Sprintf("/platform-admin/tenants/%d", tenantID)
	if err := c.call(ctx, sess, "get_tenant", http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTenant(ctx context.Context, sess *Session, tenantID int, in TenantUpdate) (*Tenant, error) {
	var out Tenant
	path := fmt.Sprintf("/platform-admin/tenants/%d", tenantID)
	if err := c.call(ctx, sess, "update_tenant", http.MethodPut, path, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTenant deactivates a tenant. The backend soft-deletes and returns
// no body.
func (c *Client) DeleteTenant(ctx context.Context, sess *Session, tenantID int) error {
	path := fmt.Sprintf("/platform-admin/tenants/%d", tenantID)
	return c.call(ctx, sess, "delete_tenant", http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) GetTenantStats(ctx context.Context, sess *Session, tenantID int) (*TenantStats, error) {
	var out TenantStats
	path := fmt.Sprintf("/platform-admin/tenants/%d/stats", tenantID)
	if err := c.call(ctx, sess, "get_tenant_stats", http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
