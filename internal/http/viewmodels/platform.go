package viewmodels

type TenantRowItem struct {
	ID         int
	Name       string
	AdminEmail string
	OrgID      string
	Created    string
	Active     bool
}

type PlatformDashboardViewData struct {
	Layout     LayoutData
	Tenants    []TenantRowItem
	Total      int
	Pagination PaginationViewData
}

// TenantFormViewData backs the provisioning form. On validation or backend
// failure the form re-renders with the submitted values and an error banner.
type TenantFormViewData struct {
	Layout       LayoutData
	CSRFToken    string
	Name         string
	AdminEmail   string
	CompanyName  string
	Address      string
	Phone        string
	IndustryType string
	ErrorMessage string
}

type Client360ViewData struct {
	Layout       LayoutData
	CSRFToken    string
	TenantID     int
	Name         string
	AdminEmail   string
	OrgID        string
	APIKey       string
	Created      string
	Active       bool
	Companies    int
	Branches     int
	Users        int
	Agents       int
	ErrorMessage string
}
