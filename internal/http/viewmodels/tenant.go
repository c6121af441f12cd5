package viewmodels

type CompanyRowItem struct {
	ID      int
	Name    string
	OrgID   string
	Created string
	Active  bool
}

type UserRowItem struct {
	ID       int
	Username string
	Email    string
	Role     string
	Created  string
	Active   bool
}

// DownloadRowItem is one row of the per-org agent download panel. Kind is
// "tenant", "company" or "branch".
type DownloadRowItem struct {
	OrgID string
	Kind  string
	Name  string
}

type TenantDashboardViewData struct {
	Layout       LayoutData
	CSRFToken    string
	Companies    []CompanyRowItem
	CompanyTotal int
	Users        []UserRowItem
	UserTotal    int
	AgentTotal   int
	Downloads    []DownloadRowItem
	CompanyForm  CompanyFormViewData
	UserForm     UserFormViewData
	ErrorMessage string
}

type CompanyFormViewData struct {
	Name         string
	ErrorMessage string
}

type UserFormViewData struct {
	Username     string
	Email        string
	Role         string
	ErrorMessage string
}

type BranchRowItem struct {
	ID          int
	Name        string
	Location    string
	IPAddresses string
	OrgID       string
	Created     string
	Active      bool
}

type BranchesViewData struct {
	Layout       LayoutData
	CSRFToken    string
	CompanyID    int
	CompanyName  string
	Branches     []BranchRowItem
	Total        int
	BranchForm   BranchFormViewData
	ErrorMessage string
}

type BranchFormViewData struct {
	Name         string
	Location     string
	IPAddresses  string
	ErrorMessage string
}
