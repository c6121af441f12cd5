package viewmodels

type AgentCardItem struct {
	ID          int
	MachineName string
	OrgID       string
	OrgType     string
	Status      string
	Online      bool
	LastSeen    string
	Registered  string
}

type AgentsViewData struct {
	Layout     LayoutData
	Agents     []AgentCardItem
	Total      int
	Pagination PaginationViewData
}

type TelemetryRowItem struct {
	Timestamp   string
	WindowTitle string
	ProcessName string
	Idle        bool
}

type AgentDetailsViewData struct {
	Layout         LayoutData
	Agent          AgentCardItem
	HardwareUUID   string
	Stats          ActivityStats
	Telemetry      []TelemetryRowItem
	TelemetryTotal int
}
