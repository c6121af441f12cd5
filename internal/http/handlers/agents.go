package handlers

import (
	"time"

	"github.com/labstack/echo/v5"
	"golang.org/x/sync/errgroup"

	"github.com/prismtrack/console/internal/backend"
	"github.com/prismtrack/console/internal/http/viewmodels"
	"github.com/prismtrack/console/internal/http/views"
)

// HandleAgentsGet renders the paginated agent roster.
func (h *Handlers) HandleAgentsGet(c *echo.Context) error {
	sess := h.requestSession(c)
	skip, limit := h.parseListParams(c)

	list, err := h.API.ListAgents(c.Request().Context(), sess, skip, limit)
	if expired, expErr := h.handleExpired(c, err); expired {
		return expErr
	}
	if persistErr := h.persistSession(c, sess); persistErr != nil {
		return persistErr
	}
	layout := h.LayoutData(c, "Agents")
	if err != nil {
		return h.RenderPage(c, layout, views.ErrorBannerPage("Failed to load agents: "+backend.UserMessage(err)))
	}

	now := time.Now()
	data := viewmodels.AgentsViewData{
		Layout: layout,
		Total:  list.Total,
	}
	for _, agent := range list.Agents {
		data.Agents = append(data.Agents, agentCard(agent, now))
	}
	data.Pagination = buildPagination("/tenant/agents", skip, limit, len(list.Agents), list.Total)
	return h.RenderPage(c, layout, views.AgentsGrid(data))
}

func agentCard(agent backend.Agent, now time.Time) viewmodels.AgentCardItem {
	return viewmodels.AgentCardItem{
		ID:          agent.ID,
		MachineName: agent.MachineName,
		OrgID:       agent.OrgID,
		OrgType:     agent.OrgType,
		Status:      agent.Status,
		Online:      viewmodels.AgentOnline(agent.Status, agent.LastSeen, now),
		LastSeen:    viewmodels.RelativeLastSeen(agent.LastSeen, now),
		Registered:  viewmodels.FormatDate(agent.RegisteredAt),
	}
}

// HandleAgentDetailsGet renders one agent with its recent activity. The
// agent record and the telemetry page load concurrently.
func (h *Handlers) HandleAgentDetailsGet(c *echo.Context) error {
	agentID, err := pathID(c, "id")
	if err != nil {
		return h.RenderNotFound(c)
	}
	sess := h.requestSession(c)
	skip, limit := h.parseListParams(c)

	var (
		agent     *backend.Agent
		telemetry *backend.TelemetryList
	)
	g, gctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		var err error
		agent, err = h.API.GetAgent(gctx, sess, agentID)
		return err
	})
	g.Go(func() error {
		var err error
		telemetry, err = h.API.ListTelemetry(gctx, sess, agentID, skip, limit)
		return err
	})
	err = g.Wait()

	if expired, expErr := h.handleExpired(c, err); expired {
		return expErr
	}
	if persistErr := h.persistSession(c, sess); persistErr != nil {
		return persistErr
	}
	layout := h.LayoutData(c, "Agent Details")
	if err != nil {
		if isNotFound(err) {
			return h.RenderNotFound(c)
		}
		return h.RenderPage(c, layout, views.ErrorBannerPage("Failed to load agent: "+backend.UserMessage(err)))
	}

	now := time.Now()
	data := viewmodels.AgentDetailsViewData{
		Layout:         layout,
		Agent:          agentCard(*agent, now),
		HardwareUUID:   agent.HardwareUUID,
		Stats:          viewmodels.SummarizeActivity(telemetry.Telemetry),
		TelemetryTotal: telemetry.Total,
	}
	for _, record := range telemetry.Telemetry {
		data.Telemetry = append(data.Telemetry, viewmodels.TelemetryRowItem{
			Timestamp:   viewmodels.FormatDateTime(record.Timestamp),
			WindowTitle: record.WindowTitle,
			ProcessName: record.ProcessName,
			Idle:        record.IsIdle,
		})
	}
	return h.RenderPage(c, layout, views.AgentDetails(data))
}
