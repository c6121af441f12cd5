package views

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/prismtrack/console/internal/http/viewmodels"
)

func AgentsGrid(data viewmodels.AgentsViewData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPage(w)
		p.raw(`<div class="flex items-center justify-between mb-6"><h2 class="text-3xl font-bold">Agents</h2><span class="text-gray-500">`)
		p.text(strconv.Itoa(data.Total))
		p.raw(` total</span></div>`)

		if len(data.Agents) == 0 {
			p.raw(`<div class="bg-white shadow rounded-lg p-8 text-center"><p class="text-gray-500 text-lg">No agents connected yet.</p><p class="text-gray-400 mt-2">Download and install agents to start tracking activity.</p></div>`)
			return p.err
		}

		p.raw(`<div class="grid grid-cols-1 md:grid-cols-2 lg:grid-cols-3 gap-6">`)
		for _, agent := range data.Agents {
			renderAgentCard(p, agent)
		}
		p.raw(`</div>`)
		renderPagination(p, data.Pagination)
		return p.err
	})
}

func renderAgentCard(p *page, agent viewmodels.AgentCardItem) {
	p.raw(`<div class="bg-white shadow rounded-lg p-6 hover:shadow-lg transition-shadow"><div class="flex items-start justify-between mb-4"><div class="flex-1"><h3 class="text-lg font-semibold text-gray-900 mb-1">`)
	p.text(agent.MachineName)
	p.raw(`</h3><p class="text-sm text-gray-500">Org ID: <code class="bg-gray-100 px-2 py-1 rounded text-xs">`)
	p.text(agent.OrgID)
	p.raw(`</code></p><p class="text-sm text-gray-500 mt-1">Type: `)
	p.text(agent.OrgType)
	p.raw(`</p></div><div class="ml-4">`)
	renderStatusChip(p, agent)
	p.raw(`</div></div><div class="border-t pt-4 mt-4"><div class="flex justify-between text-sm"><span class="text-gray-500">Last Seen:</span><span class="text-gray-900 font-medium">`)
	p.text(agent.LastSeen)
	p.raw(`</span></div><div class="flex justify-between text-sm mt-2"><span class="text-gray-500">Registered:</span><span class="text-gray-900">`)
	p.text(agent.Registered)
	p.raw(`</span></div></div><div class="mt-4 pt-4 border-t"><a href="/tenant/agents/`)
	p.attr(strconv.Itoa(agent.ID))
	p.raw(`" class="block w-full text-center bg-indigo-50 text-indigo-600 px-4 py-2 rounded hover:bg-indigo-100 font-medium">View Details &rarr;</a></div></div>`)
}

func renderStatusChip(p *page, agent viewmodels.AgentCardItem) {
	if agent.Online {
		p.raw(`<span class="inline-flex items-center px-3 py-1 rounded-full text-xs font-medium bg-green-100 text-green-800"><span class="w-2 h-2 rounded-full mr-2 bg-green-500"></span>`)
	} else {
		p.raw(`<span class="inline-flex items-center px-3 py-1 rounded-full text-xs font-medium bg-gray-100 text-gray-800"><span class="w-2 h-2 rounded-full mr-2 bg-gray-400"></span>`)
	}
	p.text(agent.Status)
	p.raw(`</span>`)
}

func AgentDetails(data viewmodels.AgentDetailsViewData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPage(w)
		p.raw(`<div class="flex items-center justify-between mb-6"><h2 class="text-3xl font-bold">Agent Details</h2><a href="/tenant/agents" class="text-indigo-600 hover:underline">&larr; All agents</a></div>`)

		p.raw(`<div class="bg-white shadow rounded-lg p-6 mb-6"><div class="flex items-start justify-between mb-4"><div><h3 class="text-2xl font-semibold text-gray-900 mb-2">`)
		p.text(data.Agent.MachineName)
		p.raw(`</h3><dl class="space-y-2 text-sm">`)
		recordRow(p, "Org ID", data.Agent.OrgID, true)
		recordRow(p, "Org Type", data.Agent.OrgType, false)
		recordRow(p, "Hardware UUID", data.HardwareUUID, true)
		recordRow(p, "Last Seen", data.Agent.LastSeen, false)
		recordRow(p, "Registered", data.Agent.Registered, false)
		p.raw(`</dl></div><div class="ml-4">`)
		renderStatusChip(p, data.Agent)
		p.raw(`</div></div></div>`)

		p.raw(`<div class="grid grid-cols-2 md:grid-cols-4 gap-4 mb-6">`)
		statCard(p, "Records", data.Stats.TotalRecords)
		statCard(p, "Active", data.Stats.ActiveRecords)
		statCard(p, "Idle", data.Stats.IdleRecords)
		statCard(p, "Processes", len(data.Stats.UniqueProcesses))
		p.raw(`</div>`)

		p.raw(`<div class="bg-white shadow rounded-lg p-6"><h3 class="text-xl font-semibold mb-4">Recent Activity (`)
		p.text(strconv.Itoa(data.TelemetryTotal))
		p.raw(` total records)</h3>`)
		if len(data.Telemetry) == 0 {
			p.raw(`<div class="text-center text-gray-400 py-8"><p>No telemetry data available yet.</p></div></div>`)
			return p.err
		}
		p.raw(`<table class="min-w-full divide-y divide-gray-200"><thead class="bg-gray-50"><tr><th class="px-4 py-2 text-left text-xs font-medium text-gray-500 uppercase">Time</th><th class="px-4 py-2 text-left text-xs font-medium text-gray-500 uppercase">Window</th><th class="px-4 py-2 text-left text-xs font-medium text-gray-500 uppercase">Process</th><th class="px-4 py-2 text-left text-xs font-medium text-gray-500 uppercase">State</th></tr></thead><tbody class="divide-y divide-gray-200">`)
		for _, row := range data.Telemetry {
			p.raw(`<tr><td class="px-4 py-2 text-sm text-gray-500 whitespace-nowrap">`)
			p.text(row.Timestamp)
			p.raw(`</td><td class="px-4 py-2 text-sm">`)
			if row.WindowTitle == "" {
				p.raw(`<span class="text-gray-400">N/A</span>`)
			} else {
				p.text(viewmodels.TruncateTitle(row.WindowTitle))
			}
			p.raw(`</td><td class="px-4 py-2 text-sm">`)
			p.text(viewmodels.DisplayOrDash(row.ProcessName))
			p.raw(`</td><td class="px-4 py-2">`)
			if row.Idle {
				p.raw(`<span class="inline-flex px-2 py-1 rounded-full text-xs font-medium bg-yellow-100 text-yellow-800">Idle</span>`)
			} else {
				p.raw(`<span class="inline-flex px-2 py-1 rounded-full text-xs font-medium bg-green-100 text-green-800">Active</span>`)
			}
			p.raw(`</td></tr>`)
		}
		p.raw(`</tbody></table></div>`)
		return p.err
	})
}
