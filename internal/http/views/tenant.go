package views

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/prismtrack/console/internal/http/viewmodels"
)

func TenantDashboard(data viewmodels.TenantDashboardViewData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPage(w)
		p.raw(`<h2 class="text-3xl font-bold mb-6">Dashboard</h2>`)
		renderErrorBanner(p, data.ErrorMessage)

		p.raw(`<div class="grid grid-cols-2 md:grid-cols-3 gap-4 mb-8">`)
		statCard(p, "Companies", data.CompanyTotal)
		statCard(p, "Users", data.UserTotal)
		p.raw(`<a href="/tenant/agents" class="block">`)
		statCard(p, "Agents", data.AgentTotal)
		p.raw(`</a>`)
		p.raw(`</div>`)

		renderCompaniesSection(p, data)
		renderUsersSection(p, data)
		renderDownloadsSection(p, data.Downloads)
		return p.err
	})
}

func renderCompaniesSection(p *page, data viewmodels.TenantDashboardViewData) {
	p.raw(`<div class="bg-white shadow rounded-lg p-6 mb-6"><h3 class="text-xl font-semibold mb-4">Companies</h3>`)
	if len(data.Companies) == 0 {
		p.raw(`<p class="text-gray-500 mb-4">No companies yet.</p>`)
	} else {
		p.raw(`<table class="min-w-full divide-y divide-gray-200 mb-4"><thead class="bg-gray-50"><tr><th class="px-4 py-2 text-left text-xs font-medium text-gray-500 uppercase">Name</th><th class="px-4 py-2 text-left text-xs font-medium text-gray-500 uppercase">Org ID</th><th class="px-4 py-2 text-left text-xs font-medium text-gray-500 uppercase">Created</th><th class="px-4 py-2 text-left text-xs font-medium text-gray-500 uppercase">Branches</th></tr></thead><tbody class="divide-y divide-gray-200">`)
		for _, company := range data.Companies {
			p.raw(`<tr><td class="px-4 py-2 font-medium">`)
			p.text(company.Name)
			p.raw(`</td><td class="px-4 py-2"><code class="bg-gray-100 px-2 py-1 rounded text-xs">`)
			p.text(company.OrgID)
			p.raw(`</code></td><td class="px-4 py-2 text-sm text-gray-500">`)
			p.text(company.Created)
			p.raw(`</td><td class="px-4 py-2"><a href="/tenant/companies/`)
			p.attr(strconv.Itoa(company.ID))
			p.raw(`/branches" class="text-indigo-600 hover:underline text-sm">Manage branches</a></td></tr>`)
		}
		p.raw(`</tbody></table>`)
	}

	p.raw(`<form method="post" action="/tenant/companies" class="flex gap-2 items-end">`)
	csrfField(p, data.CSRFToken)
	p.raw(`<div class="flex-1"><label class="block text-sm text-gray-700 mb-1">Company Name</label><input type="text" name="name" value="`)
	p.attr(data.CompanyForm.Name)
	p.raw(`" required class="w-full border rounded px-3 py-2"></div><button type="submit" class="bg-indigo-600 text-white px-4 py-2 rounded hover:bg-indigo-700">Add Company</button></form>`)
	renderErrorBanner(p, data.CompanyForm.ErrorMessage)
	p.raw(`</div>`)
}

func renderUsersSection(p *page, data viewmodels.TenantDashboardViewData) {
	p.raw(`<div class="bg-white shadow rounded-lg p-6 mb-6"><h3 class="text-xl font-semibold mb-4">Users</h3>`)
	if len(data.Users) == 0 {
		p.raw(`<p class="text-gray-500 mb-4">No users yet.</p>`)
	} else {
		p.raw(`<table class="min-w-full divide-y divide-gray-200 mb-4"><thead class="bg-gray-50"><tr><th class="px-4 py-2 text-left text-xs font-medium text-gray-500 uppercase">Username</th><th class="px-4 py-2 text-left text-xs font-medium text-gray-500 uppercase">Email</th><th class="px-4 py-2 text-left text-xs font-medium text-gray-500 uppercase">Role</th><th class="px-4 py-2 text-left text-xs font-medium text-gray-500 uppercase">Status</th></tr></thead><tbody class="divide-y divide-gray-200">`)
		for _, user := range data.Users {
			p.raw(`<tr><td class="px-4 py-2 font-medium">`)
			p.text(user.Username)
			p.raw(`</td><td class="px-4 py-2 text-sm text-gray-500">`)
			p.text(user.Email)
			p.raw(`</td><td class="px-4 py-2 text-sm">`)
			p.text(user.Role)
			p.raw(`</td><td class="px-4 py-2">`)
			renderActivePill(p, user.Active)
			p.raw(`</td></tr>`)
		}
		p.raw(`</tbody></table>`)
	}

	p.raw(`<form method="post" action="/tenant/users" class="grid grid-cols-1 md:grid-cols-4 gap-2 items-end">`)
	csrfField(p, data.CSRFToken)
	p.raw(`<div><label class="block text-sm text-gray-700 mb-1">Username</label><input type="text" name="username" value="`)
	p.attr(data.UserForm.Username)
	p.raw(`" required class="w-full border rounded px-3 py-2"></div><div><label class="block text-sm text-gray-700 mb-1">Email</label><input type="email" name="email" value="`)
	p.attr(data.UserForm.Email)
	p.raw(`" required class="w-full border rounded px-3 py-2"></div><div><label class="block text-sm text-gray-700 mb-1">Password</label><input type="password" name="password" required class="w-full border rounded px-3 py-2"></div><div><label class="block text-sm text-gray-700 mb-1">Role</label><select name="role" class="w-full border rounded px-3 py-2">`)
	for _, role := range []string{"viewer", "manager", "admin"} {
		p.raw(`<option value="`)
		p.attr(role)
		if role == data.UserForm.Role {
			p.raw(`" selected>`)
		} else {
			p.raw(`">`)
		}
		p.text(role)
		p.raw(`</option>`)
	}
	p.raw(`</select></div><button type="submit" class="bg-indigo-600 text-white px-4 py-2 rounded hover:bg-indigo-700 md:col-span-4">Add User</button></form>`)
	renderErrorBanner(p, data.UserForm.ErrorMessage)
	p.raw(`</div>`)
}

func renderDownloadsSection(p *page, downloads []viewmodels.DownloadRowItem) {
	p.raw(`<div class="bg-white shadow rounded-lg p-6"><h3 class="text-xl font-semibold mb-4">Agent Downloads</h3><p class="text-sm text-gray-500 mb-4">Download the installer bound to an organization unit. Installed agents report under that org ID.</p>`)
	if len(downloads) == 0 {
		p.raw(`<p class="text-gray-500">No download targets.</p></div>`)
		return
	}
	p.raw(`<table class="min-w-full divide-y divide-gray-200"><thead class="bg-gray-50"><tr><th class="px-4 py-2 text-left text-xs font-medium text-gray-500 uppercase">Org ID</th><th class="px-4 py-2 text-left text-xs font-medium text-gray-500 uppercase">Type</th><th class="px-4 py-2 text-left text-xs font-medium text-gray-500 uppercase">Name</th><th class="px-4 py-2"></th></tr></thead><tbody class="divide-y divide-gray-200">`)
	for _, row := range downloads {
		p.raw(`<tr><td class="px-4 py-2"><code class="bg-gray-100 px-2 py-1 rounded text-xs">`)
		p.text(row.OrgID)
		p.raw(`</code></td><td class="px-4 py-2 text-sm">`)
		p.text(HumanizeOrgType(row.Kind))
		p.raw(`</td><td class="px-4 py-2 font-medium">`)
		p.text(row.Name)
		p.raw(`</td><td class="px-4 py-2 text-right"><a href="/tenant/downloads/`)
		p.attr(row.OrgID)
		p.raw(`" class="bg-indigo-50 text-indigo-600 px-3 py-1 rounded hover:bg-indigo-100 text-sm font-medium">Download MSI</a></td></tr>`)
	}
	p.raw(`</tbody></table></div>`)
}

func Branches(data viewmodels.BranchesViewData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPage(w)
		p.raw(`<div class="flex items-center justify-between mb-6"><h2 class="text-3xl font-bold">Branches of `)
		p.text(data.CompanyName)
		p.raw(`</h2><a href="/tenant" class="text-indigo-600 hover:underline">&larr; Dashboard</a></div>`)
		renderErrorBanner(p, data.ErrorMessage)

		p.raw(`<div class="bg-white shadow rounded-lg p-6 mb-6">`)
		if len(data.Branches) == 0 {
			p.raw(`<p class="text-gray-500">No branches yet.</p>`)
		} else {
			p.raw(`<table class="min-w-full divide-y divide-gray-200"><thead class="bg-gray-50"><tr><th class="px-4 py-2 text-left text-xs font-medium text-gray-500 uppercase">Name</th><th class="px-4 py-2 text-left text-xs font-medium text-gray-500 uppercase">Location</th><th class="px-4 py-2 text-left text-xs font-medium text-gray-500 uppercase">IP Addresses</th><th class="px-4 py-2 text-left text-xs font-medium text-gray-500 uppercase">Org ID</th><th class="px-4 py-2 text-left text-xs font-medium text-gray-500 uppercase">Status</th></tr></thead><tbody class="divide-y divide-gray-200">`)
			for _, branch := range data.Branches {
				p.raw(`<tr><td class="px-4 py-2 font-medium">`)
				p.text(branch.Name)
				p.raw(`</td><td class="px-4 py-2 text-sm text-gray-500">`)
				p.text(viewmodels.DisplayOrDash(branch.Location))
				p.raw(`</td><td class="px-4 py-2 text-sm text-gray-500">`)
				p.text(viewmodels.DisplayOrDash(branch.IPAddresses))
				p.raw(`</td><td class="px-4 py-2"><code class="bg-gray-100 px-2 py-1 rounded text-xs">`)
				p.text(branch.OrgID)
				p.raw(`</code></td><td class="px-4 py-2">`)
				renderActivePill(p, branch.Active)
				p.raw(`</td></tr>`)
			}
			p.raw(`</tbody></table>`)
		}
		p.raw(`</div>`)

		p.raw(`<div class="bg-white shadow rounded-lg p-6"><h3 class="text-xl font-semibold mb-4">Add Branch</h3><form method="post" action="/tenant/companies/`)
		p.attr(strconv.Itoa(data.CompanyID))
		p.raw(`/branches">`)
		csrfField(p, data.CSRFToken)
		formField(p, "Branch Name", "name", "text", data.BranchForm.Name, true)
		formField(p, "Location", "location", "text", data.BranchForm.Location, false)
		formField(p, "IP Addresses", "ip_addresses", "text", data.BranchForm.IPAddresses, false)
		p.raw(`<button type="submit" class="bg-indigo-600 text-white px-4 py-2 rounded hover:bg-indigo-700">Add Branch</button></form>`)
		renderErrorBanner(p, data.BranchForm.ErrorMessage)
		p.raw(`</div>`)
		return p.err
	})
}

func csrfField(p *page, token string) {
	p.raw(`<input type="hidden" name="_csrf" value="`)
	p.attr(token)
	p.raw(`">`)
}
