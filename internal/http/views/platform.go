package views

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/prismtrack/console/internal/http/viewmodels"
)

func PlatformDashboard(data viewmodels.PlatformDashboardViewData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPage(w)
		p.raw(`<div class="flex items-center justify-between mb-6"><h2 class="text-3xl font-bold">Tenants</h2><a href="/platform/tenants/new" class="bg-indigo-600 text-white px-4 py-2 rounded hover:bg-indigo-700">Create Tenant</a></div>`)

		if len(data.Tenants) == 0 {
			p.raw(`<div class="bg-white shadow rounded-lg p-8 text-center"><p class="text-gray-500 text-lg">No tenants yet.</p><p class="text-gray-400 mt-2">Create the first tenant to get started.</p></div>`)
			return p.err
		}

		p.raw(`<div class="bg-white shadow rounded-lg overflow-hidden"><table class="min-w-full divide-y divide-gray-200"><thead class="bg-gray-50"><tr><th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Name</th><th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Admin Email</th><th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Org ID</th><th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Created</th><th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Status</th></tr></thead><tbody class="divide-y divide-gray-200">`)
		for _, tenant := range data.Tenants {
			p.raw(`<tr class="hover:bg-gray-50"><td class="px-6 py-4"><a href="/platform/tenants/`)
			p.attr(strconv.Itoa(tenant.ID))
			p.raw(`" class="text-indigo-600 hover:underline font-medium">`)
			p.text(tenant.Name)
			p.raw(`</a></td><td class="px-6 py-4 text-sm text-gray-500">`)
			p.text(tenant.AdminEmail)
			p.raw(`</td><td class="px-6 py-4"><code class="bg-gray-100 px-2 py-1 rounded text-xs">`)
			p.text(tenant.OrgID)
			p.raw(`</code></td><td class="px-6 py-4 text-sm text-gray-500">`)
			p.text(tenant.Created)
			p.raw(`</td><td class="px-6 py-4">`)
			renderActivePill(p, tenant.Active)
			p.raw(`</td></tr>`)
		}
		p.raw(`</tbody></table></div>`)
		renderPagination(p, data.Pagination)
		return p.err
	})
}

// TenantForm renders the provisioning form, re-populated on failure.
func TenantForm(data viewmodels.TenantFormViewData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPage(w)
		p.raw(`<div class="max-w-xl mx-auto"><h2 class="text-3xl font-bold mb-6">Create Tenant</h2>`)
		renderErrorBanner(p, data.ErrorMessage)
		p.raw(`<form method="post" action="/platform/tenants" class="bg-white shadow rounded-lg p-6"><input type="hidden" name="_csrf" value="`)
		p.attr(data.CSRFToken)
		p.raw(`">`)
		formField(p, "Tenant Name", "name", "text", data.Name, true)
		formField(p, "Admin Email", "admin_email", "email", data.AdminEmail, true)
		formField(p, "Admin Password", "admin_password", "password", "", true)
		p.raw(`<h3 class="text-lg font-semibold mt-6 mb-2">Client Details <span class="text-sm text-gray-400 font-normal">(optional)</span></h3>`)
		formField(p, "Company Name", "company_name", "text", data.CompanyName, false)
		formField(p, "Address", "address", "text", data.Address, false)
		formField(p, "Phone", "phone", "text", data.Phone, false)
		formField(p, "Industry", "industry_type", "text", data.IndustryType, false)
		p.raw(`<button type="submit" class="w-full bg-indigo-600 text-white py-2 rounded hover:bg-indigo-700 mt-4">Create Tenant</button></form></div>`)
		return p.err
	})
}

// Client360 renders the per-tenant drill-down: stat cards, the tenant
// record including its API key, and the update and deactivate forms.
func Client360(data viewmodels.Client360ViewData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPage(w)
		p.raw(`<div class="flex items-center justify-between mb-6"><h2 class="text-3xl font-bold">`)
		p.text(data.Name)
		p.raw(`</h2><a href="/platform" class="text-indigo-600 hover:underline">&larr; All tenants</a></div>`)
		renderErrorBanner(p, data.ErrorMessage)

		p.raw(`<div class="grid grid-cols-2 md:grid-cols-4 gap-4 mb-6">`)
		statCard(p, "Companies", data.Companies)
		statCard(p, "Branches", data.Branches)
		statCard(p, "Users", data.Users)
		statCard(p, "Agents", data.Agents)
		p.raw(`</div>`)

		p.raw(`<div class="bg-white shadow rounded-lg p-6 mb-6"><h3 class="text-xl font-semibold mb-4">Tenant Record</h3><dl class="space-y-2 text-sm">`)
		recordRow(p, "Org ID", data.OrgID, true)
		recordRow(p, "Admin Email", data.AdminEmail, false)
		recordRow(p, "API Key", data.APIKey, true)
		recordRow(p, "Created", data.Created, false)
		p.raw(`<div class="flex"><dt class="text-gray-500 w-32">Status:</dt><dd>`)
		renderActivePill(p, data.Active)
		p.raw(`</dd></div></dl></div>`)

		p.raw(`<div class="bg-white shadow rounded-lg p-6 mb-6"><h3 class="text-xl font-semibold mb-4">Update Tenant</h3><form method="post" action="/platform/tenants/`)
		p.attr(strconv.Itoa(data.TenantID))
		p.raw(`"><input type="hidden" name="_csrf" value="`)
		p.attr(data.CSRFToken)
		p.raw(`">`)
		formField(p, "Tenant Name", "name", "text", data.Name, true)
		formField(p, "Admin Email", "admin_email", "email", data.AdminEmail, true)
		p.raw(`<button type="submit" class="bg-indigo-600 text-white px-4 py-2 rounded hover:bg-indigo-700">Save Changes</button></form></div>`)

		if data.Active {
			p.raw(`<div class="bg-white shadow rounded-lg p-6 border border-red-200"><h3 class="text-xl font-semibold mb-2 text-red-700">Deactivate Tenant</h3><p class="text-sm text-gray-500 mb-4">The tenant keeps its data but all logins stop working.</p><form method="post" action="/platform/tenants/`)
			p.attr(strconv.Itoa(data.TenantID))
			p.raw(`/delete" onsubmit="return confirm('Deactivate this tenant?')"><input type="hidden" name="_csrf" value="`)
			p.attr(data.CSRFToken)
			p.raw(`"><button type="submit" class="bg-red-600 text-white px-4 py-2 rounded hover:bg-red-700">Deactivate</button></form></div>`)
		}
		return p.err
	})
}

func statCard(p *page, label string, value int) {
	p.raw(`<div class="bg-white shadow rounded-lg p-4 text-center"><p class="text-3xl font-bold text-indigo-600">`)
	p.text(strconv.Itoa(value))
	p.raw(`</p><p class="text-sm text-gray-500">`)
	p.text(label)
	p.raw(`</p></div>`)
}

func recordRow(p *page, label, value string, code bool) {
	p.raw(`<div class="flex"><dt class="text-gray-500 w-32">`)
	p.text(label)
	p.raw(`:</dt><dd>`)
	if code {
		p.raw(`<code class="bg-gray-100 px-2 py-1 rounded text-xs">`)
		p.text(value)
		p.raw(`</code>`)
	} else {
		p.text(value)
	}
	p.raw(`</dd></div>`)
}

func renderActivePill(p *page, active bool) {
	if active {
		p.raw(`<span class="inline-flex px-2 py-1 rounded-full text-xs font-medium bg-green-100 text-green-800">Active</span>`)
	} else {
		p.raw(`<span class="inline-flex px-2 py-1 rounded-full text-xs font-medium bg-gray-100 text-gray-800">Inactive</span>`)
	}
}

func formField(p *page, label, name, typ, value string, required bool) {
	p.raw(`<label class="block text-sm text-gray-700 mb-1">`)
	p.text(label)
	p.raw(`</label><input type="`)
	p.attr(typ)
	p.raw(`" name="`)
	p.attr(name)
	p.raw(`" value="`)
	p.attr(value)
	p.raw(`"`)
	p.when(required, ` required`)
	p.raw(` class="w-full border rounded px-3 py-2 mb-4">`)
}

func renderPagination(p *page, pg viewmodels.PaginationViewData) {
	if pg.TotalPages <= 1 {
		return
	}
	p.raw(`<div class="flex items-center justify-between mt-4 text-sm text-gray-500"><span>Showing `)
	p.text(strconv.Itoa(pg.ShowingFrom))
	p.raw(` to `)
	p.text(strconv.Itoa(pg.ShowingTo))
	p.raw(` of `)
	p.text(strconv.Itoa(pg.Total))
	p.raw(`</span><div class="flex gap-2">`)
	if pg.PrevHref != "" {
		p.raw(`<a href="`)
		p.attr(pg.PrevHref)
		p.raw(`" class="px-3 py-1 border rounded hover:bg-gray-50">Previous</a>`)
	}
	if pg.NextHref != "" {
		p.raw(`<a href="`)
		p.attr(pg.NextHref)
		p.raw(`" class="px-3 py-1 border rounded hover:bg-gray-50">Next</a>`)
	}
	p.raw(`</div></div>`)
}
