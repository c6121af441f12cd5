package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/prismtrack/console/internal/http/viewmodels"
)

// Layout wraps a page body in the console chrome: head, nav bar for the
// signed-in principal, flash toast, footer.
func Layout(data viewmodels.LayoutData, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPage(w)
		p.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		p.text(data.Title)
		p.raw(` - PrismTrack</title><link rel="stylesheet" href="/static/console.css"></head><body class="bg-gray-100 min-h-screen">`)
		renderNav(p, data)
		renderToast(p, data.Toast)
		p.raw(`<main id="content" class="max-w-7xl mx-auto px-4 py-8">`)
		p.component(ctx, body)
		p.raw(`</main></body></html>`)
		return p.err
	})
}

func renderNav(p *page, data viewmodels.LayoutData) {
	p.raw(`<nav class="bg-indigo-600 text-white shadow"><div class="max-w-7xl mx-auto px-4 py-3 flex items-center justify-between"><a href="/" class="text-xl font-bold">PrismTrack</a>`)
	switch data.Principal {
	case "platform_admin":
		p.raw(`<div class="flex items-center gap-4">`)
		navLink(p, "/platform", "Dashboard", data.ActivePath)
		navLink(p, "/platform/tenants/new", "New Tenant", data.ActivePath)
		renderLogout(p, data.CSRFToken)
		p.raw(`</div>`)
	case "tenant":
		p.raw(`<div class="flex items-center gap-4">`)
		navLink(p, "/tenant", "Dashboard", data.ActivePath)
		navLink(p, "/tenant/agents", "Agents", data.ActivePath)
		renderLogout(p, data.CSRFToken)
		p.raw(`</div>`)
	}
	p.raw(`</div></nav>`)
}

func navLink(p *page, href, label, activePath string) {
	p.raw(`<a href="`)
	p.attr(href)
	if href == activePath {
		p.raw(`" class="font-semibold underline">`)
	} else {
		p.raw(`" class="hover:underline">`)
	}
	p.text(label)
	p.raw(`</a>`)
}

func renderLogout(p *page, csrfToken string) {
	p.raw(`<form method="post" action="/logout" class="inline"><input type="hidden" name="_csrf" value="`)
	p.attr(csrfToken)
	p.raw(`"><button type="submit" class="hover:underline">Logout</button></form>`)
}

func renderToast(p *page, toast *viewmodels.ToastViewData) {
	if toast == nil {
		return
	}
	p.raw(`<div class="toast toast-`)
	p.attr(toast.Category)
	p.raw(`" role="status"><strong>`)
	p.text(toast.Title)
	p.raw(`</strong>`)
	if toast.Description != "" {
		p.raw(` <span>`)
		p.text(toast.Description)
		p.raw(`</span>`)
	}
	p.raw(`</div>`)
}

func renderErrorBanner(p *page, message string) {
	if message == "" {
		return
	}
	p.raw(`<div class="bg-red-100 border border-red-400 text-red-700 px-4 py-3 rounded mb-4" role="alert">`)
	p.text(message)
	p.raw(`</div>`)
}
