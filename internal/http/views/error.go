package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// ErrorPage renders the generic failure page. Error text never reaches the
// browser; the request ID is the operator's handle into the logs.
func ErrorPage(message, requestID, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPage(w)
		p.raw(`<div class="max-w-lg mx-auto mt-16 bg-white shadow rounded-lg p-8 text-center"><h2 class="text-2xl font-bold mb-4">`)
		p.text(message)
		p.raw(`</h2>`)
		if requestID != "" {
			p.raw(`<p class="text-sm text-gray-500">Reference: <code class="bg-gray-100 px-2 py-1 rounded text-xs">`)
			p.text(requestID)
			p.raw(`</code></p>`)
		}
		if code != "" {
			p.raw(`<p class="text-sm text-gray-400 mt-2">Code: `)
			p.text(code)
			p.raw(`</p>`)
		}
		p.raw(`<a href="/" class="inline-block mt-6 text-indigo-600 hover:underline">Back to home</a></div>`)
		return p.err
	})
}

// ErrorBannerPage renders a page whose only content is the inline failure
// banner, used when a full-page load could not fetch its data.
func ErrorBannerPage(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPage(w)
		renderErrorBanner(p, message)
		return p.err
	})
}

// NotFoundPage renders the 404 page.
func NotFoundPage() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPage(w)
		p.raw(`<div class="max-w-lg mx-auto mt-16 bg-white shadow rounded-lg p-8 text-center"><h2 class="text-2xl font-bold mb-4">Page not found</h2><p class="text-gray-500">The page you are looking for does not exist.</p><a href="/" class="inline-block mt-6 text-indigo-600 hover:underline">Back to home</a></div>`)
		return p.err
	})
}
