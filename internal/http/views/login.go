package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/prismtrack/console/internal/http/viewmodels"
)

// LoginPage renders the landing page with both credential forms. The form
// matching data.Mode keeps the submitted identity and shows any error.
func LoginPage(data viewmodels.LoginViewData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPage(w)
		p.raw(`<div class="max-w-md mx-auto mt-16"><h1 class="text-3xl font-bold text-center mb-2">PrismTrack</h1><p class="text-gray-500 text-center mb-8">Workforce monitoring console</p>`)
		renderToast(p, data.Toast)

		renderLoginForm(p, loginFormSpec{
			action:        "/login/platform",
			heading:       "Platform Admin",
			identityLabel: "Username",
			identityName:  "username",
			identityType:  "text",
			active:        data.Mode == "platform",
			data:          data,
		})
		renderLoginForm(p, loginFormSpec{
			action:        "/login/tenant",
			heading:       "Tenant Admin",
			identityLabel: "Email",
			identityName:  "email",
			identityType:  "email",
			active:        data.Mode == "tenant",
			data:          data,
		})

		p.raw(`</div>`)
		return p.err
	})
}

type loginFormSpec struct {
	action        string
	heading       string
	identityLabel string
	identityName  string
	identityType  string
	active        bool
	data          viewmodels.LoginViewData
}

func renderLoginForm(p *page, spec loginFormSpec) {
	p.raw(`<div class="bg-white shadow rounded-lg p-6 mb-6"><h2 class="text-xl font-semibold mb-4">`)
	p.text(spec.heading)
	p.raw(`</h2>`)
	if spec.active {
		renderErrorBanner(p, spec.data.ErrorMessage)
	}
	p.raw(`<form method="post" action="`)
	p.attr(spec.action)
	p.raw(`"><input type="hidden" name="_csrf" value="`)
	p.attr(spec.data.CSRFToken)
	p.raw(`">`)
	if spec.data.Next != "" {
		p.raw(`<input type="hidden" name="next" value="`)
		p.attr(spec.data.Next)
		p.raw(`">`)
	}
	p.raw(`<label class="block text-sm text-gray-700 mb-1">`)
	p.text(spec.identityLabel)
	p.raw(`</label><input type="`)
	p.attr(spec.identityType)
	p.raw(`" name="`)
	p.attr(spec.identityName)
	p.raw(`" value="`)
	if spec.active {
		p.attr(spec.data.Identity)
	}
	p.raw(`" required class="w-full border rounded px-3 py-2 mb-4"><label class="block text-sm text-gray-700 mb-1">Password</label><input type="password" name="password" required class="w-full border rounded px-3 py-2 mb-4"><button type="submit" class="w-full bg-indigo-600 text-white py-2 rounded hover:bg-indigo-700">Sign In</button></form></div>`)
}
