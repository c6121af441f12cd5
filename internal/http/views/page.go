package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// page accumulates markup for one component render. Static markup enters
// through raw; anything dynamic must go through text or attr, which escape.
// The first write error sticks and short-circuits the rest.
type page struct {
	w   io.Writer
	err error
}

func newPage(w io.Writer) *page {
	return &page{w: w}
}

func (p *page) raw(markup string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, markup)
}

func (p *page) text(s string) {
	p.raw(templ.EscapeString(s))
}

func (p *page) attr(s string) {
	p.raw(templ.EscapeString(s))
}

func (p *page) component(ctx context.Context, c templ.Component) {
	if p.err != nil || c == nil {
		return
	}
	p.err = c.Render(ctx, p.w)
}

func (p *page) when(cond bool, markup string) {
	if cond {
		p.raw(markup)
	}
}
