// Package templates holds the templ components of the dashboard.
package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// page writes HTML and keeps the first write error.
type page struct {
	w   io.Writer
	err error
}

func (p *page) raw(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

// text writes s escaped.
func (p *page) text(s string) {
	p.raw(templ.EscapeString(s))
}

func (p *page) num(n int) {
	p.raw(strconv.Itoa(n))
}

// attr writes ` name="value"` with the value escaped.
func (p *page) attr(name, value string) {
	p.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// flag writes a boolean attribute when on is true.
func (p *page) flag(name string, on bool) {
	if on {
		p.raw(" " + name)
	}
}

// link writes an anchor; href is expected to be built by the caller from
// trusted parts or escaped values.
func (p *page) link(href, label string) {
	p.raw("<a")
	p.attr("href", href)
	p.raw(">")
	p.text(label)
	p.raw("</a>")
}

// render runs a child component into the same writer.
func (p *page) render(ctx context.Context, c templ.Component) {
	if p.err != nil {
		return
	}
	p.err = c.Render(ctx, p.w)
}
