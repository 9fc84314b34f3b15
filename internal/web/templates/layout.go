package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const styles = `body{font-family:system-ui,sans-serif;margin:0;background:#f7f7f8;color:#1f2328}
main{max-width:1200px;margin:0 auto;padding:1.5rem}
section{background:#fff;border:1px solid #d0d7de;border-radius:6px;padding:1rem;margin-bottom:1rem}
h1{font-size:1.5rem}h2{font-size:1.1rem;margin-top:0}
table{border-collapse:collapse;width:100%;font-size:.9rem}
th,td{border-bottom:1px solid #eaeef2;padding:.3rem .5rem;text-align:left;vertical-align:top}
.kpis{display:flex;gap:1rem;flex-wrap:wrap}.kpi{flex:1;min-width:8rem}.kpi strong{display:block;font-size:1.4rem}
.grid{display:grid;grid-template-columns:repeat(auto-fit,minmax(14rem,1fr));gap:.75rem}
.alert{border-radius:6px;padding:.75rem 1rem;margin-bottom:1rem}
.alert-error{background:#ffebe9;border:1px solid #ff8182}
.alert-warn{background:#fff8c5;border:1px solid #d4a72c}
.muted{color:#656d76;font-size:.85rem}
textarea{width:100%;min-height:4rem}`

// Layout wraps body in the page shell.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &page{w: w}
		p.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		p.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		p.raw("<title>")
		p.text(title)
		p.raw("</title><style>" + styles + "</style></head><body><main>")
		p.raw("<h1>")
		p.text(title)
		p.raw("</h1>")
		p.render(ctx, body)
		p.raw("</main></body></html>")
		return p.err
	})
}

// ErrorAlert renders an error fragment with the support code.
func ErrorAlert(message, action, code string) templ.Component {
	return alert("alert-error", message, action, code)
}

// WarningAlert renders a non-fatal notice, such as an incomplete mapping.
func WarningAlert(message, action string) templ.Component {
	return alert("alert-warn", message, action, "")
}

func alert(class, message, action, code string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &page{w: w}
		p.raw(`<div role="alert"`)
		p.attr("class", "alert "+class)
		p.raw("><strong>")
		p.text(message)
		p.raw("</strong>")
		if action != "" {
			p.raw("<div>")
			p.text(action)
			p.raw("</div>")
		}
		if code != "" {
			p.raw(`<div class="muted">Code: `)
			p.text(code)
			p.raw("</div>")
		}
		p.raw("</div>")
		return p.err
	})
}

// ErrorPage renders a full page around ErrorAlert.
func ErrorPage(message, action, code string) templ.Component {
	return Layout("Prospect Explorer", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &page{w: w}
		p.render(ctx, ErrorAlert(message, action, code))
		p.link("/", "Back to dashboard")
		return p.err
	}))
}
