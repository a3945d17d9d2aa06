// Package templates renders the grid's HTML as templ components.
package templates

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/condenser/internal/core"
)

// GridData is everything the grid page renders.
type GridData struct {
	Title         string
	Columns       []string
	Rows          []core.PageRow
	Page          int
	PageCount     int
	Total         int
	HasNext       bool
	HasPrev       bool
	HeaderChecked bool
	Selectable    bool
	Filter        string
	SortColumn    int // -1 when unsorted
	SortDirection core.SortDirection
}

// GridPage renders the full HTML document.
func GridPage(d GridData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`)
		p.text(d.Title)
		p.raw(`</title><style>` + gridCSS + `</style></head><body>`)
		p.raw(`<h1>`)
		p.text(d.Title)
		p.raw(`</h1>`)
		if p.err != nil {
			return p.err
		}
		if err := GridPartial(d).Render(ctx, w); err != nil {
			return err
		}
		p.raw(`<script>` + gridJS + `</script></body></html>`)
		return p.err
	})
}

// GridPartial renders the filter form, table and pager.
func GridPartial(d GridData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &printer{w: w}

		p.raw(`<div id="grid">`)
		p.raw(`<form method="get" action="/" class="filter"><input type="search" name="q" placeholder="Filter" value="`)
		p.text(d.Filter)
		p.raw(`"><button type="submit">Filter</button></form>`)

		p.raw(`<table><thead><tr>`)
		if d.Selectable {
			p.raw(`<th><input type="checkbox" id="select-all"`)
			if d.HeaderChecked {
				p.raw(` checked`)
			}
			p.raw(`></th>`)
		}
		for i, name := range d.Columns {
			dir := core.SortAsc
			marker := ""
			if i == d.SortColumn {
				if d.SortDirection == core.SortAsc {
					dir = core.SortDesc
					marker = " ▲"
				} else {
					marker = " ▼"
				}
			}
			p.raw(`<th><a href="/?sort=` + strconv.Itoa(i) + `&amp;dir=` + string(dir) + `">`)
			p.text(name + marker)
			p.raw(`</a></th>`)
		}
		p.raw(`</tr></thead><tbody>`)

		if len(d.Rows) == 0 {
			span := len(d.Columns)
			if d.Selectable {
				span++
			}
			p.raw(`<tr><td class="empty" colspan="` + strconv.Itoa(span) + `">No rows</td></tr>`)
		}
		for _, row := range d.Rows {
			p.raw(`<tr>`)
			if d.Selectable {
				p.raw(`<td><input type="checkbox" class="row-toggle" data-id="` + row.ID.String() + `"`)
				if row.Selected {
					p.raw(` checked`)
				}
				p.raw(`></td>`)
			}
			for _, cell := range row.Cells {
				p.raw(`<td>`)
				p.text(cell)
				p.raw(`</td>`)
			}
			p.raw(`</tr>`)
		}
		p.raw(`</tbody></table>`)

		p.raw(`<nav class="pager"><button data-action="/api/prev"`)
		if !d.HasPrev {
			p.raw(` disabled`)
		}
		p.raw(`>Prev</button>`)
		p.raw(fmt.Sprintf(`<span>Page %d of %d (%d rows)</span>`, d.Page+1, d.PageCount, d.Total))
		p.raw(`<button data-action="/api/next"`)
		if !d.HasNext {
			p.raw(` disabled`)
		}
		p.raw(`>Next</button>`)
		if d.Selectable {
			p.raw(`<button data-action="/api/delete" class="danger">Delete selected</button>`)
		}
		p.raw(`</nav></div>`)

		return p.err
	})
}

// ErrorAlert renders an error fragment with an optional suggested action.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.raw(`<div class="alert" role="alert"><strong>`)
		p.text(message)
		p.raw(`</strong>`)
		if action != "" {
			p.raw(`<p>`)
			p.text(action)
			p.raw(`</p>`)
		}
		p.raw(`<small>`)
		p.text(code)
		p.raw(`</small></div>`)
		return p.err
	})
}

// printer writes to w until the first error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) raw(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *printer) text(s string) {
	p.raw(templ.EscapeString(s))
}

const gridCSS = `body{font-family:sans-serif;margin:2rem}table{border-collapse:collapse}` +
	`th,td{border:1px solid #ccc;padding:.3rem .6rem}th a{color:inherit}` +
	`.pager{margin-top:1rem;display:flex;gap:1rem;align-items:center}` +
	`.danger{color:#b00}.empty{color:#888;text-align:center}.alert{border:1px solid #b00;padding:.5rem}`

const gridJS = `
function post(url, body) {
  return fetch(url, {method: "POST", headers: {"Content-Type": "application/json"},
    body: body ? JSON.stringify(body) : null}).then(function () { location.href = "/"; });
}
var all = document.getElementById("select-all");
if (all) { all.addEventListener("change", function () { post("/api/select-all", {checked: all.checked}); }); }
document.querySelectorAll(".row-toggle").forEach(function (cb) {
  cb.addEventListener("change", function () { post("/api/rows/" + cb.dataset.id + "/toggle"); });
});
document.querySelectorAll("button[data-action]").forEach(function (b) {
  b.addEventListener("click", function () { post(b.dataset.action); });
});
`
