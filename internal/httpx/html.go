package httpx

import (
	"html"
	"strings"

	"github.com/sagerenn/vortaro/internal/describe"
)

func (r *Router) renderDescription(d describe.Description) string {
	var b strings.Builder
	writeHead(&b, d.Headword, d.Language)
	b.WriteString("<article class=\"entry\">")
	b.WriteString("<h1>")
	b.WriteString(html.EscapeString(d.Headword))
	b.WriteString("</h1>")
	b.WriteString("<p class=\"breakdown\">")
	b.WriteString(html.EscapeString(d.Breakdown))
	b.WriteString(" <span class=\"class\">")
	b.WriteString(html.EscapeString(d.ClassName))
	b.WriteString("</span></p>")

	b.WriteString("<ul class=\"translations\">")
	for _, t := range d.Translations {
		b.WriteString("<li>")
		b.WriteString(html.EscapeString(t))
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")

	if d.Table != nil {
		r.writeTable(&b, d.Table)
	}

	if len(d.Links) > 0 {
		b.WriteString("<ul class=\"links\">")
		for _, l := range d.Links {
			b.WriteString("<li><a href=\"")
			b.WriteString(html.EscapeString(l.URL))
			b.WriteString("\">")
			b.WriteString(html.EscapeString(l.Name))
			b.WriteString("</a></li>")
		}
		b.WriteString("</ul>")
	}
	b.WriteString("</article></body></html>")
	return b.String()
}

// writeTable renders an inflection table. The current form is wrapped in
// <strong>; forms that are headwords themselves link to their own page.
func (r *Router) writeTable(b *strings.Builder, t *describe.Table) {
	b.WriteString("<table class=\"inflection\"><caption>")
	b.WriteString(html.EscapeString(t.Title))
	b.WriteString("</caption><thead><tr><th></th>")
	for _, c := range t.Columns {
		b.WriteString("<th>")
		b.WriteString(html.EscapeString(c))
		b.WriteString("</th>")
	}
	b.WriteString("</tr></thead><tbody>")
	for _, row := range t.Rows {
		b.WriteString("<tr><th>")
		b.WriteString(html.EscapeString(row.Label))
		b.WriteString("</th>")
		for _, cell := range row.Cells {
			if cell.Current {
				b.WriteString("<td class=\"current\"><strong>")
				b.WriteString(html.EscapeString(cell.Value))
				b.WriteString("</strong></td>")
				continue
			}
			b.WriteString("<td>")
			if _, ok := r.svc.Index().Entry(cell.Value); ok {
				b.WriteString("<a href=\"")
				b.WriteString(html.EscapeString(r.entryURL(cell.Value)))
				b.WriteString("\">")
				b.WriteString(html.EscapeString(cell.Value))
				b.WriteString("</a>")
			} else {
				b.WriteString(html.EscapeString(cell.Value))
			}
			b.WriteString("</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
}

func (r *Router) renderNotFound(eo string) string {
	var b strings.Builder
	writeHead(&b, eo, "")
	b.WriteString("<p>No entry for <em>")
	b.WriteString(html.EscapeString(eo))
	b.WriteString("</em></p></body></html>")
	return b.String()
}

func writeHead(b *strings.Builder, title, lang string) {
	b.WriteString("<!doctype html><html")
	if lang != "" {
		b.WriteString(" lang=\"")
		b.WriteString(html.EscapeString(lang))
		b.WriteString("\"")
	}
	b.WriteString("><head><meta charset=\"utf-8\"><title>")
	b.WriteString(html.EscapeString(title))
	b.WriteString("</title></head><body>")
}
