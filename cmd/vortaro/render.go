package main

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/gookit/color"

	"github.com/sagerenn/vortaro/internal/describe"
	"github.com/sagerenn/vortaro/internal/morph"
	"github.com/sagerenn/vortaro/internal/service"
)

var (
	emphasis = color.Bold.Sprint
	muted    = color.Gray.Sprint
	// current form in an inflection table
	highlight = color.Bit24(255, 200, 0, false).Sprint
)

func printHits(w io.Writer, res service.SearchResult) {
	width := 0
	for _, h := range res.Hits {
		width = max(width, utf8.RuneCountInString(h.Eo))
	}
	for _, h := range res.Hits {
		fmt.Fprintf(w, "%s  %s  %s\n", emphasis(pad(h.Eo, width)), h.Summary, muted(h.Class.String()))
	}
	if res.Total > len(res.Hits) {
		fmt.Fprintln(w, muted(fmt.Sprintf("%d of %d", len(res.Hits), res.Total)))
	}
}

func printDescription(w io.Writer, d describe.Description) {
	fmt.Fprintln(w, emphasis(d.Headword))
	fmt.Fprintf(w, "%s  %s\n", d.Breakdown, muted(d.ClassName))
	for _, t := range d.Translations {
		fmt.Fprintln(w, "  "+t)
	}
	if d.Table != nil {
		fmt.Fprintln(w)
		printTable(w, d.Table)
	}
	if len(d.Links) > 0 {
		fmt.Fprintln(w)
		width := 0
		for _, l := range d.Links {
			width = max(width, utf8.RuneCountInString(l.Name))
		}
		for _, l := range d.Links {
			fmt.Fprintf(w, "%s  %s\n", pad(l.Name, width), muted(l.URL))
		}
	}
}

// printTable aligns on rune counts; colors are applied after padding so
// escape codes do not skew the columns.
func printTable(w io.Writer, t *describe.Table) {
	widths := make([]int, len(t.Columns)+1)
	for i, c := range t.Columns {
		widths[i+1] = utf8.RuneCountInString(c)
	}
	for _, r := range t.Rows {
		widths[0] = max(widths[0], utf8.RuneCountInString(r.Label))
		for i, c := range r.Cells {
			if i+1 < len(widths) {
				widths[i+1] = max(widths[i+1], utf8.RuneCountInString(c.Value))
			}
		}
	}

	fmt.Fprintln(w, emphasis(t.Title))
	header := []string{pad("", widths[0])}
	for i, c := range t.Columns {
		header = append(header, muted(pad(c, widths[i+1])))
	}
	fmt.Fprintln(w, strings.TrimRight(strings.Join(header, "  "), " "))
	for _, r := range t.Rows {
		line := []string{muted(pad(r.Label, widths[0]))}
		for i, c := range r.Cells {
			v := c.Value
			if i+1 < len(widths) {
				v = pad(v, widths[i+1])
			}
			if c.Current {
				v = highlight(emphasis(v))
			}
			line = append(line, v)
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(line, "  "), " "))
	}
}

func printAnalysis(w io.Writer, a morph.Analysis, className string) {
	line := emphasis(a.Word) + "  " + className
	if a.Decomposed() {
		line += "  " + strings.Join(a.Parts, describe.PartSeparator)
	}
	fmt.Fprintln(w, line)
}

func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
