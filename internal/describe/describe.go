// Package describe assembles everything shown for one dictionary entry:
// translations, the root breakdown, the localized word class, an
// inflection table with the current form marked, and reference links.
// It produces data only; rendering belongs to the caller.
package describe

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/sagerenn/vortaro/internal/lexicon"
	"github.com/sagerenn/vortaro/internal/morph"
)

// PartSeparator joins the morphemes of a decomposed headword.
const PartSeparator = "·"

type Description struct {
	Headword     string          `json:"headword"`
	Translations []string        `json:"translations"`
	Breakdown    string          `json:"breakdown"`
	Parts        []string        `json:"parts,omitempty"`
	Class        morph.WordClass `json:"class"`
	ClassName    string          `json:"class_name"`
	Language     string          `json:"language"`
	Table        *Table          `json:"table,omitempty"`
	Links        []Link          `json:"links"`
}

type Table struct {
	Title   string   `json:"title"`
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

type Row struct {
	Label string `json:"label"`
	Cells []Cell `json:"cells"`
}

// Cell is one inflected form. Current marks the form being described.
type Cell struct {
	Value   string `json:"value"`
	Current bool   `json:"current,omitempty"`
}

// Current returns the row and column of the first marked cell.
func (t *Table) Current() (row, col int, ok bool) {
	if t == nil {
		return 0, 0, false
	}
	for i, r := range t.Rows {
		for j, c := range r.Cells {
			if c.Current {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

type options struct {
	lang language.Tag
}

type Option func(*options)

// WithLanguage selects the language of class names and table labels.
// Tags other than Esperanto fall back to English.
func WithLanguage(tag language.Tag) Option {
	return func(o *options) {
		o.lang = tag
	}
}

// Describe combines an entry with its analysis. The analysis is expected
// to be of e.Eo; Describe does not re-run the analyzer.
func Describe(e lexicon.Entry, a morph.Analysis, opts ...Option) Description {
	o := options{lang: language.English}
	for _, opt := range opts {
		opt(&o)
	}
	l := labelsFor(o.lang)

	d := Description{
		Headword:     e.Eo,
		Translations: append([]string(nil), e.Ens...),
		Breakdown:    e.Eo,
		Class:        a.Class,
		ClassName:    l.classes[a.Class],
		Language:     l.tag.String(),
		Links:        Links(e),
	}
	if a.Decomposed() {
		d.Parts = append([]string(nil), a.Parts...)
		d.Breakdown = strings.Join(a.Parts, PartSeparator)
	}
	if d.ClassName == "" {
		d.ClassName = l.classes[morph.Other]
	}
	d.Table = buildTable(e.Eo, a, l)
	return d
}

func buildTable(word string, a morph.Analysis, l *labels) *Table {
	var t *Table
	switch a.Class {
	case morph.Verb:
		if a.Decomposed() {
			t = verbTable(a.Root, l)
		}
	case morph.Noun:
		if a.Decomposed() {
			t = caseTable(a.Root, "o", l)
		}
	case morph.Adjective:
		if a.Decomposed() {
			t = caseTable(a.Root, "a", l)
		}
	case morph.Adverb:
		if a.Decomposed() {
			t = adverbTable(a.Root, l)
		}
	case morph.Pronoun:
		if a.Decomposed() {
			t = pronounTable(a.Root, l)
		}
	case morph.Correlative:
		t = correlativeTable(l)
	}
	if t != nil {
		mark(t, word)
	}
	return t
}

var verbEndings = [][]string{
	{"i"},
	{"as", "anta", "ata"},
	{"is", "inta", "ita"},
	{"os", "onta", "ota"},
	{"us", "unta", "uta"},
	{"u"},
}

func verbTable(root string, l *labels) *Table {
	t := &Table{Title: l.conjugation, Columns: l.verbColumns}
	for i, endings := range verbEndings {
		t.Rows = append(t.Rows, Row{Label: l.verbRows[i], Cells: cells(root, endings...)})
	}
	return t
}

func caseTable(root, ending string, l *labels) *Table {
	return &Table{
		Title:   l.declension,
		Columns: l.numberColumns,
		Rows: []Row{
			{Label: l.nominative, Cells: cells(root, ending, ending+"j")},
			{Label: l.accusative, Cells: cells(root, ending+"n", ending+"jn")},
		},
	}
}

func adverbTable(root string, l *labels) *Table {
	return &Table{
		Title:   l.forms,
		Columns: l.adverbColumns,
		Rows:    []Row{{Cells: cells(root, "e", "en")}},
	}
}

func pronounTable(root string, l *labels) *Table {
	return &Table{
		Title:   l.declension,
		Columns: []string{l.nominative, l.accusative},
		Rows: []Row{
			{Label: l.personal, Cells: cells(root, "", "n")},
			{Label: l.possessive, Cells: cells(root, "a", "an")},
		},
	}
}

func correlativeTable(l *labels) *Table {
	t := &Table{
		Title:   l.correlatives,
		Columns: l.correlativeColumns,
	}
	for i, p := range morph.CorrelativePrefixes {
		t.Rows = append(t.Rows, Row{Label: l.correlativeRows[i], Cells: cells(p, morph.CorrelativeSuffixes...)})
	}
	return t
}

func cells(root string, endings ...string) []Cell {
	out := make([]Cell, 0, len(endings))
	for _, e := range endings {
		out = append(out, Cell{Value: root + e})
	}
	return out
}

// mark flags every cell spelling word, ignoring case.
func mark(t *Table, word string) {
	for i := range t.Rows {
		for j := range t.Rows[i].Cells {
			c := &t.Rows[i].Cells[j]
			c.Current = strings.EqualFold(c.Value, word)
		}
	}
}
