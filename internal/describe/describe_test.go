package describe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/sagerenn/vortaro/internal/lexicon"
	"github.com/sagerenn/vortaro/internal/morph"
)

func describe(eo string, ens ...string) Description {
	return Describe(lexicon.Entry{Eo: eo, Ens: ens}, morph.Analyze(eo))
}

func values(t *Table) [][]string {
	out := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		row := make([]string, 0, len(r.Cells))
		for _, c := range r.Cells {
			row = append(row, c.Value)
		}
		out = append(out, row)
	}
	return out
}

func TestDescribeNoun(t *testing.T) {
	d := describe("katojn", "cats")
	assert.Equal(t, "katojn", d.Headword)
	assert.Equal(t, []string{"cats"}, d.Translations)
	assert.Equal(t, "kat·o·j·n", d.Breakdown)
	assert.Equal(t, []string{"kat", "o", "j", "n"}, d.Parts)
	assert.Equal(t, morph.Noun, d.Class)
	assert.Equal(t, "noun", d.ClassName)
	assert.Equal(t, "en", d.Language)

	require.NotNil(t, d.Table)
	assert.Equal(t, [][]string{{"kato", "katoj"}, {"katon", "katojn"}}, values(d.Table))
	assert.Equal(t, []string{"singular", "plural"}, d.Table.Columns)
	row, col, ok := d.Table.Current()
	require.True(t, ok)
	assert.Equal(t, 1, row)
	assert.Equal(t, 1, col)
}

func TestDescribeAdjective(t *testing.T) {
	d := describe("bela", "beautiful")
	require.NotNil(t, d.Table)
	assert.Equal(t, [][]string{{"bela", "belaj"}, {"belan", "belajn"}}, values(d.Table))
	row, col, ok := d.Table.Current()
	require.True(t, ok)
	assert.Equal(t, [2]int{0, 0}, [2]int{row, col})
}

func TestDescribeVerb(t *testing.T) {
	d := describe("kuri", "(to) run", "flee")
	assert.Equal(t, "kur·i", d.Breakdown)
	require.NotNil(t, d.Table)
	assert.Equal(t, [][]string{
		{"kuri"},
		{"kuras", "kuranta", "kurata"},
		{"kuris", "kurinta", "kurita"},
		{"kuros", "kuronta", "kurota"},
		{"kurus", "kurunta", "kuruta"},
		{"kuru"},
	}, values(d.Table))
	assert.Len(t, d.Table.Rows, 6)
	assert.Equal(t, "infinitive", d.Table.Rows[0].Label)
	assert.True(t, d.Table.Rows[0].Cells[0].Current)

	d = describe("Kuras", "runs")
	row, col, ok := d.Table.Current()
	require.True(t, ok)
	assert.Equal(t, [2]int{1, 0}, [2]int{row, col})
	assert.Equal(t, "Kuras", d.Table.Rows[1].Cells[0].Value)
}

func TestDescribeAdverb(t *testing.T) {
	d := describe("hejmen", "homeward")
	require.NotNil(t, d.Table)
	assert.Equal(t, [][]string{{"hejme", "hejmen"}}, values(d.Table))
	assert.True(t, d.Table.Rows[0].Cells[1].Current)

	assert.Nil(t, describe("baldaŭ", "soon").Table)
}

func TestDescribePronoun(t *testing.T) {
	d := describe("mian", "my")
	require.NotNil(t, d.Table)
	assert.Equal(t, [][]string{{"mi", "min"}, {"mia", "mian"}}, values(d.Table))
	assert.True(t, d.Table.Rows[1].Cells[1].Current)
	assert.Equal(t, "mi·a·n", d.Breakdown)
}

func TestDescribeCorrelative(t *testing.T) {
	d := describe("tiam", "then")
	assert.Equal(t, "tiam", d.Breakdown)
	assert.Empty(t, d.Parts)
	require.NotNil(t, d.Table)
	require.Len(t, d.Table.Rows, 5)
	for _, r := range d.Table.Rows {
		assert.Len(t, r.Cells, 9)
	}
	assert.Equal(t, "kio", d.Table.Rows[0].Cells[0].Value)
	assert.Equal(t, "neniom", d.Table.Rows[4].Cells[7].Value)

	marked := 0
	for _, r := range d.Table.Rows {
		for _, c := range r.Cells {
			if c.Current {
				marked++
				assert.Equal(t, "tiam", c.Value)
			}
		}
	}
	assert.Equal(t, 1, marked)
}

func TestDescribeWithoutTable(t *testing.T) {
	for _, eo := range []string{"la bona tago", "kaj", "dudek", "ĉirkaŭ", "-ej-", "ŝtrump"} {
		d := describe(eo, "x")
		assert.Nil(t, d.Table, eo)
		assert.Equal(t, eo, d.Breakdown, eo)
		assert.Empty(t, d.Parts, eo)
	}
}

func TestDescribeEsperanto(t *testing.T) {
	d := Describe(lexicon.Entry{Eo: "katon", Ens: []string{"cat"}}, morph.Analyze("katon"), WithLanguage(Esperanto))
	assert.Equal(t, "substantivo", d.ClassName)
	assert.Equal(t, "eo", d.Language)
	assert.Equal(t, "Deklinacio", d.Table.Title)
	assert.Equal(t, "akuzativo", d.Table.Rows[1].Label)
}

func TestClassNames(t *testing.T) {
	for c := morph.Other; c <= morph.Adjective; c++ {
		assert.NotEmpty(t, ClassName(c, language.English), c.String())
		assert.NotEmpty(t, ClassName(c, Esperanto), c.String())
	}
	assert.Equal(t, "tabelvorto", ClassName(morph.Correlative, Esperanto))
	assert.Equal(t, "verb", ClassName(morph.Verb, language.German))
	assert.Equal(t, "other", ClassName(morph.WordClass(99), language.English))
}

func TestMatchLanguage(t *testing.T) {
	testCases := map[string]language.Tag{
		"eo":                  Esperanto,
		"eo, en;q=0.5":        Esperanto,
		"en-US,en;q=0.9":      language.English,
		"fr":                  language.English,
		"":                    language.English,
		"de;q=0.9, eo;q=0.8":  Esperanto,
		"not a language tag!": language.English,
	}
	for in, want := range testCases {
		assert.Equal(t, want, MatchLanguage(in), in)
	}
}
