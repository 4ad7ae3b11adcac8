package search

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagerenn/vortaro/internal/index"
	"github.com/sagerenn/vortaro/internal/lexicon"
)

const corpus = `kato : cat, tomcat
katido : kitten, young cat
hundo : dog
ĉevalo : horse
ĉirkaŭ : around
ŝipo : ship
aŭto : car
Ĝenevo : Geneva
kajako : kayak
kaj : and
`

func newEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	res := lexicon.ParseString(corpus)
	require.Empty(t, res.Skipped)
	return New(index.Build(res.Entries), opts...)
}

func headwords(entries []lexicon.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Eo)
	}
	return out
}

func TestSearchScenario(t *testing.T) {
	e := newEngine(t)

	eo := e.Search("kat", Esperanto)
	assert.Equal(t, []string{"katido", "kato"}, headwords(eo))
	assert.Equal(t, lexicon.Entry{Eo: "kato", Ens: []string{"cat", "tomcat"}}, eo[1])

	en := e.Search("cat", English)
	require.Len(t, en, 1)
	assert.Equal(t, eo[1], en[0])

	assert.Empty(t, e.Search("xyz", Both))
	assert.Empty(t, e.Search("xyz", Esperanto))
	assert.Empty(t, e.Search("xyz", English))
}

func TestSearchCaseInsensitive(t *testing.T) {
	e := newEngine(t)
	assert.Equal(t, []string{"katido", "kato"}, headwords(e.Search("KAT", Esperanto)))
	assert.Equal(t, []string{"Ĝenevo"}, headwords(e.Search("ĝenevo", Esperanto)))
	assert.Equal(t, []string{"Ĝenevo"}, headwords(e.Search("geneva", English)))
}

func TestSearchAnchoredAtWordStart(t *testing.T) {
	e := newEngine(t)
	assert.Empty(t, e.Search("ato", Esperanto))
	assert.Equal(t, []string{"kato"}, headwords(e.Search(".ato$", Esperanto)))
	// "young cat" starts with "young", so only kato matches.
	assert.Equal(t, []string{"kato"}, headwords(e.Search("cat", English)))
}

func TestSearchEnglishOrderAndFanOut(t *testing.T) {
	e := newEngine(t)
	assert.Equal(t, []string{"aŭto", "kato"}, headwords(e.Search("c", English)))

	ix := index.Build([]lexicon.Entry{
		{Eo: "fuĝi", Ens: []string{"flee"}},
		{Eo: "forkuri", Ens: []string{"flee", "run away"}},
	})
	assert.Equal(t, []string{"fuĝi", "forkuri"}, headwords(New(ix).Search("flee", English)))
}

func TestSearchBothDedupes(t *testing.T) {
	e := newEngine(t)
	// kajako matches as a headword and through "kayak".
	got := e.Search("ka", Both)
	assert.Equal(t, []string{"kaj", "kajako", "katido", "kato"}, headwords(got))

	assert.Equal(t, []string{"kato"}, headwords(e.Search("cat", Both)))
}

func TestSearchBothSortsCaseInsensitively(t *testing.T) {
	ix := index.Build([]lexicon.Entry{
		{Eo: "Bero", Ens: []string{"berry"}},
		{Eo: "abelo", Ens: []string{"bee"}},
		{Eo: "Abato", Ens: []string{"abbot"}},
	})
	got := New(ix).Search("(a|b)", Both)
	assert.Equal(t, []string{"Abato", "abelo", "Bero"}, headwords(got))
}

func TestSearchDiacriticFolding(t *testing.T) {
	e := newEngine(t)
	testCases := map[string]string{
		"cevalo":  "ĉevalo",
		"CEVALO":  "ĉevalo",
		"cirkau":  "ĉirkaŭ",
		"sipo":    "ŝipo",
		"Genevo":  "Ĝenevo",
		"hundo":   "hundo",
		"ĉevalo":  "ĉevalo",
		"c[e]val": "ĉevalo",
	}
	for pattern, want := range testCases {
		assert.Equal(t, []string{want}, headwords(e.Search(pattern, Esperanto)), pattern)
	}

	plain := newEngine(t, WithFold(false))
	assert.False(t, plain.Folding())
	assert.Empty(t, plain.Search("cevalo", Esperanto))
	assert.Equal(t, []string{"ĉevalo"}, headwords(plain.Search("ĉevalo", Esperanto)))
}

func TestSearchFoldingKeepsClassRanges(t *testing.T) {
	ix := index.Build([]lexicon.Entry{
		{Eo: "tablo", Ens: []string{"table"}},
		{Eo: "ŝuo", Ens: []string{"shoe"}},
		{Eo: "domo", Ens: []string{"house"}},
	})
	folded := New(ix)
	plain := New(ix, WithFold(false))

	res, err := folded.Find("[s-z]", Esperanto)
	require.NoError(t, err)
	assert.Equal(t, []string{"ŝuo", "tablo"}, headwords(res))
	assert.Equal(t, []string{"tablo"}, headwords(plain.Search("[s-z]", Esperanto)))

	res, err = folded.Find("[s-z]", Both)
	require.NoError(t, err)
	assert.Equal(t, []string{"ŝuo", "tablo"}, headwords(res))

	assert.Equal(t, []string{"domo"}, headwords(folded.Search("[c-h]", Esperanto)))
}

func TestSearchFoldingLeavesQuotedText(t *testing.T) {
	ix := index.Build([]lexicon.Entry{
		{Eo: "cxa", Ens: []string{"x"}},
		{Eo: "ĉa", Ens: []string{"y"}},
	})
	assert.Equal(t, []string{"cxa"}, headwords(New(ix).Search(`\Qcx\E`, Esperanto)))
	assert.Equal(t, []string{"cxa"}, headwords(New(ix, WithFold(false)).Search(`\Qcx\E`, Esperanto)))
}

func TestSearchFoldingSkipsEnglish(t *testing.T) {
	ix := index.Build([]lexicon.Entry{
		{Eo: "ŝipo", Ens: []string{"ship"}},
		{Eo: "naĝi", Ens: []string{"ŝwim"}},
	})
	e := New(ix)
	assert.Empty(t, e.Search("sw", English))
	assert.Equal(t, []string{"ŝipo"}, headwords(e.Search("sh", English)))
}

func TestSearchInvalidPattern(t *testing.T) {
	e := newEngine(t)
	for _, scope := range []Scope{Esperanto, English, Both} {
		assert.Empty(t, e.Search("(", scope), scope.String())
		_, err := e.Find("(", scope)
		assert.Error(t, err, scope.String())
	}
	// Wrapping must not turn an unbalanced pattern into a valid one.
	assert.Empty(t, e.Search("a)(b", Esperanto))

	_, err := e.Find("kat", Scope(42))
	assert.ErrorIs(t, err, ErrUnknownScope)
}

func TestSearchEmptyPattern(t *testing.T) {
	e := newEngine(t)
	for _, pattern := range []string{"", "  "} {
		for _, scope := range []Scope{Esperanto, English, Both} {
			got := e.Search(pattern, scope)
			require.Len(t, got, 10)
			assert.Equal(t, "aŭto", got[0].Eo)
		}
	}
}

func TestSearchMatchCap(t *testing.T) {
	entries := make([]lexicon.Entry, 0, MaxMatches+50)
	for i := 0; i < MaxMatches+50; i++ {
		entries = append(entries, lexicon.Entry{Eo: fmt.Sprintf("a%05d", i), Ens: []string{"x"}})
	}
	ix := index.Build(entries, index.WithMemoSize(0))

	assert.Len(t, New(ix).Search("a", Esperanto), MaxMatches)
	assert.Len(t, New(ix, WithMaxMatches(5)).Search("a", Esperanto), 5)
	// One gloss line shared by every headword fans out past the cap.
	assert.Len(t, New(ix).Search("x", English), MaxMatches+50)
}

func TestParseScope(t *testing.T) {
	testCases := map[string]Scope{
		"eo":        Esperanto,
		"Esperanto": Esperanto,
		"en":        English,
		" english ": English,
		"both":      Both,
		"":          Both,
	}
	for in, want := range testCases {
		got, err := ParseScope(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseScope("fr")
	assert.ErrorIs(t, err, ErrUnknownScope)
	assert.Equal(t, "both", Both.String())
}

func TestScanReturnsWholeLines(t *testing.T) {
	re, err := Compile(`k|ka`, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"kato", "kuri"}, scan(re, "kato\n abc\nkuri", 10))
	assert.Nil(t, scan(re, "", 10))
}
