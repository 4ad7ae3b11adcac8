package describe

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sagerenn/vortaro/internal/lexicon"
)

func TestLinks(t *testing.T) {
	links := Links(lexicon.Entry{Eo: "bona tago", Ens: []string{"good day (greeting)", "hello"}})
	assert.Equal(t, []Link{
		{Name: "Vikipedio", URL: "https://eo.wikipedia.org/wiki/bona_tago"},
		{Name: "Wiktionary", URL: "https://en.wiktionary.org/wiki/bona_tago#Esperanto"},
		{Name: "Google Translate", URL: "https://translate.google.com/?sl=eo&tl=en&text=bona+tago"},
		{Name: "Wikipedia", URL: "https://en.wikipedia.org/wiki/good_day"},
	}, links)
}

func TestLinksEscape(t *testing.T) {
	links := Links(lexicon.Entry{Eo: "ĉevalo", Ens: []string{"(to) ride"}})
	assert.Equal(t, "https://eo.wikipedia.org/wiki/%C4%89evalo", links[0].URL)
	assert.Equal(t, "https://en.wikipedia.org/wiki/ride", links[3].URL)
}

func TestLinksWithoutGlossPage(t *testing.T) {
	links := Links(lexicon.Entry{Eo: "kato", Ens: []string{"(cat)"}})
	assert.Len(t, links, 3)
}

func TestStripParens(t *testing.T) {
	assert.Equal(t, " run", stripParens("(to) run"))
	assert.Equal(t, "a  c", stripParens("a (b (x)) c"))
	assert.Equal(t, "a ", stripParens("a (b"))
	assert.Equal(t, "a) b", stripParens("a) b"))
}
