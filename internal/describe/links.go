package describe

import (
	"net/url"
	"strings"

	"github.com/sagerenn/vortaro/internal/lexicon"
)

type Link struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

const (
	wikipediaEo = "https://eo.wikipedia.org/wiki/"
	wikipediaEn = "https://en.wikipedia.org/wiki/"
	wiktionary  = "https://en.wiktionary.org/wiki/"
	translate   = "https://translate.google.com/?sl=eo&tl=en&text="
)

// Links formats the reference URLs for e. The English Wikipedia link uses
// the first gloss with any parenthesised part removed and is left out
// when nothing remains.
func Links(e lexicon.Entry) []Link {
	page := pageName(e.Eo)
	links := []Link{
		{Name: "Vikipedio", URL: wikipediaEo + url.PathEscape(page)},
		{Name: "Wiktionary", URL: wiktionary + url.PathEscape(page) + "#Esperanto"},
		{Name: "Google Translate", URL: translate + url.QueryEscape(e.Eo)},
	}
	if len(e.Ens) > 0 {
		if gloss := pageName(stripParens(e.Ens[0])); gloss != "" {
			links = append(links, Link{Name: "Wikipedia", URL: wikipediaEn + url.PathEscape(gloss)})
		}
	}
	return links
}

func pageName(s string) string {
	return strings.Join(strings.Fields(s), "_")
}

// stripParens removes parenthesised text, nested or not. An unclosed
// parenthesis drops the rest of the string.
func stripParens(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '(':
			depth++
		case r == ')' && depth > 0:
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}
