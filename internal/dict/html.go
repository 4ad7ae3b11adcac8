package dict

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/sagerenn/vortaro/internal/lexicon"
)

var (
	noiseMatcher = cascadia.MustCompile(`script, style, link, img, audio, video, object`)
	breakMatcher = cascadia.MustCompile(`br`)
	blockMatcher = cascadia.MustCompile(`p, div, li, dd, dt, tr, h1, h2, h3, h4, h5, h6, blockquote`)
)

// HTMLText returns the visible text of an HTML fragment. Line breaks and
// block elements become newlines; scripts, styles and media are dropped.
func HTMLText(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	doc.FindMatcher(noiseMatcher).Remove()
	doc.FindMatcher(breakMatcher).ReplaceWithHtml("\n")
	doc.FindMatcher(blockMatcher).AppendHtml("\n")
	return doc.Text()
}

// Glosses turns definition text into glosses: every non-empty line is
// split with lexicon.SplitGlosses.
func Glosses(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		out = append(out, lexicon.SplitGlosses(line)...)
	}
	return out
}
