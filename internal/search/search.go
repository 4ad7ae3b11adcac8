// Package search runs regular-expression queries against the word lists
// of an index.Index.
//
// A query is anchored at the start of each word and matched
// case-insensitively. Bad patterns never fail a Search; they give an
// empty result. Use Find to get the compile error.
package search

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"

	"github.com/sagerenn/vortaro/internal/index"
	"github.com/sagerenn/vortaro/internal/lexicon"
)

// MaxMatches bounds the regex matches scanned per word list. Matches past
// it are ignored.
const MaxMatches = 10000

var ErrUnknownScope = errors.New("unknown search scope")

type Scope int

const (
	Esperanto Scope = iota
	English
	Both
)

func (s Scope) String() string {
	switch s {
	case Esperanto:
		return "eo"
	case English:
		return "en"
	case Both:
		return "both"
	default:
		return fmt.Sprintf("Scope(%d)", int(s))
	}
}

func (s Scope) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseScope accepts "eo", "en", "both" or the full language names. An
// empty string means Both.
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "eo", "esperanto":
		return Esperanto, nil
	case "en", "english":
		return English, nil
	case "", "both", "all":
		return Both, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownScope, s)
}

// Compile anchors pattern at the start of every line and makes it
// case-insensitive. With fold set the pattern is first passed through
// FoldPattern.
func Compile(pattern string, fold bool) (*regexp.Regexp, error) {
	if _, err := regexp.Compile(pattern); err != nil {
		return nil, err
	}
	if fold {
		pattern = FoldPattern(pattern)
	}
	return regexp.Compile(`(?im)^(?:` + pattern + `)`)
}

type Engine struct {
	ix   *index.Index
	fold bool
	max  int
}

type Option func(*Engine)

// WithFold turns diacritic folding of the Esperanto-side pattern on or off.
// It is on by default.
func WithFold(fold bool) Option {
	return func(e *Engine) {
		e.fold = fold
	}
}

// WithMaxMatches overrides MaxMatches.
func WithMaxMatches(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.max = n
		}
	}
}

func New(ix *index.Index, opts ...Option) *Engine {
	e := &Engine{ix: ix, fold: true, max: MaxMatches}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Folding() bool {
	return e.fold
}

// Search returns the entries whose headword (Esperanto) or any gloss
// (English) matches pattern, each entry once. A blank pattern returns
// every entry and an invalid one returns nothing.
func (e *Engine) Search(pattern string, scope Scope) []lexicon.Entry {
	res, err := e.Find(pattern, scope)
	if err != nil {
		return nil
	}
	return res
}

// Find is Search that reports an invalid pattern or scope.
func (e *Engine) Find(pattern string, scope Scope) ([]lexicon.Entry, error) {
	if strings.TrimSpace(pattern) == "" {
		return e.ix.Entries(), nil
	}
	switch scope {
	case Esperanto:
		re, err := Compile(pattern, e.fold)
		if err != nil {
			return nil, err
		}
		return e.esperanto(re), nil
	case English:
		re, err := Compile(pattern, false)
		if err != nil {
			return nil, err
		}
		return e.english(re), nil
	case Both:
		eoRe, err := Compile(pattern, e.fold)
		if err != nil {
			return nil, err
		}
		enRe, err := Compile(pattern, false)
		if err != nil {
			return nil, err
		}
		return e.both(eoRe, enRe), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownScope, int(scope))
}

func (e *Engine) esperanto(re *regexp.Regexp) []lexicon.Entry {
	words := scan(re, e.ix.EoText(), e.max)
	out := make([]lexicon.Entry, 0, len(words))
	for _, w := range words {
		if entry, ok := e.ix.Entry(w); ok {
			out = append(out, entry)
		}
	}
	return out
}

// english resolves every matched gloss to all of its headwords.
func (e *Engine) english(re *regexp.Regexp) []lexicon.Entry {
	words := scan(re, e.ix.EnText(), e.max)
	seen := make(map[string]bool, len(words))
	out := make([]lexicon.Entry, 0, len(words))
	for _, w := range words {
		for _, eo := range e.ix.Headwords(w) {
			if seen[eo] {
				continue
			}
			seen[eo] = true
			if entry, ok := e.ix.Entry(eo); ok {
				out = append(out, entry)
			}
		}
	}
	return out
}

func (e *Engine) both(eoRe, enRe *regexp.Regexp) []lexicon.Entry {
	var eo, en []lexicon.Entry
	var g errgroup.Group
	g.Go(func() error {
		eo = e.esperanto(eoRe)
		return nil
	})
	g.Go(func() error {
		en = e.english(enRe)
		return nil
	})
	_ = g.Wait()

	seen := make(map[string]bool, len(eo)+len(en))
	out := make([]lexicon.Entry, 0, len(eo)+len(en))
	for _, list := range [][]lexicon.Entry{eo, en} {
		for _, entry := range list {
			if !seen[entry.Eo] {
				seen[entry.Eo] = true
				out = append(out, entry)
			}
		}
	}
	// Collators keep scratch buffers, so each call gets its own.
	c := collate.New(index.Esperanto, collate.IgnoreCase)
	sort.Slice(out, func(i, j int) bool {
		if r := c.CompareString(out[i].Eo, out[j].Eo); r != 0 {
			return r < 0
		}
		return out[i].Eo < out[j].Eo
	})
	return out
}

// scan returns the trimmed lines of text holding a match of re, each line
// at most once, looking at no more than max matches.
func scan(re *regexp.Regexp, text string, max int) []string {
	if text == "" {
		return nil
	}
	locs := re.FindAllStringIndex(text, max)
	words := make([]string, 0, len(locs))
	consumed := 0
	for _, loc := range locs {
		if loc[0] < consumed {
			continue
		}
		start := strings.LastIndexByte(text[:loc[0]], '\n') + 1
		end := strings.IndexByte(text[loc[0]:], '\n')
		if end < 0 {
			end = len(text)
		} else {
			end += loc[0]
		}
		consumed = end + 1
		if w := strings.TrimSpace(text[start:end]); w != "" {
			words = append(words, w)
		}
	}
	return words
}
