// Package index holds the bidirectional Esperanto/English mappings and
// the collated word lists searched by package search.
package index

import (
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/sagerenn/vortaro/internal/lexicon"
	"github.com/sagerenn/vortaro/internal/morph"
)

const DefaultMemoSize = 4096

var (
	Esperanto = language.Make("eo")
	English   = language.English
)

// Index maps headwords to glosses and glosses back to headwords. It is
// read-only once built and safe for concurrent use.
type Index struct {
	entries []lexicon.Entry
	byEo    map[string]int
	enToEos map[string][]string

	eoWords []string
	enWords []string
	eoText  string
	enText  string

	memo    *lru.Cache[string, morph.Analysis]
	memoCap int
}

type Option func(*options)

type options struct {
	memoSize int
}

// WithMemoSize bounds the analysis memo. Zero or less disables it.
func WithMemoSize(n int) Option {
	return func(o *options) {
		o.memoSize = n
	}
}

// Build indexes entries. Headwords and glosses are trimmed, entries left
// without a headword or gloss are dropped, and entries sharing a headword
// are merged keeping the first-seen gloss order.
func Build(entries []lexicon.Entry, opts ...Option) *Index {
	o := options{memoSize: DefaultMemoSize}
	for _, opt := range opts {
		opt(&o)
	}

	clean := make([]lexicon.Entry, 0, len(entries))
	for _, e := range entries {
		eo := strings.TrimSpace(e.Eo)
		ens := make([]string, 0, len(e.Ens))
		for _, en := range e.Ens {
			if en = strings.TrimSpace(en); en != "" {
				ens = append(ens, en)
			}
		}
		if eo != "" && len(ens) > 0 {
			clean = append(clean, lexicon.Entry{Eo: eo, Ens: ens})
		}
	}
	merged := lexicon.Merge(clean)

	ix := &Index{
		entries: merged,
		byEo:    make(map[string]int, len(merged)),
		enToEos: make(map[string][]string),
	}
	for i, e := range merged {
		ix.byEo[e.Eo] = i
		// Merge leaves headwords and their glosses unique, so no
		// headword is listed twice under a gloss.
		for _, en := range e.Ens {
			ix.enToEos[en] = append(ix.enToEos[en], e.Eo)
		}
	}

	ix.eoWords = make([]string, 0, len(ix.byEo))
	for eo := range ix.byEo {
		ix.eoWords = append(ix.eoWords, eo)
	}
	ix.enWords = make([]string, 0, len(ix.enToEos))
	for en := range ix.enToEos {
		ix.enWords = append(ix.enWords, en)
	}
	SortWords(ix.eoWords, Esperanto)
	SortWords(ix.enWords, English)
	ix.eoText = strings.Join(ix.eoWords, "\n")
	ix.enText = strings.Join(ix.enWords, "\n")

	if o.memoSize > 0 {
		ix.memo, _ = lru.New[string, morph.Analysis](o.memoSize)
		ix.memoCap = o.memoSize
	}
	return ix
}

// SortWords orders words by the collation of tag; words the collator
// considers equal fall back to byte order.
func SortWords(words []string, tag language.Tag) {
	sort.Strings(words)
	c := collate.New(tag)
	sort.SliceStable(words, func(i, j int) bool {
		return c.CompareString(words[i], words[j]) < 0
	})
}

func (ix *Index) Len() int {
	return len(ix.entries)
}

// Entries returns every entry in Esperanto word-list order.
func (ix *Index) Entries() []lexicon.Entry {
	out := make([]lexicon.Entry, 0, len(ix.eoWords))
	for _, eo := range ix.eoWords {
		out = append(out, ix.entries[ix.byEo[eo]])
	}
	return out
}

func (ix *Index) Entry(eo string) (lexicon.Entry, bool) {
	i, ok := ix.byEo[strings.TrimSpace(eo)]
	if !ok {
		return lexicon.Entry{}, false
	}
	return ix.entries[i], true
}

func (ix *Index) Glosses(eo string) []string {
	e, _ := ix.Entry(eo)
	return e.Ens
}

func (ix *Index) Headwords(en string) []string {
	return ix.enToEos[strings.TrimSpace(en)]
}

func (ix *Index) EoWords() []string { return ix.eoWords }
func (ix *Index) EnWords() []string { return ix.enWords }

// EoText is the Esperanto word list joined by newlines, the search corpus.
func (ix *Index) EoText() string { return ix.eoText }
func (ix *Index) EnText() string { return ix.enText }

// Analyze runs the morphological analyzer, memoized per headword.
// The result is the same with or without the memo.
func (ix *Index) Analyze(eo string) morph.Analysis {
	if ix.memo == nil {
		return morph.Analyze(eo)
	}
	if a, ok := ix.memo.Get(eo); ok {
		return a.Clone()
	}
	a := morph.Analyze(eo)
	ix.memo.Add(eo, a)
	return a.Clone()
}
