// Package morph classifies Esperanto headwords and splits inflectable
// ones into root and endings.
//
// Classification is an ordered list of rules; the first rule that
// matches decides the word class. Later rules are more permissive, so
// the order is significant. All matching is case-insensitive and every
// function in the package is safe for concurrent use.
package morph

import (
	"regexp"
	"strings"
)

type WordClass int

const (
	Other WordClass = iota
	Phrase
	Suffix
	Prefix
	Preposition
	Pronoun
	Numeral
	Particle
	Correlative
	Adverb
	Verb
	Noun
	Adjective
)

var classNames = [...]string{
	Other:       "other",
	Phrase:      "phrase",
	Suffix:      "suffix",
	Prefix:      "prefix",
	Preposition: "preposition",
	Pronoun:     "pronoun",
	Numeral:     "numeral",
	Particle:    "particle",
	Correlative: "correlative",
	Adverb:      "adverb",
	Verb:        "verb",
	Noun:        "noun",
	Adjective:   "adjective",
}

func (c WordClass) String() string {
	if c < 0 || int(c) >= len(classNames) {
		return classNames[Other]
	}
	return classNames[c]
}

func (c WordClass) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ParseWordClass is the inverse of WordClass.String. Unknown names give Other.
func ParseWordClass(s string) WordClass {
	for i, n := range classNames {
		if n == s {
			return WordClass(i)
		}
	}
	return Other
}

// Analysis is the result of Analyze. Root and Parts are empty unless the
// rule that matched decomposes the word; Parts[0] is always Root.
type Analysis struct {
	Word  string    `json:"word"`
	Class WordClass `json:"class"`
	Root  string    `json:"root,omitempty"`
	Parts []string  `json:"parts,omitempty"`
}

func (a Analysis) Decomposed() bool {
	return len(a.Parts) > 0
}

// Has reports whether ending is one of the morphemes after the root.
func (a Analysis) Has(ending string) bool {
	if len(a.Parts) < 2 {
		return false
	}
	for _, p := range a.Parts[1:] {
		if p == ending {
			return true
		}
	}
	return false
}

// Clone returns a copy whose Parts can be modified freely.
func (a Analysis) Clone() Analysis {
	if a.Parts != nil {
		a.Parts = append([]string(nil), a.Parts...)
	}
	return a
}

// Rule assigns Class to words accepted by Match. Match receives the
// lower-cased word and returns the decomposition, or nil parts for
// rules that only classify.
type Rule struct {
	Class WordClass
	Match func(lower string) (parts []string, ok bool)
}

// Rules returns the default rules in precedence order.
func Rules() []Rule {
	return append([]Rule(nil), defaultRules...)
}

var defaultRules = []Rule{
	{Phrase, predicate(func(w string) bool { return strings.Contains(w, " ") })},
	{Suffix, predicate(func(w string) bool { return strings.HasPrefix(w, "-") })},
	{Prefix, predicate(func(w string) bool { return strings.HasSuffix(w, "-") })},
	{Preposition, member(prepositions)},
	{Pronoun, pattern(`^(` + strings.Join(pronouns, "|") + `)(a?)(n?)$`)},
	{Numeral, member(numerals)},
	{Particle, member(particles)},
	{Correlative, member(correlatives)},
	{Adverb, member(adverbs)},
	{Adverb, pattern(`^(.+)(e)(n?)$`)},
	{Verb, pattern(`^(.+)(i|as|is|os|us|u)$`)},
	{Noun, pattern(`^(.+)(o)(j?)(n?)$`)},
	{Adjective, pattern(`^(.+)(a)(j?)(n?)$`)},
}

func predicate(f func(string) bool) func(string) ([]string, bool) {
	return func(w string) ([]string, bool) {
		return nil, f(w)
	}
}

func member(set map[string]struct{}) func(string) ([]string, bool) {
	return func(w string) ([]string, bool) {
		_, ok := set[w]
		return nil, ok
	}
}

// pattern decomposes with re: the first group is the root, every further
// non-empty group is one ending.
func pattern(expr string) func(string) ([]string, bool) {
	re := regexp.MustCompile(expr)
	return func(w string) ([]string, bool) {
		m := re.FindStringSubmatch(w)
		if m == nil || m[1] == "" {
			return nil, false
		}
		parts := make([]string, 0, len(m)-1)
		for _, g := range m[1:] {
			if g != "" {
				parts = append(parts, g)
			}
		}
		return parts, true
	}
}

type Analyzer struct {
	rules []Rule
}

// New returns an Analyzer evaluating rules in the given order. With no
// rules the default precedence is used.
func New(rules ...Rule) *Analyzer {
	if len(rules) == 0 {
		rules = defaultRules
	}
	return &Analyzer{rules: rules}
}

var defaultAnalyzer = New()

// Analyze classifies word with the default rules. It never fails:
// words no rule accepts are Other.
func Analyze(word string) Analysis {
	return defaultAnalyzer.Analyze(word)
}

func (an *Analyzer) Analyze(word string) Analysis {
	word = strings.TrimSpace(word)
	lower := strings.ToLower(word)
	for _, r := range an.rules {
		parts, ok := r.Match(lower)
		if !ok {
			continue
		}
		a := Analysis{Word: word, Class: r.Class}
		if len(parts) > 0 {
			a.Parts = restoreCase(word, lower, parts)
			a.Root = a.Parts[0]
		}
		return a
	}
	return Analysis{Word: word, Class: Other}
}

// restoreCase gives the root its original spelling when lowering kept byte
// offsets, so "Katon" keeps the root "Kat". Endings stay lower-case.
func restoreCase(word, lower string, parts []string) []string {
	if len(word) != len(lower) {
		return parts
	}
	parts[0] = word[:len(parts[0])]
	return parts
}

// IsCorrelative reports whether word is one of the 45 table correlatives.
func IsCorrelative(word string) bool {
	_, ok := correlatives[strings.ToLower(word)]
	return ok
}
