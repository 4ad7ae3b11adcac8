package morph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyze(t *testing.T) {
	testCases := map[string]struct {
		word  string
		class WordClass
		root  string
		parts []string
	}{
		"noun accusative":      {word: "katon", class: Noun, root: "kat", parts: []string{"kat", "o", "n"}},
		"noun plural acc":      {word: "katojn", class: Noun, root: "kat", parts: []string{"kat", "o", "j", "n"}},
		"noun capitalised":     {word: "Katon", class: Noun, root: "Kat", parts: []string{"Kat", "o", "n"}},
		"verb infinitive":      {word: "kuri", class: Verb, root: "kur", parts: []string{"kur", "i"}},
		"verb present":         {word: "estas", class: Verb, root: "est", parts: []string{"est", "as"}},
		"verb conditional":     {word: "kurus", class: Verb, root: "kur", parts: []string{"kur", "us"}},
		"verb imperative":      {word: "kuru", class: Verb, root: "kur", parts: []string{"kur", "u"}},
		"adjective":            {word: "bela", class: Adjective, root: "bel", parts: []string{"bel", "a"}},
		"adjective plural acc": {word: "belajn", class: Adjective, root: "bel", parts: []string{"bel", "a", "j", "n"}},
		"adverb regular":       {word: "bone", class: Adverb, root: "bon", parts: []string{"bon", "e"}},
		"adverb directional":   {word: "hejmen", class: Adverb, root: "hejm", parts: []string{"hejm", "e", "n"}},
		"adverb irregular":     {word: "baldaŭ", class: Adverb},
		"particle":             {word: "kaj", class: Particle},
		"pronoun":              {word: "mi", class: Pronoun, root: "mi", parts: []string{"mi"}},
		"pronoun possessive":   {word: "mian", class: Pronoun, root: "mi", parts: []string{"mi", "a", "n"}},
		"pronoun accusative":   {word: "ŝin", class: Pronoun, root: "ŝi", parts: []string{"ŝi", "n"}},
		"numeral base":         {word: "naŭ", class: Numeral},
		"numeral compound":     {word: "dudek", class: Numeral},
		"numeral multiplier":   {word: "mil", class: Numeral},
		"phrase":               {word: "la bona tago", class: Phrase},
		"suffix":               {word: "-ej-", class: Suffix},
		"prefix":               {word: "mal-", class: Prefix},
		"preposition":          {word: "ĉirkaŭ", class: Preposition},
		"preposition upper":    {word: "Kun", class: Preposition},
		"correlative":          {word: "kiu", class: Correlative},
		"correlative time":     {word: "tiam", class: Correlative},
		"bare adjective end":   {word: "a", class: Other},
		"bare adverb end":      {word: "e", class: Other},
		"nothing matches":      {word: "ŝtrump", class: Other},
		"empty":                {word: "", class: Other},
	}
	for name := range testCases {
		tc := testCases[name]
		t.Run(name, func(t *testing.T) {
			a := Analyze(tc.word)
			assert.Equal(t, tc.class, a.Class)
			assert.Equal(t, tc.root, a.Root)
			assert.Equal(t, tc.parts, a.Parts)
		})
	}
}

func TestPrecedence(t *testing.T) {
	// Each word is accepted by several rules; the earliest wins.
	testCases := map[string]WordClass{
		"la bela kato": Phrase,      // endings alone say Noun
		"-o":           Suffix,      // ends like a noun
		"da":           Preposition, // ends like an adjective
		"lia":          Pronoun,     // ends like an adjective
		"tri":          Numeral,     // ends like an infinitive
		"ju":           Particle,    // ends like an imperative
		"tamen":        Particle,    // ends like a directional adverb
		"kiu":          Correlative, // ends like an imperative
		"kie":          Correlative, // ends like an adverb
	}
	for word, class := range testCases {
		assert.Equal(t, class, Analyze(word).Class, word)
	}
}

func TestCustomRules(t *testing.T) {
	nounsOnly := New(Rule{Class: Noun, Match: pattern(`^(.+)(o)(j?)(n?)$`)})
	assert.Equal(t, Other, nounsOnly.Analyze("bela").Class)
	assert.Equal(t, Noun, nounsOnly.Analyze("kiuo").Class)

	// Dropping the correlative rule lets "kiu" fall through to Verb.
	var rules []Rule
	for _, r := range Rules() {
		if r.Class != Correlative {
			rules = append(rules, r)
		}
	}
	a := New(rules...).Analyze("kiu")
	assert.Equal(t, Verb, a.Class)
	assert.Equal(t, []string{"ki", "u"}, a.Parts)
}

func TestNumeralsGenerated(t *testing.T) {
	for _, b := range numeralBases {
		for _, m := range numeralMultipliers {
			assert.Equal(t, Numeral, Analyze(b+m).Class, b+m)
		}
	}
}

func TestCorrelativeTable(t *testing.T) {
	assert.Len(t, correlatives, 45)
	for _, p := range CorrelativePrefixes {
		for _, s := range CorrelativeSuffixes {
			assert.True(t, IsCorrelative(p+s), p+s)
		}
	}
}

func TestWordClassText(t *testing.T) {
	for c := Other; c <= Adjective; c++ {
		assert.Equal(t, c, ParseWordClass(c.String()))
	}
	assert.Equal(t, "other", WordClass(99).String())
}

func TestAnalysisHas(t *testing.T) {
	a := Analyze("katojn")
	assert.True(t, a.Has("j"))
	assert.True(t, a.Has("n"))
	assert.False(t, a.Has("kat"))
	assert.False(t, Analyze("kaj").Has("j"))
}
