package describe

import (
	"golang.org/x/text/language"

	"github.com/sagerenn/vortaro/internal/morph"
)

var Esperanto = language.Make("eo")

// Supported lists the description languages, the first being the default.
var Supported = []language.Tag{language.English, Esperanto}

var matcher = language.NewMatcher(Supported)

// MatchLanguage picks a supported language for an Accept-Language header
// value or a plain tag such as "eo". Anything unusable gives English.
func MatchLanguage(accept string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, i, _ := matcher.Match(tags...)
	return Supported[i]
}

type labels struct {
	tag     language.Tag
	classes map[morph.WordClass]string

	conjugation  string
	declension   string
	forms        string
	correlatives string

	verbColumns []string
	verbRows    []string

	numberColumns []string
	nominative    string
	accusative    string

	adverbColumns []string

	personal   string
	possessive string

	correlativeColumns []string
	correlativeRows    []string
}

var english = &labels{
	tag: language.English,
	classes: map[morph.WordClass]string{
		morph.Other:       "other",
		morph.Phrase:      "phrase",
		morph.Suffix:      "suffix",
		morph.Prefix:      "prefix",
		morph.Preposition: "preposition",
		morph.Pronoun:     "pronoun",
		morph.Numeral:     "numeral",
		morph.Particle:    "particle",
		morph.Correlative: "correlative",
		morph.Adverb:      "adverb",
		morph.Verb:        "verb",
		morph.Noun:        "noun",
		morph.Adjective:   "adjective",
	},
	conjugation:        "Conjugation",
	declension:         "Declension",
	forms:              "Forms",
	correlatives:       "Correlatives",
	verbColumns:        []string{"verb", "active participle", "passive participle"},
	verbRows:           []string{"infinitive", "present", "past", "future", "conditional", "imperative"},
	numberColumns:      []string{"singular", "plural"},
	nominative:         "nominative",
	accusative:         "accusative",
	adverbColumns:      []string{"base", "direction"},
	personal:           "personal",
	possessive:         "possessive",
	correlativeColumns: []string{"thing", "individual", "quality", "place", "manner", "reason", "time", "amount", "possession"},
	correlativeRows:    []string{"question", "indication", "indefinite", "collective", "negative"},
}

var esperanto = &labels{
	tag: Esperanto,
	classes: map[morph.WordClass]string{
		morph.Other:       "alia",
		morph.Phrase:      "esprimo",
		morph.Suffix:      "sufikso",
		morph.Prefix:      "prefikso",
		morph.Preposition: "prepozicio",
		morph.Pronoun:     "pronomo",
		morph.Numeral:     "numeralo",
		morph.Particle:    "partikulo",
		morph.Correlative: "tabelvorto",
		morph.Adverb:      "adverbo",
		morph.Verb:        "verbo",
		morph.Noun:        "substantivo",
		morph.Adjective:   "adjektivo",
	},
	conjugation:        "Konjugacio",
	declension:         "Deklinacio",
	forms:              "Formoj",
	correlatives:       "Tabelvortoj",
	verbColumns:        []string{"verbo", "aktiva participo", "pasiva participo"},
	verbRows:           []string{"infinitivo", "prezenco", "preterito", "futuro", "kondicionalo", "imperativo"},
	numberColumns:      []string{"singularo", "pluralo"},
	nominative:         "nominativo",
	accusative:         "akuzativo",
	adverbColumns:      []string{"bazo", "direkto"},
	personal:           "persona",
	possessive:         "poseda",
	correlativeColumns: []string{"aĵo", "individuo", "eco", "loko", "maniero", "kaŭzo", "tempo", "kvanto", "posedo"},
	correlativeRows:    []string{"demanda", "montra", "nedifina", "kolektiva", "nea"},
}

func labelsFor(tag language.Tag) *labels {
	if base, _ := tag.Base(); base.String() == "eo" {
		return esperanto
	}
	return english
}

// ClassName returns the name of c in the language closest to tag.
func ClassName(c morph.WordClass, tag language.Tag) string {
	l := labelsFor(tag)
	if n, ok := l.classes[c]; ok {
		return n
	}
	return l.classes[morph.Other]
}
