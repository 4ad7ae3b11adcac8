package morph

var prepositions = newSet(
	"al", "anstataŭ", "antaŭ", "apud", "cis", "ĉe", "ĉirkaŭ", "da", "de",
	"dum", "ekde", "ekster", "el", "en", "far", "ĝis", "inter", "je",
	"kontraŭ", "krom", "kun", "laŭ", "laŭlonge", "malgraŭ", "per", "po",
	"por", "post", "preter", "pri", "pro", "sen", "sub", "super", "sur",
	"tra", "trans",
)

var pronouns = []string{"mi", "ni", "vi", "li", "ŝi", "ĝi", "ili", "oni", "si", "ci"}

var particles = newSet(
	"kaj", "aŭ", "sed", "ke", "se", "ĉar", "ol", "nek", "do", "tamen",
	"ja", "jes", "ne", "ankaŭ", "eĉ", "nur", "ĵus", "jam", "ĉi", "la",
	"pli", "plej", "tre", "tro", "for", "jen", "ju", "des", "ajn",
	"kvankam", "ĉu", "ho", "ve", "adiaŭ", "almenaŭ", "mem", "plu",
)

var adverbs = newSet(
	"baldaŭ", "hieraŭ", "hodiaŭ", "morgaŭ", "ankoraŭ", "apenaŭ",
	"preskaŭ", "kvazaŭ", "tuj", "nun", "ambaŭ",
)

// CorrelativePrefixes and CorrelativeSuffixes span the correlative table:
// every prefix joined with every suffix is a correlative.
var (
	CorrelativePrefixes = []string{"ki", "ti", "i", "ĉi", "neni"}
	CorrelativeSuffixes = []string{"o", "u", "a", "e", "el", "al", "am", "om", "es"}
)

var (
	numeralBases       = []string{"nul", "unu", "du", "tri", "kvar", "kvin", "ses", "sep", "ok", "naŭ"}
	numeralMultipliers = []string{"dek", "cent", "mil"}
)

var numerals = func() map[string]struct{} {
	s := newSet(numeralBases...)
	for _, m := range numeralMultipliers {
		s[m] = struct{}{}
		for _, b := range numeralBases {
			s[b+m] = struct{}{}
		}
	}
	return s
}()

var correlatives = func() map[string]struct{} {
	s := make(map[string]struct{}, len(CorrelativePrefixes)*len(CorrelativeSuffixes))
	for _, p := range CorrelativePrefixes {
		for _, suf := range CorrelativeSuffixes {
			s[p+suf] = struct{}{}
		}
	}
	return s
}()

func newSet(words ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}
