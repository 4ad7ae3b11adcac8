package search

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// folds maps each plain letter to the Esperanto letter that carries a
// circumflex or breve over it.
var folds = map[rune]rune{
	'c': 'ĉ', 'g': 'ĝ', 'h': 'ĥ', 'j': 'ĵ', 's': 'ŝ', 'u': 'ŭ',
	'C': 'Ĉ', 'G': 'Ĝ', 'H': 'Ĥ', 'J': 'Ĵ', 'S': 'Ŝ', 'U': 'Ŭ',
}

// foldOrder fixes the order in which diacritics are appended to a class.
var foldOrder = []rune("cghjsuCGHJSU")

// FoldPattern rewrites a regular expression so that each of the letters
// c g h j s u, in either case, also matches its diacritic form: "cxi"
// becomes "[cĉ]xi". Escape sequences, \Q...\E literals, group flags and
// POSIX classes are copied untouched. Inside a bracket class the members
// are kept as written and the diacritic letters they cover, ranges
// included, are appended before the closing "]": "[s-z]" becomes "[s-zŝŭ]".
func FoldPattern(pattern string) string {
	var b, class strings.Builder
	b.Grow(len(pattern) * 2)
	w := &b
	inClass, dash := false, false
	var extra []rune
	for i := 0; i < len(pattern); {
		r, size := utf8.DecodeRuneInString(pattern[i:])
		switch {
		case !inClass && strings.HasPrefix(pattern[i:], `\Q`):
			n := len(pattern) - i
			if end := strings.Index(pattern[i+2:], `\E`); end >= 0 {
				n = end + 4
			}
			w.WriteString(pattern[i : i+n])
			i += n
			continue
		case r == '\\':
			n := escapeLen(pattern[i:])
			w.WriteString(pattern[i : i+n])
			i += n
			dash = false
			continue
		case !inClass && strings.HasPrefix(pattern[i:], "(?"):
			n := flagsLen(pattern[i:])
			w.WriteString(pattern[i : i+n])
			i += n
			continue
		case !inClass && r == '[':
			n := classOpenLen(pattern[i:])
			b.WriteString(pattern[i : i+n])
			for _, c := range pattern[i+1 : i+n] {
				extra = addFold(extra, c, c)
			}
			class.Reset()
			w = &class
			i += n
			inClass, dash = true, false
			continue
		case inClass && strings.HasPrefix(pattern[i:], "[:"):
			if end := strings.Index(pattern[i:], ":]"); end >= 0 {
				w.WriteString(pattern[i : i+end+2])
				i += end + 2
				dash = false
				continue
			}
		case inClass && r == ']':
			body := class.String()
			if dash && len(extra) > 0 {
				// a trailing "-" must stay last or it would open a range
				body = body[:len(body)-1] + string(extra) + "-"
			} else {
				body += string(extra)
			}
			b.WriteString(body)
			b.WriteByte(']')
			w = &b
			extra = extra[:0]
			inClass = false
			i += size
			continue
		case inClass:
			hi, n := r, size
			if j := i + size; j+1 < len(pattern) && pattern[j] == '-' && pattern[j+1] != ']' && pattern[j+1] != '\\' {
				var hs int
				hi, hs = utf8.DecodeRuneInString(pattern[j+1:])
				n = size + 1 + hs
			}
			extra = addFold(extra, r, hi)
			w.WriteString(pattern[i : i+n])
			dash = n == size && r == '-'
			i += n
			continue
		}
		if d, ok := folds[r]; ok {
			w.WriteByte('[')
			w.WriteRune(r)
			w.WriteRune(d)
			w.WriteByte(']')
		} else {
			w.WriteString(pattern[i : i+size])
		}
		i += size
	}
	if inClass {
		// unterminated; the compiler rejects it
		b.WriteString(class.String())
	}
	return b.String()
}

// addFold appends the diacritic of every foldable letter in lo..hi that is
// not yet in extra.
func addFold(extra []rune, lo, hi rune) []rune {
	for _, c := range foldOrder {
		if c < lo || c > hi {
			continue
		}
		if d := folds[c]; !slices.Contains(extra, d) {
			extra = append(extra, d)
		}
	}
	return extra
}

// escapeLen is the byte length of the escape sequence at the start of s,
// including forms such as \pL, \p{Greek}, \x4c and \x{10FFFF}.
func escapeLen(s string) int {
	if len(s) < 2 {
		return len(s)
	}
	_, size := utf8.DecodeRuneInString(s[1:])
	n := 1 + size
	switch s[1] {
	case 'p', 'P', 'x':
		if n < len(s) && s[n] == '{' {
			if end := strings.IndexByte(s[n:], '}'); end >= 0 {
				return n + end + 1
			}
			return len(s)
		}
		if s[1] == 'x' {
			return min(n+2, len(s))
		}
		if n < len(s) {
			_, size := utf8.DecodeRuneInString(s[n:])
			n += size
		}
	}
	return n
}

// flagsLen is the length of a group prefix such as "(?i", "(?P<name>" or
// "(?<name>". The closing ")" or ":" is left to the caller.
func flagsLen(s string) int {
	n := 2
	if n < len(s) && (s[n] == 'P' || s[n] == '<') {
		if end := strings.IndexByte(s[n:], '>'); end >= 0 {
			return n + end + 1
		}
		return len(s)
	}
	for n < len(s) && (s[n] == '-' || (s[n] >= 'a' && s[n] <= 'z') || (s[n] >= 'A' && s[n] <= 'Z')) {
		n++
	}
	return n
}

// classOpenLen covers "[", an optional "^" and a leading "]" that is a
// literal member of the class.
func classOpenLen(s string) int {
	n := 1
	if n < len(s) && s[n] == '^' {
		n++
	}
	if n < len(s) && s[n] == ']' {
		n++
	}
	return n
}
