// Package lexicon parses ESPDIC-style dictionary text, one entry per line:
//
//	<esperanto headword> : <gloss>, <gloss>, ...
//
// Commas inside parentheses do not split glosses.
package lexicon

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	ErrNoSeparator   = errors.New("missing ':' separator")
	ErrEmptyHeadword = errors.New("empty headword")
	ErrNoGlosses     = errors.New("no glosses")
	ErrComment       = errors.New("comment")
)

// Entry is a headword with its English glosses in source order.
// Two entries are the same entry when their Eo fields are equal.
type Entry struct {
	Eo  string   `json:"eo"`
	Ens []string `json:"ens"`
}

// Skipped describes a source line that did not parse.
type Skipped struct {
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

type Result struct {
	Entries []Entry
	Skipped []Skipped
}

// ParseLine parses a single "<eo> : <ens>" line. A missing space around
// the colon is tolerated.
func ParseLine(line string) (Entry, error) {
	line = strings.TrimSpace(norm.NFC.String(line))
	var eo, rest string
	if i := strings.Index(line, " : "); i >= 0 {
		eo, rest = line[:i], line[i+3:]
	} else if i := strings.IndexByte(line, ':'); i >= 0 {
		eo, rest = line[:i], line[i+1:]
	} else {
		return Entry{}, ErrNoSeparator
	}
	eo = strings.TrimSpace(eo)
	if eo == "" {
		return Entry{}, ErrEmptyHeadword
	}
	ens := SplitGlosses(rest)
	if len(ens) == 0 {
		return Entry{}, ErrNoGlosses
	}
	return Entry{Eo: eo, Ens: ens}, nil
}

// SplitGlosses splits s on commas that are not nested in parentheses,
// trims every gloss and drops the empty ones.
func SplitGlosses(s string) []string {
	var (
		out   []string
		depth int
		start int
	)
	flush := func(end int) {
		if g := strings.TrimSpace(s[start:end]); g != "" {
			out = append(out, g)
		}
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				flush(i)
				start = i + 1
			}
		}
	}
	flush(len(s))
	return out
}

// Parse reads every line of r. Blank lines are ignored. Lines that do not
// parse, including '#' comment lines, are reported in Result.Skipped.
// The returned error is only set when reading r fails.
func Parse(r io.Reader) (Result, error) {
	var res Result
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for scanner.Scan() {
		n++
		raw := scanner.Text()
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			res.Skipped = append(res.Skipped, Skipped{Line: n, Text: raw, Reason: ErrComment.Error()})
			continue
		}
		e, err := ParseLine(line)
		if err != nil {
			res.Skipped = append(res.Skipped, Skipped{Line: n, Text: raw, Reason: err.Error()})
			continue
		}
		res.Entries = append(res.Entries, e)
	}
	if err := scanner.Err(); err != nil {
		return res, err
	}
	return res, nil
}

func ParseString(s string) Result {
	res, _ := Parse(strings.NewReader(s))
	return res
}

// Merge folds entries sharing a headword into the first one, appending
// glosses not seen yet. Order of first appearance is kept.
func Merge(entries []Entry) []Entry {
	pos := make(map[string]int, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		i, ok := pos[e.Eo]
		if !ok {
			pos[e.Eo] = len(out)
			out = append(out, Entry{Eo: e.Eo, Ens: appendNew(nil, e.Ens)})
			continue
		}
		out[i].Ens = appendNew(out[i].Ens, e.Ens)
	}
	return out
}

func appendNew(dst, src []string) []string {
	for _, s := range src {
		dup := false
		for _, d := range dst {
			if d == s {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, s)
		}
	}
	return dst
}
