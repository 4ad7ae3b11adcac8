// Package dsl reads ABBYY Lingvo DSL dictionaries as lexicon sources.
//
// A card is one or more headword lines starting in the first column,
// followed by indented definition lines; a blank line ends it. Markup
// such as [m1], [trn] or [b] is dropped; {{...}} comments, [s] media,
// [ex] examples, [p] labels and [com] notes are removed with their text.
// What is left is split into glosses.
package dsl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	gd "github.com/sagerenn/vortaro/internal/dict"
	"github.com/sagerenn/vortaro/internal/indexcache"
	"github.com/sagerenn/vortaro/internal/lexicon"
)

const Type = "dsl"

var ErrOrphanDefinition = errors.New("definition without headword")

var (
	commentRe = regexp.MustCompile(`\{\{.*?\}\}`)
	// media, examples, labels and editorial comments carry no glosses
	dropRe    = regexp.MustCompile(`\[(?:s|ex|com|p)\].*?\[/(?:s|ex|com|p)\]`)
	tagRe     = regexp.MustCompile(`\[/?[a-z*'!][^\]]*\]`)
	numberRe  = regexp.MustCompile(`^\d+[.)]\s*`)
)

type Dictionary struct {
	id        string
	name      string
	res       lexicon.Result
	fromCache bool
}

// Load parses the DSL file at path. Lingvo ships most DSL files as UTF-16
// with a byte order mark, which is honoured whatever encoding says.
func Load(id, name, path, encoding string) (*Dictionary, error) {
	if id == "" || name == "" {
		return nil, errors.New("id and name are required")
	}
	encoding = gd.NormalizeEncoding(encoding)
	key := indexcache.Key{Kind: Type, Encoding: encoding}
	if idx, ok, err := indexcache.Load(path, key); err == nil && ok {
		return &Dictionary{id: id, name: name, res: idx.Result(), fromCache: true}, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r, err := gd.Decoder(file, encoding)
	if err != nil {
		return nil, err
	}
	res, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	_ = indexcache.Save(path, key, res)

	return &Dictionary{id: id, name: name, res: res}, nil
}

// Parse reads DSL cards from r. Header lines (#NAME, #INDEX_LANGUAGE, ...)
// are ignored. A card whose definition yields no gloss is reported in
// Result.Skipped against its first headword line.
func Parse(r io.Reader) (lexicon.Result, error) {
	var res lexicon.Result
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		heads     []string
		headLine  int
		defLines  []string
		inDefBody bool
	)
	flush := func() {
		if len(heads) > 0 {
			ens := gd.Glosses(strings.Join(defLines, "\n"))
			if len(ens) == 0 {
				res.Skipped = append(res.Skipped, lexicon.Skipped{Line: headLine, Text: heads[0], Reason: lexicon.ErrNoGlosses.Error()})
			} else {
				for _, h := range heads {
					res.Entries = append(res.Entries, lexicon.Entry{Eo: h, Ens: ens})
				}
			}
		}
		heads, defLines, inDefBody = nil, nil, false
	}

	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimRight(scanner.Text(), "\r")
		switch {
		case strings.TrimSpace(line) == "":
			flush()
		case line[0] == ' ' || line[0] == '\t':
			if len(heads) == 0 {
				res.Skipped = append(res.Skipped, lexicon.Skipped{Line: n, Text: line, Reason: ErrOrphanDefinition.Error()})
				continue
			}
			inDefBody = true
			if s := cleanDefinition(line); s != "" {
				defLines = append(defLines, s)
			}
		case line[0] == '#' && len(heads) == 0:
			// header
		default:
			if inDefBody {
				flush()
			}
			h := cleanHeadword(line)
			if h == "" {
				res.Skipped = append(res.Skipped, lexicon.Skipped{Line: n, Text: line, Reason: lexicon.ErrEmptyHeadword.Error()})
				continue
			}
			if len(heads) == 0 {
				headLine = n
			}
			heads = append(heads, h)
		}
	}
	if err := scanner.Err(); err != nil {
		return res, err
	}
	flush()
	return res, nil
}

// cleanHeadword keeps the text of {unsorted} parts and drops escapes.
func cleanHeadword(s string) string {
	s = strings.NewReplacer(`\{`, "\x00", `\}`, "\x01", "{", "", "}", "").Replace(s)
	s = strings.NewReplacer("\x00", "{", "\x01", "}").Replace(s)
	return strings.TrimSpace(norm.NFC.String(unescape(s)))
}

func cleanDefinition(s string) string {
	s = strings.NewReplacer(`\[`, "\x00", `\]`, "\x01").Replace(strings.TrimSpace(s))
	s = commentRe.ReplaceAllString(s, "")
	s = dropRe.ReplaceAllString(s, "")
	s = tagRe.ReplaceAllString(s, "")
	s = strings.NewReplacer("\x00", "[", "\x01", "]").Replace(s)
	s = numberRe.ReplaceAllString(strings.TrimSpace(unescape(s)), "")
	return strings.TrimSpace(norm.NFC.String(s))
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func (d *Dictionary) ID() string {
	return d.id
}

func (d *Dictionary) Name() string {
	return d.name
}

func (d *Dictionary) Type() string {
	return Type
}

func (d *Dictionary) Entries() []lexicon.Entry {
	return d.res.Entries
}

func (d *Dictionary) Skipped() []lexicon.Skipped {
	return d.res.Skipped
}

func (d *Dictionary) FromCache() bool {
	return d.fromCache
}
