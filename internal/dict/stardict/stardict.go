// Package stardict reads StarDict dictionaries as lexicon sources. Every
// index word becomes a headword; its definition text, stripped of
// markup, is split into glosses.
package stardict

import (
	"os"
	"path/filepath"
	"strings"

	std "github.com/ianlewis/go-stardict"
	"github.com/ianlewis/go-stardict/dict"
	"github.com/ianlewis/go-stardict/idx"
	"golang.org/x/text/unicode/norm"

	gd "github.com/sagerenn/vortaro/internal/dict"
	"github.com/sagerenn/vortaro/internal/indexcache"
	"github.com/sagerenn/vortaro/internal/lexicon"
)

const Type = "stardict"

type Dictionary struct {
	id        string
	name      string
	res       lexicon.Result
	fromCache bool
}

func Load(id, name, ifoPath string) (*Dictionary, error) {
	key := indexcache.Key{Kind: Type, Files: sourceFiles(ifoPath)}
	if cached, ok, err := indexcache.Load(ifoPath, key); err == nil && ok {
		if name == "" {
			name = id
		}
		return &Dictionary{id: id, name: name, res: cached.Result(), fromCache: true}, nil
	}

	sd, err := std.Open(ifoPath, nil)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = sd.Bookname()
	}
	d, err := sd.Dict()
	if err != nil {
		return nil, err
	}

	sc, err := sd.IndexScanner()
	if err != nil {
		return nil, err
	}
	defer sc.Close()

	var res lexicon.Result
	n := 0
	for sc.Scan() {
		n++
		w := sc.Word()
		head := strings.TrimSpace(norm.NFC.String(w.Word))
		if head == "" {
			res.Skipped = append(res.Skipped, lexicon.Skipped{Line: n, Text: w.Word, Reason: lexicon.ErrEmptyHeadword.Error()})
			continue
		}
		word, err := d.Word(&idx.Word{Word: w.Word, Offset: w.Offset, Size: w.Size})
		if err != nil {
			res.Skipped = append(res.Skipped, lexicon.Skipped{Line: n, Text: w.Word, Reason: err.Error()})
			continue
		}
		ens := gd.Glosses(norm.NFC.String(dataText(word.Data)))
		if len(ens) == 0 {
			res.Skipped = append(res.Skipped, lexicon.Skipped{Line: n, Text: w.Word, Reason: lexicon.ErrNoGlosses.Error()})
			continue
		}
		res.Entries = append(res.Entries, lexicon.Entry{Eo: head, Ens: ens})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	_ = indexcache.Save(ifoPath, key, res)

	return &Dictionary{id: id, name: name, res: res}, nil
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

// dataText joins the textual parts of a definition, one per line.
// Phonetics, pictures, sounds and resource lists carry no glosses.
func dataText(data []*dict.Data) string {
	var b strings.Builder
	for _, d := range data {
		s := strings.TrimSpace(renderText(d))
		if s == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(s)
	}
	return b.String()
}

func renderText(d *dict.Data) string {
	switch d.Type {
	case dict.UTFTextType, dict.LocaleTextType, dict.WordNetType, dict.MediaWikiType:
		return normalizeNewlines(string(d.Data))
	case dict.HTMLType, dict.PangoTextType, dict.XDXFType, dict.PowerWordType:
		return gd.HTMLText(normalizeNewlines(string(d.Data)))
	default:
		return ""
	}
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// sourceFiles lists the files a cached parse depends on: the .ifo plus
// whichever index and dictionary files sit next to it.
func sourceFiles(ifoPath string) []string {
	paths := []string{ifoPath}
	if p, err := findPath(ifoPath, idxExts); err == nil {
		paths = append(paths, p)
	}
	if p, err := findPath(ifoPath, dictExts); err == nil {
		paths = append(paths, p)
	}
	return paths
}

var (
	idxExts  = []string{".idx", ".idx.gz", ".idx.GZ", ".idx.dz", ".idx.DZ", ".IDX", ".IDX.gz", ".IDX.GZ", ".IDX.dz", ".IDX.DZ"}
	dictExts = []string{".dict", ".dict.dz", ".dict.DZ", ".DICT", ".DICT.dz", ".DICT.DZ"}
)

func findPath(ifoPath string, exts []string) (string, error) {
	base := strings.TrimSuffix(ifoPath, filepath.Ext(ifoPath))
	for _, e := range exts {
		p := base + e
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", os.ErrNotExist
}
