// Package mdict reads MDict (.mdx) dictionaries as lexicon sources.
package mdict

import (
	"reflect"
	"sort"
	"strings"

	"github.com/ChaosNyaruko/ondict/decoder"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/unicode/norm"

	"github.com/sagerenn/vortaro/internal/dict"
	"github.com/sagerenn/vortaro/internal/indexcache"
	"github.com/sagerenn/vortaro/internal/lexicon"
)

const Type = "mdict"

// maxRedirects bounds @@@LINK chains.
const maxRedirects = 8

type Dictionary struct {
	id        string
	name      string
	res       lexicon.Result
	fromCache bool
}

func Load(id, name, path string) (*Dictionary, error) {
	if name == "" {
		name = id
	}
	key := indexcache.Key{Kind: Type}
	if cached, ok, err := indexcache.Load(path, key); err == nil && ok {
		return &Dictionary{id: id, name: name, res: cached.Result(), fromCache: true}, nil
	}

	md := &decoder.MDict{}
	if err := md.Decode(path, false); err != nil {
		return nil, err
	}
	_ = md.Keys() // populate keymap
	r := &reader{
		keymap: mdictKeyMap(md),
		utf16:  strings.EqualFold(mdictEncoding(md), "UTF-16"),
		read:   md.ReadAtOffset,
	}

	words := make([]string, 0, len(r.keymap))
	for w := range r.keymap {
		words = append(words, w)
	}
	sort.Strings(words)

	var res lexicon.Result
	for i, w := range words {
		head := strings.TrimSpace(norm.NFC.String(w))
		if head == "" {
			res.Skipped = append(res.Skipped, lexicon.Skipped{Line: i + 1, Text: w, Reason: lexicon.ErrEmptyHeadword.Error()})
			continue
		}
		ens := dict.Glosses(norm.NFC.String(r.text(w)))
		if len(ens) == 0 {
			res.Skipped = append(res.Skipped, lexicon.Skipped{Line: i + 1, Text: w, Reason: lexicon.ErrNoGlosses.Error()})
			continue
		}
		res.Entries = append(res.Entries, lexicon.Entry{Eo: head, Ens: ens})
	}

	_ = indexcache.Save(path, key, res)

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

// reader resolves the article text of a key, following redirects.
type reader struct {
	keymap map[string][]uint64
	utf16  bool
	read   func(offset int) []byte
}

func (r *reader) text(word string) string {
	return r.follow(word, 0, make(map[string]bool))
}

func (r *reader) follow(word string, depth int, visited map[string]bool) string {
	if visited[word] || depth > maxRedirects {
		return ""
	}
	visited[word] = true
	var parts []string
	for _, off := range r.keymap[word] {
		raw := r.decode(r.read(int(off)))
		if target := parseRedirect(raw); target != "" {
			if s := r.follow(target, depth+1, visited); s != "" {
				parts = append(parts, s)
			}
			continue
		}
		if s := strings.TrimSpace(dict.HTMLText(strings.TrimRight(raw, "\x00"))); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

func (r *reader) decode(b []byte) string {
	if !r.utf16 {
		return string(b)
	}
	out, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(b)
	if err != nil {
		return ""
	}
	return string(out)
}

func parseRedirect(raw string) string {
	if !strings.HasPrefix(raw, "@@@LINK=") {
		return ""
	}
	target := strings.TrimPrefix(raw, "@@@LINK=")
	target = strings.TrimRight(target, "\x00")
	target = strings.TrimSpace(strings.TrimRight(target, "\r\n"))
	return target
}

// The decoder keeps the encoding and key map unexported.
func mdictEncoding(m *decoder.MDict) string {
	v := reflect.ValueOf(m).Elem().FieldByName("encoding")
	if v.IsValid() && v.Kind() == reflect.String {
		return v.String()
	}
	return "UTF-8"
}

func mdictKeyMap(m *decoder.MDict) map[string][]uint64 {
	v := reflect.ValueOf(m).Elem().FieldByName("keymap")
	if !v.IsValid() || v.IsNil() {
		return nil
	}
	out := make(map[string][]uint64)
	for _, k := range v.MapKeys() {
		key := k.String()
		vals := v.MapIndex(k)
		offs := make([]uint64, 0, vals.Len())
		for i := 0; i < vals.Len(); i++ {
			offs = append(offs, uint64(vals.Index(i).Uint()))
		}
		out[key] = offs
	}
	return out
}
