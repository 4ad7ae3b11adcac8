// Package espdic loads ESPDIC-style text dictionaries, one
// "<esperanto> : <english>, ..." entry per line.
package espdic

import (
	"errors"
	"fmt"
	"os"

	"github.com/sagerenn/vortaro/internal/dict"
	"github.com/sagerenn/vortaro/internal/indexcache"
	"github.com/sagerenn/vortaro/internal/lexicon"
)

const Type = "espdic"

type Dictionary struct {
	id        string
	name      string
	encoding  string
	res       lexicon.Result
	fromCache bool
}

// Load parses the file at path, decoding it as dict.Decoder does.
func Load(id, name, path, encoding string) (*Dictionary, error) {
	if id == "" || name == "" {
		return nil, errors.New("id and name are required")
	}
	encoding = dict.NormalizeEncoding(encoding)
	key := indexcache.Key{Kind: Type, Encoding: encoding}
	if idx, ok, err := indexcache.Load(path, key); err == nil && ok {
		return &Dictionary{id: id, name: name, encoding: encoding, res: idx.Result(), fromCache: true}, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r, err := dict.Decoder(file, encoding)
	if err != nil {
		return nil, err
	}
	res, err := lexicon.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	_ = indexcache.Save(path, key, res)

	return &Dictionary{id: id, name: name, encoding: encoding, res: res}, nil
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

// FromCache reports whether the entries came from the sidecar cache.
func (d *Dictionary) FromCache() bool {
	return d.fromCache
}
