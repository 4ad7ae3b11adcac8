// Package indexcache keeps parsed lexicon sources next to their files so
// a restart does not parse them again. A cache file is only used while
// every file it was built from keeps its size and modification time.
package indexcache

import (
	"encoding/gob"
	"errors"
	"os"
	"path/filepath"

	"github.com/sagerenn/vortaro/internal/lexicon"
)

const currentVersion = 1

type Signature struct {
	Path  string
	Size  int64
	Mtime int64
}

type Index struct {
	Version  int
	Kind     string
	Encoding string
	Sources  []Signature

	Entries []lexicon.Entry
	Skipped []lexicon.Skipped
}

// Key identifies what a cache was built from: the source kind, the text
// encoding used to read it and the files it depends on. Files defaults to
// the source path alone.
type Key struct {
	Kind     string
	Encoding string
	Files    []string
}

func Path(sourcePath string) string {
	return sourcePath + ".vortaro.idx"
}

func Load(sourcePath string, key Key) (*Index, bool, error) {
	f, err := os.Open(Path(sourcePath))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	dec := gob.NewDecoder(f)
	var idx Index
	if err := dec.Decode(&idx); err != nil {
		return nil, false, err
	}
	if idx.Version != currentVersion || idx.Kind != key.Kind || idx.Encoding != key.Encoding {
		return nil, false, nil
	}
	sigs, err := Signatures(files(sourcePath, key)...)
	if err != nil {
		return nil, false, nil
	}
	if !sameSources(idx.Sources, sigs) {
		return nil, false, nil
	}
	return &idx, true, nil
}

func Save(sourcePath string, key Key, res lexicon.Result) error {
	sigs, err := Signatures(files(sourcePath, key)...)
	if err != nil {
		return err
	}
	idx := Index{
		Version:  currentVersion,
		Kind:     key.Kind,
		Encoding: key.Encoding,
		Sources:  sigs,
		Entries:  res.Entries,
		Skipped:  res.Skipped,
	}
	idxPath := Path(sourcePath)
	tmp, err := os.CreateTemp(filepath.Dir(idxPath), filepath.Base(idxPath)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	enc := gob.NewEncoder(tmp)
	if err := enc.Encode(&idx); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, idxPath); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

func (idx *Index) Result() lexicon.Result {
	return lexicon.Result{Entries: idx.Entries, Skipped: idx.Skipped}
}

// Signatures stats every path.
func Signatures(paths ...string) ([]Signature, error) {
	out := make([]Signature, 0, len(paths))
	for _, p := range paths {
		clean := filepath.Clean(p)
		info, err := os.Stat(clean)
		if err != nil {
			return nil, err
		}
		out = append(out, Signature{Path: clean, Size: info.Size(), Mtime: info.ModTime().UnixNano()})
	}
	return out, nil
}

func files(sourcePath string, key Key) []string {
	if len(key.Files) == 0 {
		return []string{sourcePath}
	}
	return key.Files
}

func sameSources(a, b []Signature) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if filepath.Clean(a[i].Path) != filepath.Clean(b[i].Path) {
			return false
		}
		if a[i].Size != b[i].Size || a[i].Mtime != b[i].Mtime {
			return false
		}
	}
	return true
}
