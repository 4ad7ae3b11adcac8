package index

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sagerenn/vortaro/internal/lexicon"
)

// Artifact file names inside an artifacts directory.
const (
	EoToEnsFile = "eo_to_ens.json"
	EnToEosFile = "en_to_eos.json"
	EoWordsFile = "eos.txt"
	EnWordsFile = "ens.txt"
)

// Snapshot is the serialisable form of an Index.
type Snapshot struct {
	EoToEns map[string][]string `json:"eo_to_ens"`
	EnToEos map[string][]string `json:"en_to_eos"`
	EoWords []string            `json:"eos"`
	EnWords []string            `json:"ens"`
}

func (ix *Index) Snapshot() Snapshot {
	s := Snapshot{
		EoToEns: make(map[string][]string, len(ix.entries)),
		EnToEos: make(map[string][]string, len(ix.enToEos)),
		EoWords: append([]string(nil), ix.eoWords...),
		EnWords: append([]string(nil), ix.enWords...),
	}
	for _, e := range ix.entries {
		s.EoToEns[e.Eo] = append([]string(nil), e.Ens...)
	}
	for en, eos := range ix.enToEos {
		s.EnToEos[en] = append([]string(nil), eos...)
	}
	return s
}

// Entries lists the snapshot's entries in EoWords order. Headwords
// missing from EoWords follow in collation order.
func (s Snapshot) Entries() []lexicon.Entry {
	out := make([]lexicon.Entry, 0, len(s.EoToEns))
	seen := make(map[string]bool, len(s.EoToEns))
	for _, eo := range s.EoWords {
		ens, ok := s.EoToEns[eo]
		if !ok || seen[eo] {
			continue
		}
		seen[eo] = true
		out = append(out, lexicon.Entry{Eo: eo, Ens: ens})
	}
	rest := make([]string, 0)
	for eo := range s.EoToEns {
		if !seen[eo] {
			rest = append(rest, eo)
		}
	}
	SortWords(rest, Esperanto)
	for _, eo := range rest {
		out = append(out, lexicon.Entry{Eo: eo, Ens: s.EoToEns[eo]})
	}
	return out
}

// FromSnapshot rebuilds an Index. The eo_to_ens mapping is authoritative;
// en_to_eos only contributes the order of headwords per gloss, so a
// hand-edited snapshot cannot break the bidirectional consistency.
func FromSnapshot(s Snapshot, opts ...Option) *Index {
	ix := Build(s.Entries(), opts...)
	for en, eos := range ix.enToEos {
		want, ok := s.EnToEos[en]
		if !ok {
			continue
		}
		ix.enToEos[en] = reorder(eos, want)
	}
	return ix
}

// reorder puts the items of have that appear in want first, in want's
// order, followed by the rest of have.
func reorder(have, want []string) []string {
	in := make(map[string]bool, len(have))
	for _, h := range have {
		in[h] = true
	}
	out := make([]string, 0, len(have))
	used := make(map[string]bool, len(have))
	for _, w := range want {
		if in[w] && !used[w] {
			used[w] = true
			out = append(out, w)
		}
	}
	for _, h := range have {
		if !used[h] {
			out = append(out, h)
		}
	}
	return out
}

// WriteArtifacts writes the four artifact files into dir, creating it
// when needed. Every file is written to a temporary name and renamed.
func (ix *Index) WriteArtifacts(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	s := ix.Snapshot()
	if err := writeJSON(filepath.Join(dir, EoToEnsFile), s.EoToEns); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(dir, EnToEosFile), s.EnToEos); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, EoWordsFile), []byte(ix.eoText+"\n")); err != nil {
		return err
	}
	return writeFile(filepath.Join(dir, EnWordsFile), []byte(ix.enText+"\n"))
}

// ReadArtifacts loads a directory written by WriteArtifacts. Both JSON
// files are required; missing word lists are derived from the mappings.
func ReadArtifacts(dir string) (Snapshot, error) {
	var s Snapshot
	if err := readJSON(filepath.Join(dir, EoToEnsFile), &s.EoToEns); err != nil {
		return Snapshot{}, err
	}
	if err := readJSON(filepath.Join(dir, EnToEosFile), &s.EnToEos); err != nil {
		return Snapshot{}, err
	}
	var err error
	if s.EoWords, err = readLines(filepath.Join(dir, EoWordsFile)); err != nil {
		return Snapshot{}, err
	}
	if s.EnWords, err = readLines(filepath.Join(dir, EnWordsFile)); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return writeFile(path, append(data, '\n'))
}

func writeFile(path string, data []byte) error {
	tmp := path + "." + time.Now().Format("20060102150405") + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

// readLines returns the trimmed non-empty lines of path, or nil when the
// file does not exist.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()
	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
