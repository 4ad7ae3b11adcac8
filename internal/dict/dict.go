package dict

import "github.com/sagerenn/vortaro/internal/lexicon"

// Source is one loaded lexicon: a dictionary file turned into
// headword/gloss entries.
type Source interface {
	ID() string
	Name() string
	Type() string
	Entries() []lexicon.Entry
	Skipped() []lexicon.Skipped
}

// Info summarises a Source for listings.
type Info struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Entries int    `json:"entries"`
	Skipped int    `json:"skipped"`
}

func InfoOf(s Source) Info {
	return Info{
		ID:      s.ID(),
		Name:    s.Name(),
		Type:    s.Type(),
		Entries: len(s.Entries()),
		Skipped: len(s.Skipped()),
	}
}

// Static is a Source over entries already in memory.
type Static struct {
	SourceID   string
	SourceName string
	SourceType string
	Lexicon    lexicon.Result
}

func (s *Static) ID() string { return s.SourceID }
func (s *Static) Name() string { return s.SourceName }
func (s *Static) Type() string { return s.SourceType }
func (s *Static) Entries() []lexicon.Entry { return s.Lexicon.Entries }
func (s *Static) Skipped() []lexicon.Skipped { return s.Lexicon.Skipped }
