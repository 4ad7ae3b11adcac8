package loader

import (
	"fmt"
	"strings"

	"github.com/sagerenn/vortaro/internal/config"
	"github.com/sagerenn/vortaro/internal/dict"
	"github.com/sagerenn/vortaro/internal/dict/dsl"
	"github.com/sagerenn/vortaro/internal/dict/espdic"
	"github.com/sagerenn/vortaro/internal/dict/mdict"
	"github.com/sagerenn/vortaro/internal/dict/stardict"
	"github.com/sagerenn/vortaro/internal/index"
	"github.com/sagerenn/vortaro/internal/lexicon"
)

const ArtifactsType = "artifacts"

type Result struct {
	Sources []dict.Source
	Errs    []error
}

// LoadAll loads every configured source. A source that fails is reported
// in Errs and does not stop the others.
func LoadAll(sources []config.SourceConfig) Result {
	res := Result{
		Sources: make([]dict.Source, 0, len(sources)),
		Errs:    nil,
	}
	for _, s := range sources {
		loaded, err := Load(s)
		if err != nil {
			res.Errs = append(res.Errs, fmt.Errorf("load %s: %w", s.ID, err))
			continue
		}
		res.Sources = append(res.Sources, loaded)
	}
	return res
}

func Load(s config.SourceConfig) (dict.Source, error) {
	if strings.TrimSpace(s.Path) == "" {
		return nil, fmt.Errorf("source %q missing path", s.ID)
	}
	if strings.TrimSpace(s.ID) == "" || strings.TrimSpace(s.Name) == "" {
		return nil, fmt.Errorf("source entry missing id/name for path %q", s.Path)
	}
	typ := strings.ToLower(strings.TrimSpace(s.Type))
	if typ == "" {
		typ = config.DetectType(s.Path)
	}
	var (
		loaded dict.Source
		err    error
	)
	switch typ {
	case espdic.Type, "txt", "text":
		loaded, err = espdic.Load(s.ID, s.Name, s.Path, s.Encoding)
	case stardict.Type, "ifo":
		loaded, err = stardict.Load(s.ID, s.Name, s.Path)
	case mdict.Type, "mdx":
		loaded, err = mdict.Load(s.ID, s.Name, s.Path)
	case dsl.Type, "lingvo":
		loaded, err = dsl.Load(s.ID, s.Name, s.Path, s.Encoding)
	case ArtifactsType:
		loaded, err = loadArtifacts(s)
	default:
		err = fmt.Errorf("unsupported source type: %q", typ)
	}
	if err != nil {
		return nil, err
	}
	return loaded, nil
}

func loadArtifacts(s config.SourceConfig) (dict.Source, error) {
	snap, err := index.ReadArtifacts(s.Path)
	if err != nil {
		return nil, err
	}
	return &dict.Static{
		SourceID:   s.ID,
		SourceName: s.Name,
		SourceType: ArtifactsType,
		Lexicon:    lexicon.Result{Entries: snap.Entries()},
	}, nil
}
