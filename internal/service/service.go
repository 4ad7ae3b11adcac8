package service

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/sagerenn/vortaro/internal/cache"
	"github.com/sagerenn/vortaro/internal/describe"
	"github.com/sagerenn/vortaro/internal/dict"
	"github.com/sagerenn/vortaro/internal/dict/registry"
	"github.com/sagerenn/vortaro/internal/index"
	"github.com/sagerenn/vortaro/internal/morph"
	"github.com/sagerenn/vortaro/internal/observability"
	"github.com/sagerenn/vortaro/internal/search"
)

type Options struct {
	Fold         bool
	DefaultLimit int
	MaxLimit     int
	CacheSize    int
	CacheTTL     time.Duration
	MemoSize     int
}

func DefaultOptions() Options {
	return Options{
		Fold:         true,
		DefaultLimit: 50,
		MaxLimit:     1000,
		CacheSize:    1024,
		CacheTTL:     5 * time.Minute,
		MemoSize:     index.DefaultMemoSize,
	}
}

type Service struct {
	reg    *registry.Registry
	ix     *index.Index
	engine *search.Engine
	cache  *cache.Cache[SearchResult]

	defaultLimit int
	maxLimit     int
}

// Hit is one search result row.
type Hit struct {
	Eo      string          `json:"eo"`
	Ens     []string        `json:"ens"`
	Summary string          `json:"summary"`
	Class   morph.WordClass `json:"class"`
}

type SearchResult struct {
	Query   string       `json:"query"`
	Scope   search.Scope `json:"scope"`
	Total   int          `json:"total"`
	Invalid bool         `json:"invalid_pattern"`
	Hits    []Hit        `json:"hits"`
}

type Stats struct {
	Sources int `json:"sources"`
	Entries int `json:"entries"`
	EoWords int `json:"eo_words"`
	EnWords int `json:"en_words"`
	Cached  int `json:"cached_searches"`
}

// New indexes every entry of reg. Sources added to reg afterwards are not
// seen.
func New(reg *registry.Registry, opts Options) *Service {
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 50
	}
	ix := index.Build(reg.Entries(), index.WithMemoSize(opts.MemoSize))
	return &Service{
		reg:          reg,
		ix:           ix,
		engine:       search.New(ix, search.WithFold(opts.Fold)),
		cache:        cache.New[SearchResult](opts.CacheSize, opts.CacheTTL),
		defaultLimit: opts.DefaultLimit,
		maxLimit:     opts.MaxLimit,
	}
}

func (s *Service) Index() *index.Index {
	return s.ix
}

// Warm precomputes headword analyses; see index.Index.Warm.
func (s *Service) Warm(workers int) int {
	return s.ix.Warm(workers)
}

// Search runs pattern over scope and returns at most limit hits. Total
// counts every match before the limit. An invalid pattern is not an
// error: the result is empty and marked Invalid.
func (s *Service) Search(pattern string, scope search.Scope, limit int) SearchResult {
	limit = s.clamp(limit)
	observability.SearchesTotal.Add(1)
	cacheKey := makeKey("search", pattern, scope, limit)
	if res, ok := s.cache.Get(cacheKey); ok {
		observability.SearchCacheHits.Add(1)
		return res
	}

	res := SearchResult{Query: pattern, Scope: scope, Hits: []Hit{}}
	entries, err := s.engine.Find(pattern, scope)
	if err != nil {
		observability.InvalidPatterns.Add(1)
		res.Invalid = true
		s.cache.Set(cacheKey, res)
		return res
	}
	res.Total = len(entries)
	if len(entries) > limit {
		entries = entries[:limit]
	}
	for _, e := range entries {
		res.Hits = append(res.Hits, Hit{
			Eo:      e.Eo,
			Ens:     e.Ens,
			Summary: strings.Join(e.Ens, ", "),
			Class:   s.ix.Analyze(e.Eo).Class,
		})
	}
	s.cache.Set(cacheKey, res)
	return res
}

// Describe builds the description of headword eo with labels in lang.
func (s *Service) Describe(eo string, lang language.Tag) (describe.Description, bool) {
	e, ok := s.ix.Entry(eo)
	if !ok {
		return describe.Description{}, false
	}
	observability.Descriptions.Add(1)
	return describe.Describe(e, s.ix.Analyze(e.Eo), describe.WithLanguage(lang)), true
}

// Analyze classifies any word. Headwords go through the index memo,
// other input is analyzed directly so it never evicts them.
func (s *Service) Analyze(word string) morph.Analysis {
	word = strings.TrimSpace(word)
	if _, ok := s.ix.Entry(word); ok {
		return s.ix.Analyze(word)
	}
	return morph.Analyze(word)
}

func (s *Service) Sources() []dict.Info {
	sources := s.reg.List()
	out := make([]dict.Info, 0, len(sources))
	for _, src := range sources {
		out = append(out, dict.InfoOf(src))
	}
	return out
}

func (s *Service) Stats() Stats {
	return Stats{
		Sources: len(s.reg.List()),
		Entries: s.ix.Len(),
		EoWords: len(s.ix.EoWords()),
		EnWords: len(s.ix.EnWords()),
		Cached:  s.cache.Len(),
	}
}

func (s *Service) clamp(limit int) int {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if s.maxLimit > 0 && limit > s.maxLimit {
		limit = s.maxLimit
	}
	return limit
}

func makeKey(op, q string, scope search.Scope, limit int) string {
	return op + "|" + q + "|" + scope.String() + "|" + strconv.Itoa(limit)
}
