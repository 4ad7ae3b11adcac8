package registry

import (
	"errors"
	"sync"

	"github.com/sagerenn/vortaro/internal/dict"
	"github.com/sagerenn/vortaro/internal/lexicon"
)

type Registry struct {
	mu    sync.RWMutex
	byID  map[string]dict.Source
	order []dict.Source
}

func New() *Registry {
	return &Registry{
		byID:  make(map[string]dict.Source),
		order: nil,
	}
}

func (r *Registry) Add(s dict.Source) error {
	if s == nil {
		return errors.New("source is nil")
	}
	id := s.ID()
	if id == "" {
		return errors.New("source id is empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[id]; exists {
		return errors.New("duplicate source id: " + id)
	}
	r.byID[id] = s
	r.order = append(r.order, s)
	return nil
}

func (r *Registry) Get(id string) (dict.Source, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byID[id]
	return s, ok
}

func (r *Registry) List() []dict.Source {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]dict.Source, 0, len(r.order))
	out = append(out, r.order...)
	return out
}

func (r *Registry) MustAddAll(sources []dict.Source) error {
	for _, s := range sources {
		if err := r.Add(s); err != nil {
			return err
		}
	}
	return nil
}

// Entries concatenates the entries of every source in registration order,
// ready for index.Build.
func (r *Registry) Entries() []lexicon.Entry {
	sources := r.List()
	n := 0
	for _, s := range sources {
		n += len(s.Entries())
	}
	out := make([]lexicon.Entry, 0, n)
	for _, s := range sources {
		out = append(out, s.Entries()...)
	}
	return out
}
