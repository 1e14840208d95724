package history

import (
	"sync"

	"github.com/creasty/defaults"
)

var _ Store = &MemoryStore{}

// MemoryStore keeps entries in memory.
type MemoryStore struct {
	mu      sync.RWMutex
	limit   int
	entries entries
}

// NewMemoryStore creates an empty MemoryStore. opts may be nil.
func NewMemoryStore(opts *Options) *MemoryStore {
	if opts == nil {
		opts = new(Options)
	}
	if err := defaults.Set(opts); err != nil {
		panic(err)
	}
	return &MemoryStore{limit: opts.Limit}
}

// Add implements Store.
func (s *MemoryStore) Add(e *Entry) error {
	if err := checkEntry(e); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = s.entries.add(*e, s.limit)
	return nil
}

// List implements Store.
func (s *MemoryStore) List() ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries.clone(), nil
}

// Get implements Store.
func (s *MemoryStore) Get(id string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.entries.index(id); i >= 0 {
		e := s.entries[i]
		return &e, nil
	}
	return nil, ErrNotFound
}

// Delete implements Store.
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.entries.index(id)
	if i < 0 {
		return ErrNotFound
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	return nil
}

// Clear implements Store.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	return nil
}
