package history

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/creasty/defaults"
)

var _ Store = &FileStore{}

// FileStore keeps entries in a JSON file.
// Every call reads the file and every change rewrites it.
type FileStore struct {
	mu    sync.Mutex
	path  string
	limit int
}

// NewFileStore opens the store at path. The file is created on first write.
// opts may be nil.
func NewFileStore(path string, opts *Options) (*FileStore, error) {
	if opts == nil {
		opts = new(Options)
	}
	if err := defaults.Set(opts); err != nil {
		return nil, err
	}
	if path == "" {
		return nil, errors.New("empty history path")
	}
	return &FileStore{path: path, limit: opts.Limit}, nil
}

// Path returns the file backing the store.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) load() (entries, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	if len(b) == 0 {
		return nil, nil
	}
	var es entries
	if err := json.Unmarshal(b, &es); err != nil {
		return nil, err
	}
	return es, nil
}

func (s *FileStore) save(es entries) error {
	if es == nil {
		es = entries{}
	}
	b, err := json.MarshalIndent(es, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Add implements Store.
func (s *FileStore) Add(e *Entry) error {
	if err := checkEntry(e); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	es, err := s.load()
	if err != nil {
		return err
	}
	return s.save(es.add(*e, s.limit))
}

// List implements Store.
func (s *FileStore) List() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	es, err := s.load()
	if err != nil {
		return nil, err
	}
	return es.clone(), nil
}

// Get implements Store.
func (s *FileStore) Get(id string) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	es, err := s.load()
	if err != nil {
		return nil, err
	}
	if i := es.index(id); i >= 0 {
		return &es[i], nil
	}
	return nil, ErrNotFound
}

// Delete implements Store.
func (s *FileStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	es, err := s.load()
	if err != nil {
		return err
	}
	i := es.index(id)
	if i < 0 {
		return ErrNotFound
	}
	return s.save(append(es[:i], es[i+1:]...))
}

// Clear implements Store.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(nil)
}
