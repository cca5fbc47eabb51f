package content

import (
	"log"
	"sync"
	"time"
)

// Store holds the current Library and swaps it on reload. Readers keep the
// Library they got; a reload never mutates one in place.
type Store struct {
	dir string

	mu       sync.RWMutex
	lib      *Library
	loadedAt time.Time
}

// NewStore loads dir once and returns a store serving it.
func NewStore(dir string) (*Store, error) {
	s := &Store{dir: dir}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewStaticStore wraps an already built library.
func NewStaticStore(lib *Library) *Store {
	if lib == nil {
		lib = NewLibrary(Data{})
	}
	return &Store{lib: lib, loadedAt: time.Now()}
}

// Dir returns the watched data directory.
func (s *Store) Dir() string {
	return s.dir
}

// Library returns the current library.
func (s *Store) Library() *Library {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lib
}

// LoadedAt returns when the current library was built.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Reload re-reads the data directory. On failure the previous library stays
// live.
func (s *Store) Reload() error {
	lib, err := LoadLibrary(s.dir)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.lib = lib
	s.loadedAt = time.Now()
	s.mu.Unlock()

	log.Printf("[content] loaded %s: %v", s.dir, lib.Counts())
	return nil
}
