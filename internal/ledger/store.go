package ledger

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"os"
	"sync"
)

// Store persists the ledger as a single JSON file. All load→mutate→save
// cycles serialize through one mutex; without it two concurrent events
// could each read the file, apply their own change and overwrite the
// other's (last writer wins).
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a store backed by the file at path. The file is created
// on first save.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the full ledger. A missing or unreadable file yields an empty
// ledger rather than an error: a corrupt stats file must never take the
// bot down.
func (s *Store) Load() *Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// Save writes the full ledger. Write failures are logged and swallowed;
// the triggering mutation is lost from persistent state.
func (s *Store) Save(l *Ledger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveLocked(l)
}

// Update runs one load→mutate→save cycle under the store mutex.
func (s *Store) Update(fn func(*Ledger)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.loadLocked()
	fn(l)
	s.saveLocked(l)
}

// View runs fn against a freshly loaded ledger without saving it back.
func (s *Store) View(fn func(*Ledger)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.loadLocked())
}

func (s *Store) loadLocked() *Ledger {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("ledger: read %s: %v", s.path, err)
		}
		return New()
	}
	l := New()
	if err := json.Unmarshal(data, l); err != nil {
		log.Printf("ledger: parse %s: %v", s.path, err)
		return New()
	}
	return l
}

func (s *Store) saveLocked(l *Ledger) {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		log.Printf("ledger: encode: %v", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		log.Printf("ledger: write %s: %v", s.path, err)
	}
}
