package paper

import "sync"

// Store is the capability request handlers use to look papers up. Keeping it
// an interface lets tests substitute a scripted implementation.
type Store interface {
	// Put fingerprints the paper, records it under that id, and returns the id.
	// Storing byte-identical content twice overwrites the prior entry.
	Put(p *Paper) string
	// Get returns the paper stored under id, if any.
	Get(id string) (*Paper, bool)
}

// MemoryStore keeps papers for the lifetime of the process. There is no
// eviction and no persistence; concurrent writes are last-write-wins, which
// is safe because the key is derived from the content itself.
type MemoryStore struct {
	mu     sync.RWMutex
	papers map[string]*Paper
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{papers: make(map[string]*Paper)}
}

// Put implements Store.
func (s *MemoryStore) Put(p *Paper) string {
	id := Fingerprint(p.FullText)
	p.ID = id
	s.mu.Lock()
	s.papers[id] = p
	s.mu.Unlock()
	return id
}

// Get implements Store.
func (s *MemoryStore) Get(id string) (*Paper, bool) {
	s.mu.RLock()
	p, ok := s.papers[id]
	s.mu.RUnlock()
	return p, ok
}
