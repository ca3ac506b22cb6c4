package store

import (
	"context"
	"sync"
	"time"
)

type MemoryStore struct {
	mu   sync.RWMutex // protects docs
	docs map[string]*Document
	now  func() time.Time
}

// Ensure MemoryStore implements Store interface
var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]*Document), now: time.Now}
}

func (s *MemoryStore) Put(_ context.Context, doc *Document) error {
	cp := *doc
	s.mu.Lock()
	s.docs[doc.ID] = &cp
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Document, error) {
	s.mu.RLock()
	doc, ok := s.docs[id]
	s.mu.RUnlock()
	if !ok || doc.Expired(s.now()) {
		return nil, ErrNotFound
	}
	cp := *doc
	return &cp, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.docs, id)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Expired(_ context.Context, now time.Time) ([]*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expired []*Document
	for id, doc := range s.docs {
		if doc.Expired(now) {
			expired = append(expired, doc)
			delete(s.docs, id)
		}
	}
	return expired, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
