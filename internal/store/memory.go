package store

import (
	"context"
	"sync"

	"fitlog/internal/core"
)

// MemoryStore keeps records in memory. It exists for tests and for
// running the app without durable storage.
type MemoryStore struct {
	mu      sync.Mutex
	records []core.Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) ListRecords(_ context.Context) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Record(nil), s.records...), nil
}

func (s *MemoryStore) GetRecord(_ context.Context, id string) (core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.ID == id {
			return r, nil
		}
	}
	return core.Record{}, core.ErrRecordNotFound
}

func (s *MemoryStore) UpsertRecord(_ context.Context, r core.Record) (core.Record, error) {
	if err := r.Validate(); err != nil {
		return core.Record{}, err
	}
	r = r.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.records[:0]
	for _, existing := range s.records {
		if existing.Date == r.Date {
			r.ID = existing.ID
			continue
		}
		kept = append(kept, existing)
	}
	s.records = append(kept, r)
	return r, nil
}

func (s *MemoryStore) DeleteRecord(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.records[:0]
	for _, r := range s.records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.records = kept
	return nil
}
