package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"fitlog/internal/core"
)

// FileStore persists the whole record collection as one JSON document.
// Reads degrade instead of failing: a missing file and malformed
// content both yield an empty collection. Writes serialize the full
// collection and replace the file atomically.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}
	return &FileStore{path: path}, nil
}

// looseRecord tolerates the legacy shape where training was a single
// string instead of a list.
type looseRecord struct {
	ID       string          `json:"id"`
	Date     string          `json:"date"`
	Training json.RawMessage `json:"training"`
	Diet     string          `json:"diet"`
	Mood     string          `json:"mood"`
}

func (l looseRecord) record() core.Record {
	r := core.Record{ID: l.ID, Date: l.Date, Diet: l.Diet, Mood: l.Mood}
	if len(l.Training) > 0 {
		var list []string
		if err := json.Unmarshal(l.Training, &list); err == nil {
			r.Training = list
		} else {
			var single string
			if err := json.Unmarshal(l.Training, &single); err == nil && single != "" {
				r.Training = []string{single}
			}
		}
	}
	return r.Normalize()
}

func (s *FileStore) ListRecords(ctx context.Context) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *FileStore) GetRecord(ctx context.Context, id string) (core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := s.load(ctx)
	if err != nil {
		return core.Record{}, err
	}
	for _, r := range records {
		if r.ID == id {
			return r, nil
		}
	}
	return core.Record{}, core.ErrRecordNotFound
}

func (s *FileStore) UpsertRecord(ctx context.Context, r core.Record) (core.Record, error) {
	if err := r.Validate(); err != nil {
		return core.Record{}, err
	}
	r = r.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return core.Record{}, err
	}

	// Replace any record on the same date, keeping its original ID.
	kept := records[:0]
	for _, existing := range records {
		if existing.Date == r.Date {
			r.ID = existing.ID
			continue
		}
		kept = append(kept, existing)
	}
	kept = append(kept, r)

	if err := s.save(kept); err != nil {
		return core.Record{}, err
	}
	return r, nil
}

func (s *FileStore) DeleteRecord(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return err
	}
	kept := records[:0]
	for _, r := range records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	return s.save(kept)
}

func (s *FileStore) load(ctx context.Context) ([]core.Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []core.Record{}, nil
		}
		slog.WarnContext(ctx, "Record file unreadable, starting empty", "path", s.path, "error", err)
		return []core.Record{}, nil
	}

	var loose []looseRecord
	if err := json.Unmarshal(data, &loose); err != nil {
		slog.WarnContext(ctx, "Record file malformed, starting empty", "path", s.path, "error", err)
		return []core.Record{}, nil
	}

	records := make([]core.Record, 0, len(loose))
	for _, l := range loose {
		r := l.record()
		if r.Date == "" {
			continue
		}
		records = append(records, r)
	}
	return records, nil
}

// save writes the whole collection to a temp file and renames it into
// place, so readers never observe a partial write.
func (s *FileStore) save(records []core.Record) error {
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".records-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write records: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace record file: %w", err)
	}
	return nil
}
