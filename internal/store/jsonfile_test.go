package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"fitlog/internal/core"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "fitness_data.json"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func TestMissingFileYieldsEmpty(t *testing.T) {
	s := newTestStore(t)
	records, err := s.ListRecords(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("records = %v", records)
	}
}

func TestMalformedFileYieldsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fitness_data.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	records, err := s.ListRecords(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("records = %v", records)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	want := []core.Record{
		{Date: "2024-06-03", Training: []string{"legs"}, Diet: "eggs", Mood: "great"},
		{Date: "2024-06-04", Training: []string{core.RestDay}},
	}
	for _, r := range want {
		if _, err := s.UpsertRecord(ctx, r); err != nil {
			t.Fatalf("upsert %s: %v", r.Date, err)
		}
	}

	got, err := s.ListRecords(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i].Date != want[i].Date || got[i].Diet != want[i].Diet || got[i].Mood != want[i].Mood {
			t.Fatalf("record %d = %+v", i, got[i])
		}
		if got[i].ID == "" {
			t.Fatalf("record %d has no ID", i)
		}
	}
}

func TestUpsertReplacesByDateKeepingID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.UpsertRecord(ctx, core.Record{Date: "2024-06-03", Training: []string{"legs"}})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second, err := s.UpsertRecord(ctx, core.Record{Date: "2024-06-03", Training: []string{"back"}, Mood: "tired"})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("ID changed on upsert: %q -> %q", first.ID, second.ID)
	}

	records, _ := s.ListRecords(ctx)
	if len(records) != 1 {
		t.Fatalf("records = %v", records)
	}
	if records[0].Training[0] != "back" || records[0].Mood != "tired" {
		t.Fatalf("record not replaced: %+v", records[0])
	}
}

func TestUpsertRejectsBadDate(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.UpsertRecord(context.Background(), core.Record{Date: "junk"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestDeleteByID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	r, _ := s.UpsertRecord(ctx, core.Record{Date: "2024-06-03", Training: []string{"legs"}})
	if _, err := s.UpsertRecord(ctx, core.Record{Date: "2024-06-04"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if err := s.DeleteRecord(ctx, r.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	records, _ := s.ListRecords(ctx)
	if len(records) != 1 || records[0].Date != "2024-06-04" {
		t.Fatalf("records = %v", records)
	}

	// Unknown IDs are a no-op.
	if err := s.DeleteRecord(ctx, "nope"); err != nil {
		t.Fatalf("delete unknown: %v", err)
	}
}

func TestGetRecord(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	r, _ := s.UpsertRecord(ctx, core.Record{Date: "2024-06-03"})

	got, err := s.GetRecord(ctx, r.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Date != "2024-06-03" {
		t.Fatalf("got = %+v", got)
	}
	if _, err := s.GetRecord(ctx, "missing"); err != core.ErrRecordNotFound {
		t.Fatalf("err = %v", err)
	}
}

func TestLoadToleratesLegacyStringTraining(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fitness_data.json")
	legacy := `[{"id":"1","date":"2024-06-03","training":"legs","diet":"","mood":""},
		{"id":"2","date":"","training":[],"diet":"","mood":""}]`
	if err := os.WriteFile(path, []byte(legacy), 0644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	s, _ := NewFileStore(path)
	records, err := s.ListRecords(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	// The dateless record is dropped, the string training is coerced.
	if len(records) != 1 {
		t.Fatalf("records = %v", records)
	}
	if len(records[0].Training) != 1 || records[0].Training[0] != "legs" {
		t.Fatalf("training = %v", records[0].Training)
	}
}
