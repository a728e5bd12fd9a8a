package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"fitlog/internal/core"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "fitlog.db"))
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestUpsertAndList(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.UpsertRecord(ctx, core.Record{Date: "2024-06-03", Training: []string{"legs"}}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := repo.UpsertRecord(ctx, core.Record{Date: "2024-06-04", Training: []string{core.RestDay}, Mood: "sleepy"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	records, err := repo.ListRecords(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %v", records)
	}
	if records[0].Date != "2024-06-03" || records[1].Date != "2024-06-04" {
		t.Fatalf("insertion order lost: %v", records)
	}
	if records[1].Mood != "sleepy" {
		t.Fatalf("record = %+v", records[1])
	}
}

func TestUpsertKeepsIDMovesToEnd(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first, _ := repo.UpsertRecord(ctx, core.Record{Date: "2024-06-03", Training: []string{"legs"}})
	if _, err := repo.UpsertRecord(ctx, core.Record{Date: "2024-06-04"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	second, err := repo.UpsertRecord(ctx, core.Record{Date: "2024-06-03", Training: []string{"back"}})
	if err != nil {
		t.Fatalf("re-upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("ID changed: %q -> %q", first.ID, second.ID)
	}

	records, _ := repo.ListRecords(ctx)
	if len(records) != 2 {
		t.Fatalf("records = %v", records)
	}
	// Replaced dates re-append, same as the file store.
	if records[1].Date != "2024-06-03" || records[1].Training[0] != "back" {
		t.Fatalf("replaced record should move to the end with new data: %v", records)
	}
}

func TestGetAndDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	r, _ := repo.UpsertRecord(ctx, core.Record{Date: "2024-06-03"})
	got, err := repo.GetRecord(ctx, r.ID)
	if err != nil || got.Date != "2024-06-03" {
		t.Fatalf("get = %+v, %v", got, err)
	}

	if err := repo.DeleteRecord(ctx, r.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetRecord(ctx, r.ID); err != core.ErrRecordNotFound {
		t.Fatalf("err = %v", err)
	}
	// Unknown IDs are a no-op.
	if err := repo.DeleteRecord(ctx, "nope"); err != nil {
		t.Fatalf("delete unknown: %v", err)
	}
}
