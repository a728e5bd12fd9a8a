package worker

import (
	"context"
	"fmt"
	"testing"

	"fitlog/internal/amqp"
	"fitlog/internal/core"
	"fitlog/internal/store"
)

type fakeSheet struct {
	appended []core.Record
	removed  []string
	fail     bool
}

func (f *fakeSheet) Append(_ context.Context, r core.Record) (string, error) {
	if f.fail {
		return "", fmt.Errorf("sheet unavailable")
	}
	f.appended = append(f.appended, r)
	return fmt.Sprintf("Records!A%d:E%d", len(f.appended), len(f.appended)), nil
}

func (f *fakeSheet) Remove(_ context.Context, id string) error {
	if f.fail {
		return fmt.Errorf("sheet unavailable")
	}
	f.removed = append(f.removed, id)
	return nil
}

func seedStore(t *testing.T) (*store.MemoryStore, core.Record) {
	t.Helper()
	s := store.NewMemoryStore()
	saved, err := s.UpsertRecord(context.Background(), core.Record{
		Date:     "2024-06-03",
		Training: []string{"legs"},
		Mood:     "good",
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return s, saved
}

func TestSyncWorker_HandleSyncMessage(t *testing.T) {
	s, saved := seedStore(t)
	sheet := &fakeSheet{}
	w := NewSyncWorker(s, s, sheet, sheet, 10)

	msg := amqp.NewRecordSyncMessage(saved.ID, saved.Date)
	if err := w.HandleSyncMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleSyncMessage() error = %v", err)
	}
	if len(sheet.appended) != 1 {
		t.Fatalf("appended len = %d, want 1", len(sheet.appended))
	}
	if sheet.appended[0].ID != saved.ID {
		t.Errorf("appended ID = %v, want %v", sheet.appended[0].ID, saved.ID)
	}
}

func TestSyncWorker_HandleSyncMessage_MissingRecord(t *testing.T) {
	s, _ := seedStore(t)
	sheet := &fakeSheet{}
	w := NewSyncWorker(s, s, sheet, sheet, 10)

	// A record deleted before the message is processed is not an error.
	msg := amqp.NewRecordSyncMessage("gone", "2024-06-03")
	if err := w.HandleSyncMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleSyncMessage() error = %v", err)
	}
	if len(sheet.appended) != 0 {
		t.Error("nothing should be appended for a vanished record")
	}
}

func TestSyncWorker_HandleDeleteMessage(t *testing.T) {
	s, saved := seedStore(t)
	sheet := &fakeSheet{}
	w := NewSyncWorker(s, s, sheet, sheet, 10)

	msg := amqp.NewRecordDeleteMessage(saved.ID)
	if err := w.HandleSyncMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleSyncMessage() error = %v", err)
	}
	if len(sheet.removed) != 1 || sheet.removed[0] != saved.ID {
		t.Errorf("removed = %v, want [%v]", sheet.removed, saved.ID)
	}
}

func TestSyncWorker_HandleDeleteMessage_NoRemover(t *testing.T) {
	s, saved := seedStore(t)
	w := NewSyncWorker(s, s, &fakeSheet{}, nil, 10)

	msg := amqp.NewRecordDeleteMessage(saved.ID)
	if err := w.HandleSyncMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleSyncMessage() without remover error = %v", err)
	}
}

func TestSyncWorker_StartupSyncCheck(t *testing.T) {
	s, _ := seedStore(t)
	if _, err := s.UpsertRecord(context.Background(), core.Record{Date: "2024-06-04", Training: []string{"back"}}); err != nil {
		t.Fatal(err)
	}

	sheet := &fakeSheet{}
	w := NewSyncWorker(s, s, sheet, sheet, 10)

	if err := w.StartupSyncCheck(context.Background()); err != nil {
		t.Fatalf("StartupSyncCheck() error = %v", err)
	}
	if len(sheet.appended) != 2 {
		t.Errorf("appended len = %d, want 2", len(sheet.appended))
	}
}

func TestSyncWorker_StartupSyncCheck_BatchLimit(t *testing.T) {
	s := store.NewMemoryStore()
	for day := 1; day <= 5; day++ {
		date := fmt.Sprintf("2024-06-%02d", day)
		if _, err := s.UpsertRecord(context.Background(), core.Record{Date: date, Training: []string{"legs"}}); err != nil {
			t.Fatal(err)
		}
	}

	sheet := &fakeSheet{}
	w := NewSyncWorker(s, s, sheet, sheet, 3)

	if err := w.StartupSyncCheck(context.Background()); err != nil {
		t.Fatalf("StartupSyncCheck() error = %v", err)
	}
	if len(sheet.appended) != 3 {
		t.Errorf("appended len = %d, want the batch limit of 3", len(sheet.appended))
	}
}

func TestSyncWorker_StartupSyncCheck_ContinuesOnError(t *testing.T) {
	s, _ := seedStore(t)
	sheet := &fakeSheet{fail: true}
	w := NewSyncWorker(s, s, sheet, sheet, 10)

	// Export failures are logged per record, not returned.
	if err := w.StartupSyncCheck(context.Background()); err != nil {
		t.Fatalf("StartupSyncCheck() error = %v", err)
	}
}
