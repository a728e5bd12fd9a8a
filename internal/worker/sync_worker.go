package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fitlog/internal/amqp"
	"fitlog/internal/core"
	"fitlog/internal/sheets"
	"fitlog/internal/store"
)

// SyncWorker mirrors training records from the local store to Google Sheets
type SyncWorker struct {
	records   store.RecordGetter
	lister    store.RecordLister
	writer    sheets.RecordWriter
	remover   sheets.RecordRemover
	batchSize int
}

func NewSyncWorker(records store.RecordGetter, lister store.RecordLister, writer sheets.RecordWriter, remover sheets.RecordRemover, batchSize int) *SyncWorker {
	return &SyncWorker{
		records:   records,
		lister:    lister,
		writer:    writer,
		remover:   remover,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes a single record sync message from AMQP
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.RecordSyncMessage) error {
	if msg.Deleted {
		return w.handleDelete(ctx, msg)
	}

	slog.InfoContext(ctx, "Processing sync message",
		"id", msg.ID,
		"date", msg.Date)

	record, err := w.records.GetRecord(ctx, msg.ID)
	if err != nil {
		if errors.Is(err, core.ErrRecordNotFound) {
			// Record was removed before we got here, nothing to mirror.
			slog.WarnContext(ctx, "Record vanished before sync", "id", msg.ID)
			return nil
		}
		return fmt.Errorf("get record from store: %w", err)
	}

	ref, err := w.writer.Append(ctx, record)
	if err != nil {
		return fmt.Errorf("sync record to sheets: %w", err)
	}

	slog.InfoContext(ctx, "Synced record to sheets",
		"id", record.ID,
		"date", record.Date,
		"sheets_ref", ref)

	return nil
}

func (w *SyncWorker) handleDelete(ctx context.Context, msg *amqp.RecordSyncMessage) error {
	slog.InfoContext(ctx, "Processing delete message", "id", msg.ID)

	if w.remover == nil {
		slog.WarnContext(ctx, "No record remover configured, skipping sheets deletion",
			"id", msg.ID)
		return nil
	}

	if err := w.remover.Remove(ctx, msg.ID); err != nil {
		return fmt.Errorf("remove record from sheets: %w", err)
	}

	slog.InfoContext(ctx, "Removed record from sheets", "id", msg.ID)
	return nil
}

// StartupSyncCheck re-exports every stored record at worker startup.
// This recovers from missed AMQP messages or worker downtime; Append is
// idempotent per record ID so re-exports overwrite rather than duplicate.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	if w.lister == nil {
		return nil
	}

	records, err := w.lister.ListRecords(ctx)
	if err != nil {
		return fmt.Errorf("list records for startup check: %w", err)
	}

	if len(records) == 0 {
		slog.InfoContext(ctx, "No records found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Re-exporting records on startup", "count", len(records))

	successCount := 0
	errorCount := 0
	for i, record := range records {
		if w.batchSize > 0 && i >= w.batchSize {
			slog.InfoContext(ctx, "Startup batch limit reached, remaining records sync via messages",
				"limit", w.batchSize)
			break
		}
		if _, err := w.writer.Append(ctx, record); err != nil {
			slog.ErrorContext(ctx, "Failed to re-export record",
				"id", record.ID, "error", err)
			errorCount++
			continue
		}
		successCount++
	}

	slog.InfoContext(ctx, "Startup sync check finished",
		"synced", successCount,
		"errors", errorCount)

	return nil
}
