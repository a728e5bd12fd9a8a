package services

import (
	"context"
	"fmt"
	"log/slog"

	"fitlog/internal/amqp"
	"fitlog/internal/backend"
	"fitlog/internal/core"
)

// RecordService orchestrates record operations across the store and AMQP
type RecordService struct {
	store      backend.Store
	amqpClient *amqp.Client
}

func NewRecordService(store backend.Store, amqpClient *amqp.Client) *RecordService {
	return &RecordService{
		store:      store,
		amqpClient: amqpClient,
	}
}

// SaveRecord upserts a record locally and publishes a sync message
func (s *RecordService) SaveRecord(ctx context.Context, r core.Record) (core.Record, error) {
	saved, err := s.store.UpsertRecord(ctx, r)
	if err != nil {
		return core.Record{}, fmt.Errorf("save record: %w", err)
	}

	// Publish async sync message (non-blocking)
	if err := s.publishSyncMessage(ctx, saved.ID, saved.Date); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"id", saved.ID, "error", err)
		// Don't fail the request - record is saved locally
	}

	return saved, nil
}

// DeleteRecord removes a record locally and publishes a delete message
func (s *RecordService) DeleteRecord(ctx context.Context, id string) error {
	if err := s.store.DeleteRecord(ctx, id); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}

	// Publish async delete message (non-blocking)
	if err := s.publishDeleteMessage(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish delete message",
			"id", id, "error", err)
		// Don't fail the request - record is deleted locally
	}

	return nil
}

// Records lists all records in store order
func (s *RecordService) Records(ctx context.Context) ([]core.Record, error) {
	return s.store.ListRecords(ctx)
}

// Record fetches a single record by ID
func (s *RecordService) Record(ctx context.Context, id string) (core.Record, error) {
	return s.store.GetRecord(ctx, id)
}

func (s *RecordService) publishSyncMessage(ctx context.Context, id, date string) error {
	if s.amqpClient == nil {
		return nil
	}

	return s.amqpClient.PublishRecordSync(ctx, id, date)
}

func (s *RecordService) publishDeleteMessage(ctx context.Context, id string) error {
	if s.amqpClient == nil {
		return nil
	}

	return s.amqpClient.PublishRecordDelete(ctx, id)
}

// Close closes the AMQP connection if one was configured
func (s *RecordService) Close() error {
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			return fmt.Errorf("close record service: %w", err)
		}
	}
	return nil
}
