// Package store defines the record persistence ports and the JSON file
// store that backs the log by default.
package store

import (
	"context"

	"fitlog/internal/core"
)

// Ports for record persistence. Implementations preserve insertion
// order and keep at most one record per date.
type (
	RecordLister interface {
		// ListRecords returns all records in store order.
		ListRecords(ctx context.Context) ([]core.Record, error)
	}

	RecordGetter interface {
		// GetRecord returns the record with the given ID, or
		// core.ErrRecordNotFound.
		GetRecord(ctx context.Context, id string) (core.Record, error)
	}

	RecordUpserter interface {
		// UpsertRecord writes r keyed on its date: an existing record
		// for the same date is replaced and keeps its original ID. The
		// stored record is returned.
		UpsertRecord(ctx context.Context, r core.Record) (core.Record, error)
	}

	RecordDeleter interface {
		// DeleteRecord removes the record with the given ID. Deleting
		// an unknown ID is not an error.
		DeleteRecord(ctx context.Context, id string) error
	}
)
