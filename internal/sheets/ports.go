package sheets

import (
	"context"

	"fitlog/internal/core"
)

// Ports for outbound adapters.
type (
	// RecordWriter appends a record row to an external sheet.
	RecordWriter interface {
		Append(ctx context.Context, r core.Record) (rowRef string, err error)
	}

	// RecordRemover clears exported rows for a record ID.
	RecordRemover interface {
		Remove(ctx context.Context, id string) error
	}
)
