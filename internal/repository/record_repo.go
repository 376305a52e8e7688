package repository

import (
	"context"

	"careervision/internal/model"
)

// RecordRepo is the durable store of completed sessions. Records are never
// updated or deleted individually.
type RecordRepo interface {
	// Append adds one record; an existing id is never overwritten.
	Append(ctx context.Context, record *model.StorageRecord) error
	// List returns every record, oldest first.
	List(ctx context.Context) ([]*model.StorageRecord, error)
	// Clear removes all records.
	Clear(ctx context.Context) error
}
