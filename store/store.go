// Package store persists deletion records. The Mongo implementation backs
// both executables; the in-memory one backs simulation runs and tests.
package store

import (
	"context"

	"github.com/nanoncore/ont-cleaner/model"
)

const (
	// DatabaseName and CollectionName locate the records in MongoDB
	DatabaseName   = "olt_operations"
	CollectionName = "ont_deletions"
)

// Store is the narrow document-store surface the cleaner and viewer use
type Store interface {
	// Insert appends one record
	Insert(ctx context.Context, rec model.DeletionRecord) error

	// Count returns the number of stored records
	Count(ctx context.Context) (int64, error)

	// FindPage returns records newest first, skipping skip and returning at most limit
	FindPage(ctx context.Context, skip, limit int64) ([]model.DeletionRecord, error)
}
