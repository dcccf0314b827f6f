package store

import (
	"context"
	"sort"
	"sync"

	"github.com/nanoncore/ont-cleaner/model"
)

// Memory is a Store kept in process memory
type Memory struct {
	mu      sync.RWMutex
	records []model.DeletionRecord
}

// NewMemory returns an empty in-memory store
func NewMemory() *Memory {
	return &Memory{}
}

// Insert implements Store
func (m *Memory) Insert(ctx context.Context, rec model.DeletionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return nil
}

// Count implements Store
func (m *Memory) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.records)), nil
}

// FindPage implements Store. Records with equal timestamps keep the reverse
// of their insertion order.
func (m *Memory) FindPage(ctx context.Context, skip, limit int64) ([]model.DeletionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	sorted := make([]model.DeletionRecord, len(m.records))
	for i, rec := range m.records {
		sorted[len(m.records)-1-i] = rec
	}
	m.mu.RUnlock()

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})

	if skip < 0 {
		skip = 0
	}
	if skip >= int64(len(sorted)) {
		return []model.DeletionRecord{}, nil
	}
	end := int64(len(sorted))
	if limit > 0 && skip+limit < end {
		end = skip + limit
	}
	return sorted[skip:end], nil
}

// All returns every record in insertion order
func (m *Memory) All() []model.DeletionRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.DeletionRecord, len(m.records))
	copy(out, m.records)
	return out
}

var _ Store = (*Memory)(nil)
