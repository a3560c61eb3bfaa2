package repository

import (
	"sync"

	"stock-screener-backend/internal/domain"
)

// InMemoryScreenCache holds the latest screening cycle's rows for fast
// reads by the HTTP layer. Each cycle replaces the whole list.
type InMemoryScreenCache struct {
	records []domain.StockRecord
	mu      sync.RWMutex
}

func NewInMemoryScreenCache() *InMemoryScreenCache {
	return &InMemoryScreenCache{
		records: []domain.StockRecord{},
	}
}

func (r *InMemoryScreenCache) SaveRecords(records []domain.StockRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = records
}

func (r *InMemoryScreenCache) GetRecords() []domain.StockRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	// Return a copy so callers can sort or filter without racing the
	// next cycle's replacement.
	result := make([]domain.StockRecord, len(r.records))
	copy(result, r.records)
	return result
}
