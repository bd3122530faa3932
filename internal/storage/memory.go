package storage

import (
	"sort"
	"sync"
)

// MemoryRepository keeps run records in-process for local development.
type MemoryRepository struct {
	mu   sync.RWMutex
	runs map[string]*RunRecord
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{runs: map[string]*RunRecord{}}
}

func (r *MemoryRepository) SaveRun(record *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.runs[record.ID] = cloneRecord(record)
	return nil
}

func (r *MemoryRepository) GetRun(id string) (*RunRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.runs[id]
	if !ok {
		return nil, ErrRunNotFound
	}
	return cloneRecord(record), nil
}

func (r *MemoryRepository) GetRunsByRequester(requestedBy string) ([]RunRecord, error) {
	r.mu.RLock()
	var records []RunRecord
	for _, record := range r.runs {
		if record.RequestedBy == requestedBy {
			records = append(records, *cloneRecord(record))
		}
	}
	r.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool {
		return records[i].CompletedAt.After(records[j].CompletedAt)
	})
	return records, nil
}

func (r *MemoryRepository) GetRunStats(requestedBy string) (*RunStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var stats RunStats
	for _, record := range r.runs {
		if record.RequestedBy == requestedBy {
			stats.accumulate(record)
		}
	}
	stats.finish()
	return &stats, nil
}

func (r *MemoryRepository) Close() error {
	return nil
}

func cloneRecord(record *RunRecord) *RunRecord {
	c := *record
	c.Rooms = append([]string(nil), record.Rooms...)
	c.Outcomes = append([]OutcomeRecord(nil), record.Outcomes...)
	return &c
}
