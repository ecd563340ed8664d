package history

import (
	"context"
	"sync"
	"time"

	"github.com/kilianp07/powerplan/core/model"
)

// Record is one solved payload kept for auditing.
type Record struct {
	ID          string             `json:"id"`
	Time        time.Time          `json:"time"`
	LoadMW      float64            `json:"load_mw"`
	TotalCost   float64            `json:"total_cost"`
	TotalMW     float64            `json:"total_mw"`
	Feasible    bool               `json:"feasible"`
	Error       string             `json:"error,omitempty"`
	Assignments []model.Assignment `json:"assignments,omitempty"`
}

// Query filters records returned by a store.
type Query struct {
	Start        time.Time
	End          time.Time
	FeasibleOnly bool
}

// Matches reports whether the record passes the query filters.
func (q Query) Matches(r Record) bool {
	if !q.Start.IsZero() && r.Time.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Time.After(q.End) {
		return false
	}
	if q.FeasibleOnly && !r.Feasible {
		return false
	}
	return true
}

// Store persists plan records.
type Store interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}

// MemoryStore keeps records in memory. It is the default backend and is used
// in tests.
type MemoryStore struct {
	mu   sync.RWMutex
	recs []Record
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

// Append stores the record.
func (s *MemoryStore) Append(_ context.Context, rec Record) error {
	s.mu.Lock()
	s.recs = append(s.recs, rec)
	s.mu.Unlock()
	return nil
}

// Query returns records matching q in insertion order.
func (s *MemoryStore) Query(_ context.Context, q Query) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Record
	for _, r := range s.recs {
		if q.Matches(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }
