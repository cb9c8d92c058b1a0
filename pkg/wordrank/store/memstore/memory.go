package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/cognicore/wordrank/pkg/wordrank/rank"
	"github.com/cognicore/wordrank/pkg/wordrank/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu   sync.RWMutex
	runs map[string]store.Run
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{runs: make(map[string]store.Run)}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveRun stores a run, replacing any run with the same ID.
func (s *Store) SaveRun(ctx context.Context, r store.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[r.ID] = copyRun(r)
	return nil
}

// GetRun returns a run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (store.Run, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.runs[id]
	if !ok {
		return store.Run{}, false, nil
	}
	return copyRun(r), true, nil
}

// ListRuns returns run summaries, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]store.RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.RunSummary, 0, len(s.runs))
	for _, r := range s.runs {
		out = append(out, store.RunSummary{
			ID:        r.ID,
			Source:    r.Source,
			Total:     r.Total,
			Distinct:  len(r.Entries),
			CreatedAt: r.CreatedAt,
		})
	}

	// ULIDs sort by creation time.
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func copyRun(r store.Run) store.Run {
	entries := make([]rank.Entry, len(r.Entries))
	copy(entries, r.Entries)
	r.Entries = entries
	return r
}
