// Package memory is an in-memory EntryStore used as the default backend and
// as the test double for the service layer.
package memory

import (
	"context"
	"sort"
	"sync"

	"tally/internal/core"
	"tally/internal/store"
)

type Store struct {
	mu      sync.Mutex
	entries map[string]core.LedgerEntry
	order   []string // insertion order, for stable tie-breaking
}

var _ store.EntryStore = (*Store)(nil)

func New() *Store {
	return &Store{entries: make(map[string]core.LedgerEntry)}
}

func (s *Store) Create(_ context.Context, e core.LedgerEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[e.ID]; !exists {
		s.order = append(s.order, e.ID)
	}
	s.entries[e.ID] = e
	return nil
}

func (s *Store) Update(_ context.Context, e core.LedgerEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	old, exists := s.entries[e.ID]
	if !exists {
		return store.ErrNotFound
	}
	// ID and CreatedAt are immutable once set.
	e.CreatedAt = old.CreatedAt
	s.entries[e.ID] = e
	return nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[id]; !exists {
		return store.ErrNotFound
	}
	delete(s.entries, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) Get(_ context.Context, id string) (core.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, exists := s.entries[id]
	if !exists {
		return core.LedgerEntry{}, store.ErrNotFound
	}
	return e, nil
}

func (s *Store) List(_ context.Context) ([]core.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.LedgerEntry, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.entries[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.Before(out[j].Date.Time)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) ListPeriod(ctx context.Context, p core.Period) ([]core.LedgerEntry, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]core.LedgerEntry, 0, len(all))
	for _, e := range all {
		if p.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Store) Categories(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := map[string]struct{}{}
	var out []string
	for _, e := range s.entries {
		if _, ok := seen[e.Category]; ok {
			continue
		}
		seen[e.Category] = struct{}{}
		out = append(out, e.Category)
	}
	sort.Strings(out)
	return out, nil
}
