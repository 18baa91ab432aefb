package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"tally/internal/amqp"
	"tally/internal/core"
	"tally/internal/store"
)

// EventPublisher pushes ledger change events to the export worker.
// *amqp.Client satisfies it; a nil publisher disables events.
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, entryID, action string, year, month int) error
}

// EntryService orchestrates entry writes across the store and AMQP.
type EntryService struct {
	store     store.EntryStore
	publisher EventPublisher
}

func NewEntryService(st store.EntryStore, publisher EventPublisher) *EntryService {
	return &EntryService{store: st, publisher: publisher}
}

// Create assigns the entry its identity and persists it. ID and CreatedAt are
// server-side; whatever the caller put there is overwritten.
func (s *EntryService) Create(ctx context.Context, e core.LedgerEntry) (core.LedgerEntry, error) {
	e.ID = uuid.NewString()
	e.CreatedAt = time.Now().UTC()
	if err := e.Validate(); err != nil {
		return core.LedgerEntry{}, err
	}
	if err := s.store.Create(ctx, e); err != nil {
		return core.LedgerEntry{}, fmt.Errorf("create entry: %w", err)
	}
	s.publishEvent(ctx, e.ID, amqp.ActionCreated, e.Date)
	return e, nil
}

// Update replaces the mutable fields of an existing entry. When the entry
// moves to a different month both the old and new month are announced, so
// exported reports for either period get refreshed.
func (s *EntryService) Update(ctx context.Context, e core.LedgerEntry) (core.LedgerEntry, error) {
	if err := e.Validate(); err != nil {
		return core.LedgerEntry{}, err
	}
	old, err := s.store.Get(ctx, e.ID)
	if err != nil {
		return core.LedgerEntry{}, fmt.Errorf("load entry for update: %w", err)
	}
	e.CreatedAt = old.CreatedAt
	if err := s.store.Update(ctx, e); err != nil {
		return core.LedgerEntry{}, fmt.Errorf("update entry: %w", err)
	}
	s.publishEvent(ctx, e.ID, amqp.ActionUpdated, e.Date)
	if old.Date.Year() != e.Date.Year() || old.Date.Month() != e.Date.Month() {
		s.publishEvent(ctx, e.ID, amqp.ActionUpdated, old.Date)
	}
	return e, nil
}

func (s *EntryService) Delete(ctx context.Context, id string) error {
	old, err := s.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("load entry for delete: %w", err)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	s.publishEvent(ctx, id, amqp.ActionDeleted, old.Date)
	return nil
}

func (s *EntryService) Get(ctx context.Context, id string) (core.LedgerEntry, error) {
	return s.store.Get(ctx, id)
}

// ListFiltered loads all entries and applies the filter spec and ordering.
func (s *EntryService) ListFiltered(ctx context.Context, spec core.FilterSpec, by core.SortKey, order core.SortOrder) ([]core.LedgerEntry, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	matched, err := core.FilterEntries(entries, spec)
	if err != nil {
		return nil, err
	}
	return core.SortEntries(matched, by, order), nil
}

func (s *EntryService) Categories(ctx context.Context) ([]string, error) {
	return s.store.Categories(ctx)
}

func (s *EntryService) publishEvent(ctx context.Context, entryID, action string, date core.Date) {
	if s.publisher == nil {
		return
	}
	// Event delivery is best effort; the write already succeeded locally.
	err := s.publisher.PublishLedgerEvent(ctx, entryID, action, date.Year(), int(date.Month()))
	if err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			"entry_id", entryID,
			"action", action,
			"error", err)
	}
}
