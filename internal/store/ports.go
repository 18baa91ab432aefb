package store

import (
	"context"
	"errors"

	"tally/internal/core"
)

// ErrNotFound is returned when an entry ID does not exist.
var ErrNotFound = errors.New("entry not found")

// Ports for outbound adapters. The engine itself is pure; everything that
// persists entries lives behind these interfaces.
type (
	EntryWriter interface {
		Create(ctx context.Context, e core.LedgerEntry) error
		Update(ctx context.Context, e core.LedgerEntry) error
		Delete(ctx context.Context, id string) error
	}

	EntryReader interface {
		Get(ctx context.Context, id string) (core.LedgerEntry, error)
		// List returns all entries ordered by date then creation time.
		List(ctx context.Context) ([]core.LedgerEntry, error)
		// ListPeriod returns the entries dated within the period, inclusive.
		ListPeriod(ctx context.Context, p core.Period) ([]core.LedgerEntry, error)
	}

	// CategoryReader lists the distinct category names in use.
	CategoryReader interface {
		Categories(ctx context.Context) ([]string, error)
	}

	// EntryStore is the full persistence contract the service layer needs.
	EntryStore interface {
		EntryWriter
		EntryReader
		CategoryReader
	}
)
