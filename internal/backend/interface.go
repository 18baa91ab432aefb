// Package backend selects and builds the persistence layer from
// configuration.
package backend

import (
	"context"

	"tally/internal/store"
)

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// Result carries the built store, the optional event publisher attached to
// it and a cleanup function. Publisher is nil when AMQP is not configured.
type Result struct {
	Store     store.EntryStore
	Publisher EventPublisher
	Cleanup   CleanupFunc
}

// EventPublisher mirrors the services layer's publisher requirement so this
// package does not import it.
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, entryID, action string, year, month int) error
}

// Type represents the kind of persistence backing the ledger.
type Type string

const (
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
