package services

import (
	"context"
	"errors"
	"testing"

	"tally/internal/amqp"
	"tally/internal/core"
	"tally/internal/store"
	"tally/internal/store/memory"
)

type recordedEvent struct {
	entryID string
	action  string
	year    int
	month   int
}

type fakePublisher struct {
	events []recordedEvent
	fail   bool
}

func (f *fakePublisher) PublishLedgerEvent(_ context.Context, entryID, action string, year, month int) error {
	if f.fail {
		return errors.New("broker down")
	}
	f.events = append(f.events, recordedEvent{entryID, action, year, month})
	return nil
}

func newEntry(category string, date core.Date) core.LedgerEntry {
	return core.LedgerEntry{
		Kind:        core.Expense,
		Amount:      core.Money{Cents: 2500},
		Category:    category,
		Description: "service test",
		Date:        date,
		Currency:    "USD",
	}
}

func TestCreateAssignsIdentityAndPublishes(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	svc := NewEntryService(memory.New(), pub)

	created, err := svc.Create(ctx, newEntry("Food", core.NewDate(2024, 6, 10)))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("identity not assigned: %+v", created)
	}
	if len(pub.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(pub.events))
	}
	ev := pub.events[0]
	if ev.action != amqp.ActionCreated || ev.year != 2024 || ev.month != 6 || ev.entryID != created.ID {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestCreateRejectsInvalidEntry(t *testing.T) {
	svc := NewEntryService(memory.New(), nil)
	bad := newEntry("", core.NewDate(2024, 6, 10))
	if _, err := svc.Create(context.Background(), bad); !errors.Is(err, core.ErrEmptyCategory) {
		t.Fatalf("expected ErrEmptyCategory, got %v", err)
	}
}

func TestCreateSucceedsWhenPublisherFails(t *testing.T) {
	// A broker outage must not fail the write; the entry is saved locally.
	svc := NewEntryService(memory.New(), &fakePublisher{fail: true})
	created, err := svc.Create(context.Background(), newEntry("Food", core.NewDate(2024, 6, 10)))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Get(context.Background(), created.ID); err != nil {
		t.Fatalf("entry missing after publish failure: %v", err)
	}
}

func TestUpdateAnnouncesBothMonthsOnDateMove(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	svc := NewEntryService(memory.New(), pub)

	created, err := svc.Create(ctx, newEntry("Food", core.NewDate(2024, 6, 10)))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	pub.events = nil

	moved := created
	moved.Date = core.NewDate(2024, 7, 1)
	if _, err := svc.Update(ctx, moved); err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(pub.events) != 2 {
		t.Fatalf("expected events for both months, got %d", len(pub.events))
	}
	months := map[int]bool{pub.events[0].month: true, pub.events[1].month: true}
	if !months[6] || !months[7] {
		t.Fatalf("wrong months announced: %+v", pub.events)
	}
}

func TestUpdateMissingEntry(t *testing.T) {
	svc := NewEntryService(memory.New(), nil)
	ghost := newEntry("Food", core.NewDate(2024, 6, 10))
	ghost.ID = "does-not-exist"
	if _, err := svc.Update(context.Background(), ghost); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeletePublishesOldMonth(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	svc := NewEntryService(memory.New(), pub)

	created, err := svc.Create(ctx, newEntry("Food", core.NewDate(2024, 3, 5)))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	pub.events = nil

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(pub.events) != 1 || pub.events[0].action != amqp.ActionDeleted || pub.events[0].month != 3 {
		t.Fatalf("unexpected events: %+v", pub.events)
	}
}

func TestListFiltered(t *testing.T) {
	ctx := context.Background()
	svc := NewEntryService(memory.New(), nil)

	groceries := newEntry("Groceries", core.NewDate(2024, 6, 2))
	salary := newEntry("Salary", core.NewDate(2024, 6, 1))
	salary.Kind = core.Income
	salary.Amount.Cents = 400000
	for _, e := range []core.LedgerEntry{groceries, salary} {
		if _, err := svc.Create(ctx, e); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	got, err := svc.ListFiltered(ctx, core.FilterSpec{Kind: string(core.Income)}, core.SortByDate, core.Asc)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Category != "Salary" {
		t.Fatalf("got %+v", got)
	}

	bad := core.FilterSpec{From: core.NewDate(2024, 7, 1), To: core.NewDate(2024, 6, 1)}
	if _, err := svc.ListFiltered(ctx, bad, core.SortByDate, core.Asc); !errors.Is(err, core.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}
