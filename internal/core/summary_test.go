package core

import (
	"errors"
	"testing"
)

func TestSummarizePeriodTotals(t *testing.T) {
	entries := fixtureEntries() // b: income 250000; a,c expenses in June; d in July
	s, err := SummarizePeriod(entries, MonthPeriod(2024, 6))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.TotalIncome.Cents != 250000 {
		t.Fatalf("total income: got %d", s.TotalIncome.Cents)
	}
	if s.TotalExpenses.Cents != 5700 {
		t.Fatalf("total expenses: got %d", s.TotalExpenses.Cents)
	}
	if s.NetBalance.Cents != s.TotalIncome.Cents-s.TotalExpenses.Cents {
		t.Fatalf("net balance invariant broken: %d", s.NetBalance.Cents)
	}
	if s.TransactionCount != 3 {
		t.Fatalf("transaction count: got %d", s.TransactionCount)
	}
	if s.TopCategory != "Groceries" {
		t.Fatalf("top category: got %q", s.TopCategory)
	}
	if s.Label != "Jun 2024" {
		t.Fatalf("label: got %q", s.Label)
	}
}

func TestSummarizePeriodBreakdownOrder(t *testing.T) {
	entries := []LedgerEntry{
		entryFixture("1", Expense, 500, "beta", "x", NewDate(2024, 3, 1)),
		entryFixture("2", Expense, 500, "Alpha", "x", NewDate(2024, 3, 2)),
		entryFixture("3", Expense, 900, "gamma", "x", NewDate(2024, 3, 3)),
	}
	s, err := SummarizePeriod(entries, MonthPeriod(2024, 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Largest first; equal amounts ordered by name ascending.
	want := []string{"gamma", "Alpha", "beta"}
	for i, w := range want {
		if s.ExpenseByCategory[i].Name != w {
			t.Fatalf("breakdown[%d]: got %q, want %q", i, s.ExpenseByCategory[i].Name, w)
		}
	}
}

func TestSummarizePeriodEmpty(t *testing.T) {
	s, err := SummarizePeriod(nil, MonthPeriod(2024, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.TransactionCount != 0 || s.TotalIncome.Cents != 0 || s.TotalExpenses.Cents != 0 {
		t.Fatalf("empty period not zero: %+v", s)
	}
	if s.TopCategory != "" {
		t.Fatalf("expected no top category, got %q", s.TopCategory)
	}
}

func TestSummarizePeriodMixedCurrency(t *testing.T) {
	entries := fixtureEntries()
	eur := entryFixture("e", Expense, 100, "Misc", "fx", NewDate(2024, 6, 20))
	eur.Currency = "EUR"
	entries = append(entries, eur)
	if _, err := SummarizePeriod(entries, MonthPeriod(2024, 6)); !errors.Is(err, ErrMixedCurrency) {
		t.Fatalf("expected ErrMixedCurrency, got %v", err)
	}
	// The July summary never sees the EUR entry and still succeeds.
	if _, err := SummarizePeriod(entries, MonthPeriod(2024, 7)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestComparePeriods(t *testing.T) {
	current := PeriodSummary{
		TotalIncome:   Money{Cents: 150},
		TotalExpenses: Money{Cents: 50},
		NetBalance:    Money{Cents: 100},
	}
	previous := PeriodSummary{
		TotalIncome:   Money{Cents: 100},
		TotalExpenses: Money{Cents: 100},
		NetBalance:    Money{Cents: 0},
	}
	c := ComparePeriods(current, previous)
	if c.IncomeChange != 50 {
		t.Fatalf("income change: got %v", c.IncomeChange)
	}
	if c.ExpenseChange != -50 {
		t.Fatalf("expense change: got %v", c.ExpenseChange)
	}
	if c.NetChange != 100 { // zero-previous convention
		t.Fatalf("net change: got %v", c.NetChange)
	}
}

func TestTopCategories(t *testing.T) {
	breakdown := []CategoryAmount{
		{Name: "Rent", Amount: Money{Cents: 90000}},
		{Name: "Dining", Amount: Money{Cents: 12000}},
		{Name: "Coffee", Amount: Money{Cents: 12000}},
		{Name: "Transport", Amount: Money{Cents: 4000}},
	}
	top := TopCategories(breakdown, 3)
	if len(top) != 3 {
		t.Fatalf("expected 3, got %d", len(top))
	}
	// Equal amounts break ties by name ascending.
	if top[0].Name != "Rent" || top[1].Name != "Coffee" || top[2].Name != "Dining" {
		t.Fatalf("unexpected order: %v, %v, %v", top[0].Name, top[1].Name, top[2].Name)
	}
	if got := TopCategories(breakdown, 0); len(got) != 0 {
		t.Fatalf("n=0 should return nothing, got %d", len(got))
	}
	if got := TopCategories(breakdown, 10); len(got) != 4 {
		t.Fatalf("n beyond length should return all, got %d", len(got))
	}
}
