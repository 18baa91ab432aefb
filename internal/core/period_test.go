package core

import (
	"errors"
	"testing"
)

func TestPeriodBoundsMonth(t *testing.T) {
	cases := []struct {
		ref        Date
		start, end Date
	}{
		{NewDate(2024, 2, 14), NewDate(2024, 2, 1), NewDate(2024, 2, 29)}, // leap year
		{NewDate(2023, 2, 1), NewDate(2023, 2, 1), NewDate(2023, 2, 28)},
		{NewDate(2024, 12, 31), NewDate(2024, 12, 1), NewDate(2024, 12, 31)},
	}
	for _, tc := range cases {
		p := PeriodBounds(tc.ref, Month)
		if !p.Start.Equal(tc.start.Time) || !p.End.Equal(tc.end.Time) {
			t.Fatalf("bounds for %v: got %v..%v, want %v..%v", tc.ref, p.Start, p.End, tc.start, tc.end)
		}
	}
}

func TestPeriodContainsInclusive(t *testing.T) {
	p := MonthPeriod(2024, 6)
	if !p.Contains(NewDate(2024, 6, 1)) || !p.Contains(NewDate(2024, 6, 30)) {
		t.Fatal("bounds must be inclusive")
	}
	if p.Contains(NewDate(2024, 5, 31)) || p.Contains(NewDate(2024, 7, 1)) {
		t.Fatal("dates outside the month must be excluded")
	}
}

func TestPeriodPrevious(t *testing.T) {
	prev := MonthPeriod(2024, 1).Previous()
	if prev.Start.String() != "2023-12-01" || prev.End.String() != "2023-12-31" {
		t.Fatalf("previous of Jan 2024: got %v..%v", prev.Start, prev.End)
	}

	// Custom range shifts back by its own length.
	custom := Period{Start: NewDate(2024, 6, 10), End: NewDate(2024, 6, 19)}
	prev = custom.Previous()
	if prev.Start.String() != "2024-05-31" || prev.End.String() != "2024-06-09" {
		t.Fatalf("previous of custom range: got %v..%v", prev.Start, prev.End)
	}
}

func TestPeriodLabel(t *testing.T) {
	if got := MonthPeriod(2024, 10).Label(); got != "Oct 2024" {
		t.Fatalf("got %q", got)
	}
}

func TestPeriodValidate(t *testing.T) {
	bad := Period{Start: NewDate(2024, 2, 1), End: NewDate(2024, 1, 1)}
	if err := bad.Validate(); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if err := MonthPeriod(2024, 1).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
}

func TestPercentChange(t *testing.T) {
	cases := []struct {
		current, previous int64
		want              float64
	}{
		{0, 0, 0},
		{150, 0, 100},
		{150, 100, 50},
		{50, 100, -50},
		{100, -50, 300}, // previous magnitude in the denominator
	}
	for _, tc := range cases {
		if got := PercentChange(tc.current, tc.previous); got != tc.want {
			t.Fatalf("PercentChange(%d, %d) = %v, want %v", tc.current, tc.previous, got, tc.want)
		}
	}
}

func TestSavingsRate(t *testing.T) {
	if got := SavingsRate(0, 500); got != 0 {
		t.Fatalf("zero income: got %v", got)
	}
	if got := SavingsRate(1000, 250); got != 75 {
		t.Fatalf("got %v", got)
	}
	if got := SavingsRate(1000, 1500); got != -50 {
		t.Fatalf("overspending: got %v", got)
	}
}
