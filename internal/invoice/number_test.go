package invoice

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewInvoiceNumber(t *testing.T) {
	issue := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	n := NewInvoiceNumber(issue)
	if !strings.HasPrefix(n, "INV-20240601-") {
		t.Fatalf("unexpected prefix: %q", n)
	}
	if len(n) != len("INV-20240601-")+8 {
		t.Fatalf("unexpected length: %q", n)
	}
	if other := NewInvoiceNumber(issue); other == n {
		t.Fatalf("two numbers for the same date collided: %q", n)
	}
}

func TestDueDate(t *testing.T) {
	issue := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	due, err := DueDate(issue, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if due.Format("2006-01-02") != "2024-02-19" {
		t.Fatalf("got %v", due)
	}

	if _, err := DueDate(issue, -1); !errors.Is(err, ErrNegativeNetDays) {
		t.Fatalf("expected ErrNegativeNetDays, got %v", err)
	}

	// Zero net days means due on issue.
	due, err = DueDate(issue, 0)
	if err != nil || !due.Equal(issue) {
		t.Fatalf("got %v, %v", due, err)
	}
}
