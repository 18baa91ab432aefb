package core

import (
	"sort"
	"strings"
)

const (
	KindAll = "all"

	SortByDate     SortKey = "date"
	SortByAmount   SortKey = "amount"
	SortByCategory SortKey = "category"

	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

type (
	SortKey   string
	SortOrder string

	// FilterSpec selects a subset of entries. Zero-valued fields match
	// everything; predicates are AND-combined.
	FilterSpec struct {
		Kind       string // "all", "income" or "expense"
		Category   string // "all" or an exact category name
		From       Date   // inclusive lower bound, optional
		To         Date   // inclusive upper bound, optional
		SearchText string // case-insensitive substring
	}
)

// Validate rejects a reversed date range. Missing bounds are fine.
func (f FilterSpec) Validate() error {
	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To.Time) {
		return ErrInvalidRange
	}
	switch f.Kind {
	case "", KindAll, string(Income), string(Expense):
	default:
		return ErrInvalidKind
	}
	return nil
}

// FilterEntries returns the entries matching spec, preserving input order.
// The search text matches description, category, sub-category and the
// amount rendered as a decimal string.
func FilterEntries(entries []LedgerEntry, spec FilterSpec) ([]LedgerEntry, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(spec.SearchText))
	out := make([]LedgerEntry, 0, len(entries))
	for _, e := range entries {
		if spec.Kind != "" && spec.Kind != KindAll && string(e.Kind) != spec.Kind {
			continue
		}
		if spec.Category != "" && spec.Category != KindAll && e.Category != spec.Category {
			continue
		}
		if !spec.From.IsZero() && e.Date.Before(spec.From.Time) {
			continue
		}
		if !spec.To.IsZero() && e.Date.After(spec.To.Time) {
			continue
		}
		if needle != "" && !matchesSearch(e, needle) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func matchesSearch(e LedgerEntry, needle string) bool {
	return strings.Contains(strings.ToLower(e.Description), needle) ||
		strings.Contains(strings.ToLower(e.Category), needle) ||
		strings.Contains(strings.ToLower(e.SubCategory), needle) ||
		strings.Contains(e.Amount.DecimalString(), needle)
}

// SortEntries orders a copy of entries by the given key. The sort is stable:
// entries with equal keys keep their original relative order, which callers
// rely on for deterministic table rendering.
func SortEntries(entries []LedgerEntry, by SortKey, order SortOrder) []LedgerEntry {
	out := make([]LedgerEntry, len(entries))
	copy(out, entries)

	less := func(a, b LedgerEntry) bool {
		switch by {
		case SortByAmount:
			return a.Amount.Cents < b.Amount.Cents
		case SortByCategory:
			return strings.ToLower(a.Category) < strings.ToLower(b.Category)
		default:
			return a.Date.Before(b.Date.Time)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if order == Desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}
