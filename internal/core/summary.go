package core

import (
	"sort"
	"strings"
)

// CategoryAmount is an amount aggregated under one category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// PeriodSummary holds the derived totals for one period. Breakdowns are
// sorted by amount descending with ties broken by name ascending, so equal
// inputs always produce identical output.
type PeriodSummary struct {
	Period            Period
	Label             string
	TotalIncome       Money
	TotalExpenses     Money
	NetBalance        Money
	TransactionCount  int
	IncomeByCategory  []CategoryAmount
	ExpenseByCategory []CategoryAmount
	TopCategory       string
}

// PeriodComparison holds component-wise percent changes against the
// preceding equivalent period.
type PeriodComparison struct {
	IncomeChange  float64
	ExpenseChange float64
	NetChange     float64
}

// SummarizePeriod aggregates the entries whose date falls inside the period,
// bounds inclusive. Entries carrying different currency codes cannot be
// summed meaningfully and are rejected with ErrMixedCurrency.
func SummarizePeriod(entries []LedgerEntry, period Period) (PeriodSummary, error) {
	if err := period.Validate(); err != nil {
		return PeriodSummary{}, err
	}

	s := PeriodSummary{Period: period, Label: period.Label()}
	incomeCats := map[string]int64{}
	expenseCats := map[string]int64{}
	currency := ""

	for _, e := range entries {
		if !period.Contains(e.Date) {
			continue
		}
		if currency == "" {
			currency = e.Currency
		} else if e.Currency != currency {
			return PeriodSummary{}, ErrMixedCurrency
		}
		s.TransactionCount++
		switch e.Kind {
		case Income:
			s.TotalIncome.Cents += e.Amount.Cents
			incomeCats[e.Category] += e.Amount.Cents
		case Expense:
			s.TotalExpenses.Cents += e.Amount.Cents
			expenseCats[e.Category] += e.Amount.Cents
		}
	}

	s.NetBalance.Cents = s.TotalIncome.Cents - s.TotalExpenses.Cents
	s.IncomeByCategory = sortedBreakdown(incomeCats)
	s.ExpenseByCategory = sortedBreakdown(expenseCats)
	if len(s.ExpenseByCategory) > 0 {
		s.TopCategory = s.ExpenseByCategory[0].Name
	}
	return s, nil
}

// ComparePeriods computes income, expense and net percent changes between two
// summaries using the zero-previous-value convention of PercentChange.
func ComparePeriods(current, previous PeriodSummary) PeriodComparison {
	return PeriodComparison{
		IncomeChange:  PercentChange(current.TotalIncome.Cents, previous.TotalIncome.Cents),
		ExpenseChange: PercentChange(current.TotalExpenses.Cents, previous.TotalExpenses.Cents),
		NetChange:     PercentChange(current.NetBalance.Cents, previous.NetBalance.Cents),
	}
}

// TopCategories returns at most n categories, largest amount first.
func TopCategories(breakdown []CategoryAmount, n int) []CategoryAmount {
	if n < 0 {
		n = 0
	}
	sorted := make([]CategoryAmount, len(breakdown))
	copy(sorted, breakdown)
	sortBreakdown(sorted)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func sortedBreakdown(cats map[string]int64) []CategoryAmount {
	if len(cats) == 0 {
		return nil
	}
	out := make([]CategoryAmount, 0, len(cats))
	for name, cents := range cats {
		out = append(out, CategoryAmount{Name: name, Amount: Money{Cents: cents}})
	}
	sortBreakdown(out)
	return out
}

func sortBreakdown(out []CategoryAmount) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount.Cents != out[j].Amount.Cents {
			return out[i].Amount.Cents > out[j].Amount.Cents
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
}
