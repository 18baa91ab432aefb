package core

import "time"

// Granularity selects how a reference date expands into period bounds.
type Granularity string

const (
	Month Granularity = "month"
)

// Period is an inclusive calendar date range.
type Period struct {
	Start Date
	End   Date
}

// MonthPeriod returns the period covering the full calendar month.
func MonthPeriod(year, month int) Period {
	start := NewDate(year, month, 1)
	end := Date{Time: start.AddDate(0, 1, -1)}
	return Period{Start: start, End: end}
}

// PeriodBounds returns the period containing ref at the given granularity.
// Month granularity yields the first and last calendar day of ref's month.
func PeriodBounds(ref Date, g Granularity) Period {
	switch g {
	default: // month is the only granularity so far
		return MonthPeriod(ref.Year(), int(ref.Month()))
	}
}

// Contains reports whether d falls within the period, bounds inclusive.
func (p Period) Contains(d Date) bool {
	return !d.Before(p.Start.Time) && !d.After(p.End.Time)
}

// Previous returns the immediately preceding equivalent period. A full
// calendar month maps to the previous month; any other range is shifted back
// by its own length.
func (p Period) Previous() Period {
	if p.isCalendarMonth() {
		prev := p.Start.AddDate(0, -1, 0)
		return MonthPeriod(prev.Year(), int(prev.Month()))
	}
	days := int(p.End.Sub(p.Start.Time)/(24*time.Hour)) + 1
	return Period{
		Start: Date{Time: p.Start.AddDate(0, 0, -days)},
		End:   Date{Time: p.End.AddDate(0, 0, -days)},
	}
}

// Label renders the period for display: "Jan 2006" for a calendar month,
// otherwise "2006-01-02..2006-01-31".
func (p Period) Label() string {
	if p.isCalendarMonth() {
		return p.Start.Format("Jan 2006")
	}
	return p.Start.String() + ".." + p.End.String()
}

func (p Period) Validate() error {
	if p.Start.IsZero() || p.End.IsZero() {
		return ErrInvalidDate
	}
	if p.Start.After(p.End.Time) {
		return ErrInvalidRange
	}
	return nil
}

func (p Period) isCalendarMonth() bool {
	if p.Start.Day() != 1 {
		return false
	}
	lastDay := p.Start.AddDate(0, 1, -1)
	return p.End.Equal(lastDay)
}

// PercentChange computes the relative change between two values. A zero
// previous value yields 100 for any growth and 0 otherwise; this is the
// dashboard's convention, kept deliberately even though it is not a true
// percentage.
func PercentChange(current, previous int64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	prev := previous
	if prev < 0 {
		prev = -prev
	}
	return float64(current-previous) / float64(prev) * 100
}

// SavingsRate is the share of income not spent, in percent. Zero income
// yields 0 rather than dividing.
func SavingsRate(totalIncome, totalExpenses int64) float64 {
	if totalIncome == 0 {
		return 0
	}
	return float64(totalIncome-totalExpenses) / float64(totalIncome) * 100
}
