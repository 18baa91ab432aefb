package core

// BuildTrend produces one summary per month for the trailing window ending
// in the month containing end, oldest first. Months without entries yield
// all-zero summaries rather than being omitted, so charts always receive a
// contiguous series of exactly periodCount elements.
func BuildTrend(entries []LedgerEntry, end Date, periodCount int) ([]PeriodSummary, error) {
	if err := end.Validate(); err != nil {
		return nil, err
	}
	if periodCount <= 0 {
		return nil, nil
	}

	out := make([]PeriodSummary, 0, periodCount)
	period := PeriodBounds(end, Month)
	for i := 0; i < periodCount-1; i++ {
		period = period.Previous()
	}
	for i := 0; i < periodCount; i++ {
		s, err := SummarizePeriod(entries, period)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
		period = MonthPeriod(period.Start.Year(), int(period.Start.Month())+1)
	}
	return out, nil
}
