package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"tally/internal/cache"
	"tally/internal/core"
	"tally/internal/store"
)

// DefaultTopCategories is how many categories a monthly report surfaces.
const DefaultTopCategories = 5

// MonthlyReport bundles everything the dashboard shows for one month.
type MonthlyReport struct {
	Summary       core.PeriodSummary
	Previous      core.PeriodSummary
	Comparison    core.PeriodComparison
	SavingsRate   float64
	TopCategories []core.CategoryAmount
}

// ReportService computes period summaries and trend series over the store,
// memoizing results in a TTL'd LRU. Writers must call Invalidate for the
// affected months.
type ReportService struct {
	reader    store.EntryReader
	summaries *cache.LRUCache[MonthlyReport]
	trends    *cache.LRUCache[[]core.PeriodSummary]
}

func NewReportService(reader store.EntryReader, ttl time.Duration) *ReportService {
	return &ReportService{
		reader:    reader,
		summaries: cache.NewLRUCache[MonthlyReport](100, ttl),
		trends:    cache.NewLRUCache[[]core.PeriodSummary](20, ttl),
	}
}

// RegisterCleanup attaches both caches to a cache manager for periodic
// expiry sweeps.
func (s *ReportService) RegisterCleanup(m *cache.Manager) {
	m.Register(s.summaries)
	m.Register(s.trends)
}

// Monthly returns the report for one calendar month, including the
// comparison against the preceding month.
func (s *ReportService) Monthly(ctx context.Context, year, month int) (MonthlyReport, error) {
	key := monthKey(year, month)
	if report, found := s.summaries.Get(key); found {
		slog.DebugContext(ctx, "Monthly report cache hit", "year", year, "month", month)
		return report, nil
	}

	period := core.MonthPeriod(year, month)
	prevPeriod := period.Previous()

	current, err := s.summarize(ctx, period)
	if err != nil {
		return MonthlyReport{}, fmt.Errorf("summarize %s: %w", period.Label(), err)
	}
	previous, err := s.summarize(ctx, prevPeriod)
	if err != nil {
		return MonthlyReport{}, fmt.Errorf("summarize %s: %w", prevPeriod.Label(), err)
	}

	report := MonthlyReport{
		Summary:       current,
		Previous:      previous,
		Comparison:    core.ComparePeriods(current, previous),
		SavingsRate:   core.SavingsRate(current.TotalIncome.Cents, current.TotalExpenses.Cents),
		TopCategories: core.TopCategories(current.ExpenseByCategory, DefaultTopCategories),
	}
	s.summaries.Set(key, report)
	return report, nil
}

// Trend returns one summary per month for the trailing window ending in the
// given month, oldest first.
func (s *ReportService) Trend(ctx context.Context, year, month, periodCount int) ([]core.PeriodSummary, error) {
	if periodCount <= 0 {
		return nil, nil
	}
	key := monthKey(year, month) + ":" + strconv.Itoa(periodCount)
	if series, found := s.trends.Get(key); found {
		return series, nil
	}

	end := core.MonthPeriod(year, month).End
	window := core.Period{
		Start: core.MonthPeriod(year, month-periodCount+1).Start,
		End:   end,
	}
	entries, err := s.reader.ListPeriod(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("load trend window: %w", err)
	}
	series, err := core.BuildTrend(entries, end, periodCount)
	if err != nil {
		return nil, err
	}
	s.trends.Set(key, series)
	return series, nil
}

// Invalidate drops cached reports touching the given month. The month's own
// report, the next month's (whose comparison looks back at this one) and all
// trend series are evicted.
func (s *ReportService) Invalidate(year, month int) {
	s.summaries.Delete(monthKey(year, month))
	next := core.MonthPeriod(year, month+1).Start
	s.summaries.Delete(monthKey(next.Year(), int(next.Month())))
	s.trends.Purge()
}

func (s *ReportService) summarize(ctx context.Context, period core.Period) (core.PeriodSummary, error) {
	entries, err := s.reader.ListPeriod(ctx, period)
	if err != nil {
		return core.PeriodSummary{}, err
	}
	return core.SummarizePeriod(entries, period)
}

func monthKey(year, month int) string {
	return strconv.Itoa(year) + "-" + strconv.Itoa(month)
}
