// Package worker recomputes monthly reports and pushes them to the
// spreadsheet export.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tally/internal/amqp"
	"tally/internal/core"
	"tally/internal/sheets"
	"tally/internal/store"
)

// ExportWorker rebuilds the summary for a month and hands it to the
// exporter. It is driven two ways: ledger events from AMQP, and a periodic
// sweep over the trailing months.
type ExportWorker struct {
	reader   store.EntryReader
	exporter sheets.Exporter
}

func NewExportWorker(reader store.EntryReader, exporter sheets.Exporter) *ExportWorker {
	return &ExportWorker{
		reader:   reader,
		exporter: exporter,
	}
}

// HandleLedgerEvent processes one ledger change event. The event names the
// month that changed; the worker recomputes that month from storage so a
// lost or replayed event can never corrupt the export.
func (w *ExportWorker) HandleLedgerEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error {
	slog.InfoContext(ctx, "Processing ledger event",
		"entry_id", msg.EntryID,
		"action", msg.Action,
		"year", msg.Year,
		"month", msg.Month)

	if err := w.ExportMonth(ctx, msg.Year, msg.Month); err != nil {
		return fmt.Errorf("export month %d-%02d: %w", msg.Year, msg.Month, err)
	}
	return nil
}

// ExportMonth summarizes one calendar month and exports it.
func (w *ExportWorker) ExportMonth(ctx context.Context, year, month int) error {
	period := core.MonthPeriod(year, month)
	entries, err := w.reader.ListPeriod(ctx, period)
	if err != nil {
		return fmt.Errorf("load entries: %w", err)
	}
	summary, err := core.SummarizePeriod(entries, period)
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}

	row := sheets.ReportRow{
		Summary:     summary,
		SavingsRate: core.SavingsRate(summary.TotalIncome.Cents, summary.TotalExpenses.Cents),
	}
	if err := w.exporter.ExportMonthlySummary(ctx, row); err != nil {
		return fmt.Errorf("export summary: %w", err)
	}

	slog.InfoContext(ctx, "Exported monthly report",
		"year", year,
		"month", month,
		"transactions", summary.TransactionCount,
		"net_cents", summary.NetBalance.Cents)
	return nil
}

// ExportRecent exports the trailing months window ending at the current
// month. Months with errors are logged and skipped so one bad month does
// not starve the rest of the sweep.
func (w *ExportWorker) ExportRecent(ctx context.Context, months int) error {
	if months < 1 {
		return nil
	}
	now := time.Now()
	var failed int
	for i := months - 1; i >= 0; i-- {
		target := core.MonthPeriod(now.Year(), int(now.Month())-i).Start
		if err := w.ExportMonth(ctx, target.Year(), int(target.Month())); err != nil {
			slog.ErrorContext(ctx, "Monthly export failed",
				"year", target.Year(),
				"month", int(target.Month()),
				"error", err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d monthly exports failed", failed, months)
	}
	return nil
}
