// Package sheets exports monthly ledger reports to a Google spreadsheet.
package sheets

import (
	"context"
	"strconv"

	"tally/internal/core"
)

// ReportRow is one exported month.
type ReportRow struct {
	Summary     core.PeriodSummary
	SavingsRate float64
}

// Exporter writes monthly report rows to an external sink.
type Exporter interface {
	ExportMonthlySummary(ctx context.Context, row ReportRow) error
}

// Header is the first spreadsheet row.
var Header = []any{
	"Month", "Income", "Expenses", "Net", "Transactions", "Savings Rate %", "Top Category",
}

// Values renders the row the way the spreadsheet stores it, amounts as
// decimal numbers.
func (r ReportRow) Values() []any {
	return []any{
		r.Summary.Label,
		centsToNumber(r.Summary.TotalIncome.Cents),
		centsToNumber(r.Summary.TotalExpenses.Cents),
		centsToNumber(r.Summary.NetBalance.Cents),
		r.Summary.TransactionCount,
		r.SavingsRate,
		r.Summary.TopCategory,
	}
}

func centsToNumber(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := strconv.FormatInt(cents/100, 10) + "." + pad2(cents%100)
	if neg {
		return "-" + s
	}
	return s
}

func pad2(v int64) string {
	if v < 10 {
		return "0" + strconv.FormatInt(v, 10)
	}
	return strconv.FormatInt(v, 10)
}
