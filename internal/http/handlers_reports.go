package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"tally/internal/core"
	"tally/internal/services"
)

type categoryAmountJSON struct {
	Name        string `json:"name"`
	AmountCents int64  `json:"amount_cents"`
	Amount      string `json:"amount"`
}

type summaryJSON struct {
	Label             string               `json:"label"`
	Start             string               `json:"start"`
	End               string               `json:"end"`
	TotalIncomeCents  int64                `json:"total_income_cents"`
	TotalIncome       string               `json:"total_income"`
	TotalExpenseCents int64                `json:"total_expenses_cents"`
	TotalExpenses     string               `json:"total_expenses"`
	NetBalanceCents   int64                `json:"net_balance_cents"`
	NetBalance        string               `json:"net_balance"`
	TransactionCount  int                  `json:"transaction_count"`
	IncomeByCategory  []categoryAmountJSON `json:"income_by_category"`
	ExpenseByCategory []categoryAmountJSON `json:"expense_by_category"`
	TopCategory       string               `json:"top_category,omitempty"`
}

type comparisonJSON struct {
	IncomeChange  float64 `json:"income_change"`
	ExpenseChange float64 `json:"expense_change"`
	NetChange     float64 `json:"net_change"`
}

type monthlyReportJSON struct {
	Summary       summaryJSON          `json:"summary"`
	Previous      summaryJSON          `json:"previous"`
	Comparison    comparisonJSON       `json:"comparison"`
	SavingsRate   float64              `json:"savings_rate"`
	TopCategories []categoryAmountJSON `json:"top_categories"`
}

func (s *Server) toBreakdownJSON(breakdown []core.CategoryAmount) []categoryAmountJSON {
	out := make([]categoryAmountJSON, 0, len(breakdown))
	for _, c := range breakdown {
		out = append(out, categoryAmountJSON{
			Name:        c.Name,
			AmountCents: c.Amount.Cents,
			Amount:      core.FormatAmount(c.Amount.Cents, s.defaultCurrency),
		})
	}
	return out
}

func (s *Server) toSummaryJSON(sum core.PeriodSummary) summaryJSON {
	return summaryJSON{
		Label:             sum.Label,
		Start:             sum.Period.Start.String(),
		End:               sum.Period.End.String(),
		TotalIncomeCents:  sum.TotalIncome.Cents,
		TotalIncome:       core.FormatAmount(sum.TotalIncome.Cents, s.defaultCurrency),
		TotalExpenseCents: sum.TotalExpenses.Cents,
		TotalExpenses:     core.FormatAmount(sum.TotalExpenses.Cents, s.defaultCurrency),
		NetBalanceCents:   sum.NetBalance.Cents,
		NetBalance:        core.FormatAmount(sum.NetBalance.Cents, s.defaultCurrency),
		TransactionCount:  sum.TransactionCount,
		IncomeByCategory:  s.toBreakdownJSON(sum.IncomeByCategory),
		ExpenseByCategory: s.toBreakdownJSON(sum.ExpenseByCategory),
		TopCategory:       sum.TopCategory,
	}
}

func (s *Server) toReportJSON(report services.MonthlyReport) monthlyReportJSON {
	return monthlyReportJSON{
		Summary:  s.toSummaryJSON(report.Summary),
		Previous: s.toSummaryJSON(report.Previous),
		Comparison: comparisonJSON{
			IncomeChange:  report.Comparison.IncomeChange,
			ExpenseChange: report.Comparison.ExpenseChange,
			NetChange:     report.Comparison.NetChange,
		},
		SavingsRate:   report.SavingsRate,
		TopCategories: s.toBreakdownJSON(report.TopCategories),
	}
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	year, month := parseYearMonth(r)
	if month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "month must be between 1 and 12")
		return
	}

	report, err := s.reports.Monthly(r.Context(), year, month)
	if err != nil {
		slog.ErrorContext(r.Context(), "Monthly report error", "error", err, "year", year, "month", month)
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.toReportJSON(report))
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	year, month := parseYearMonth(r)
	if month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "month must be between 1 and 12")
		return
	}

	months := 6
	if v := strings.TrimSpace(r.URL.Query().Get("months")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 60 {
			writeError(w, http.StatusBadRequest, "months must be between 1 and 60")
			return
		}
		months = n
	}

	series, err := s.reports.Trend(r.Context(), year, month, months)
	if err != nil {
		slog.ErrorContext(r.Context(), "Trend error", "error", err, "year", year, "month", month, "months", months)
		writeDomainError(w, err)
		return
	}

	out := make([]summaryJSON, 0, len(series))
	for _, sum := range series {
		out = append(out, s.toSummaryJSON(sum))
	}
	writeJSON(w, http.StatusOK, map[string]any{"series": out})
}
