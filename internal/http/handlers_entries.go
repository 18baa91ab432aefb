package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"tally/internal/core"
)

// entryPayload is the write-side representation of a ledger entry. The
// amount is a decimal string so clients never deal in cents.
type entryPayload struct {
	Kind        string `json:"kind"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	SubCategory string `json:"sub_category,omitempty"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Currency    string `json:"currency,omitempty"`
}

type entryResponse struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	AmountCents int64  `json:"amount_cents"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	SubCategory string `json:"sub_category,omitempty"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Currency    string `json:"currency"`
	CreatedAt   string `json:"created_at"`
}

func toEntryResponse(e core.LedgerEntry) entryResponse {
	return entryResponse{
		ID:          e.ID,
		Kind:        string(e.Kind),
		AmountCents: e.Amount.Cents,
		Amount:      core.FormatAmount(e.Amount.Cents, e.Currency),
		Category:    e.Category,
		SubCategory: e.SubCategory,
		Description: e.Description,
		Date:        e.Date.String(),
		Currency:    e.Currency,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
	}
}

func (s *Server) decodeEntry(r *http.Request) (core.LedgerEntry, error) {
	var p entryPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		return core.LedgerEntry{}, err
	}

	cents, err := core.ParseDecimalToCents(p.Amount)
	if err != nil {
		return core.LedgerEntry{}, err
	}
	date, err := core.ParseDate(p.Date)
	if err != nil {
		return core.LedgerEntry{}, err
	}
	currency := strings.TrimSpace(p.Currency)
	if currency == "" {
		currency = s.defaultCurrency
	}

	return core.LedgerEntry{
		Kind:        core.EntryKind(strings.ToLower(strings.TrimSpace(p.Kind))),
		Amount:      core.Money{Cents: cents},
		Category:    strings.TrimSpace(p.Category),
		SubCategory: strings.TrimSpace(p.SubCategory),
		Description: strings.TrimSpace(p.Description),
		Date:        date,
		Currency:    currency,
	}, nil
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	spec, by, order, err := parseFilterQuery(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	entries, err := s.entries.ListFiltered(r.Context(), spec, by, order)
	if err != nil {
		slog.ErrorContext(r.Context(), "List entries error", "error", err)
		writeDomainError(w, err)
		return
	}

	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryResponse(e))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"entries": out,
		"count":   len(out),
	})
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := s.decodeEntry(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.entries.Create(r.Context(), entry)
	if err != nil {
		slog.ErrorContext(r.Context(), "Create entry error", "error", err, "category", entry.Category, "amount_cents", entry.Amount.Cents)
		writeDomainError(w, err)
		return
	}
	s.reports.Invalidate(created.Date.Year(), int(created.Date.Month()))

	writeJSON(w, http.StatusCreated, toEntryResponse(created))
}

func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := s.entries.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryResponse(entry))
}

func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := s.decodeEntry(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	entry.ID = r.PathValue("id")

	old, err := s.entries.Get(r.Context(), entry.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	updated, err := s.entries.Update(r.Context(), entry)
	if err != nil {
		slog.ErrorContext(r.Context(), "Update entry error", "error", err, "entry_id", entry.ID)
		writeDomainError(w, err)
		return
	}
	s.reports.Invalidate(updated.Date.Year(), int(updated.Date.Month()))
	if old.Date.Year() != updated.Date.Year() || old.Date.Month() != updated.Date.Month() {
		s.reports.Invalidate(old.Date.Year(), int(old.Date.Month()))
	}

	writeJSON(w, http.StatusOK, toEntryResponse(updated))
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	old, err := s.entries.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.entries.Delete(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Delete entry error", "error", err, "entry_id", id)
		writeDomainError(w, err)
		return
	}
	s.reports.Invalidate(old.Date.Year(), int(old.Date.Month()))

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.entries.Categories(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": cats})
}
