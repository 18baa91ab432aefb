package http

import (
	"net/http"
	"testing"
)

func createEntry(t *testing.T, s *Server, payload map[string]any) entryResponse {
	t.Helper()
	rec := doJSON(t, s, http.MethodPost, "/api/entries", payload)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var created entryResponse
	decodeBody(t, rec, &created)
	return created
}

func expensePayload() map[string]any {
	return map[string]any{
		"kind":        "expense",
		"amount":      "45.00",
		"category":    "Groceries",
		"description": "weekly shop",
		"date":        "2024-06-10",
	}
}

func TestCreateEntry(t *testing.T) {
	s := newTestServer(t)
	created := createEntry(t, s, expensePayload())

	if created.ID == "" {
		t.Error("missing id")
	}
	if created.AmountCents != 4500 {
		t.Errorf("amount_cents = %d, want 4500", created.AmountCents)
	}
	if created.Amount != "$45.00" {
		t.Errorf("amount = %q, want $45.00", created.Amount)
	}
	if created.Currency != "USD" {
		t.Errorf("currency = %q, want default USD", created.Currency)
	}
}

func TestCreateEntryRejectsBadInput(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"bad amount", func(p map[string]any) { p["amount"] = "12.345x" }},
		{"negative amount", func(p map[string]any) { p["amount"] = "-5.00" }},
		{"zero amount", func(p map[string]any) { p["amount"] = "0" }},
		{"bad kind", func(p map[string]any) { p["kind"] = "transfer" }},
		{"bad date", func(p map[string]any) { p["date"] = "06/10/2024" }},
		{"missing category", func(p map[string]any) { p["category"] = "" }},
		{"missing description", func(p map[string]any) { p["description"] = " " }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := expensePayload()
			tt.mutate(payload)
			rec := doJSON(t, s, http.MethodPost, "/api/entries", payload)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400, body = %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestListEntriesFiltered(t *testing.T) {
	s := newTestServer(t)
	createEntry(t, s, expensePayload())

	income := expensePayload()
	income["kind"] = "income"
	income["amount"] = "4000.00"
	income["category"] = "Salary"
	income["description"] = "june pay"
	income["date"] = "2024-06-01"
	createEntry(t, s, income)

	rec := doJSON(t, s, http.MethodGet, "/api/entries?kind=income", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Entries []entryResponse `json:"entries"`
		Count   int             `json:"count"`
	}
	decodeBody(t, rec, &body)
	if body.Count != 1 || body.Entries[0].Category != "Salary" {
		t.Fatalf("body = %+v", body)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/entries?from=2024-07-01&to=2024-06-01", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("reversed range status = %d, want 400", rec.Code)
	}
}

func TestGetUpdateDeleteEntry(t *testing.T) {
	s := newTestServer(t)
	created := createEntry(t, s, expensePayload())

	rec := doJSON(t, s, http.MethodGet, "/api/entries/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	update := expensePayload()
	update["amount"] = "50.00"
	update["date"] = "2024-07-02"
	rec = doJSON(t, s, http.MethodPut, "/api/entries/"+created.ID, update)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var updated entryResponse
	decodeBody(t, rec, &updated)
	if updated.AmountCents != 5000 || updated.Date != "2024-07-02" {
		t.Fatalf("updated = %+v", updated)
	}
	if updated.CreatedAt != created.CreatedAt {
		t.Error("update must preserve created_at")
	}

	rec = doJSON(t, s, http.MethodDelete, "/api/entries/"+created.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = doJSON(t, s, http.MethodGet, "/api/entries/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestUpdateMissingEntryReturns404(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodPut, "/api/entries/nope", expensePayload())
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestCategories(t *testing.T) {
	s := newTestServer(t)
	createEntry(t, s, expensePayload())

	other := expensePayload()
	other["category"] = "Dining"
	createEntry(t, s, other)

	rec := doJSON(t, s, http.MethodGet, "/api/categories", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Categories []string `json:"categories"`
	}
	decodeBody(t, rec, &body)
	want := []string{"Dining", "Groceries"}
	if len(body.Categories) != 2 || body.Categories[0] != want[0] || body.Categories[1] != want[1] {
		t.Fatalf("categories = %v, want %v", body.Categories, want)
	}
}
