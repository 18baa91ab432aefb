package http

import (
	"net/http"
	"strings"
	"testing"
)

func TestInvoicePreview(t *testing.T) {
	s := newTestServer(t)

	req := map[string]any{
		"issue_date": "2024-06-01",
		"net_days":   30,
		"items": []map[string]any{
			{"description": "Design work", "quantity": "2", "rate": "100", "tax_rate": "10"},
			{"description": "Hosting", "quantity": "1", "rate": "100", "tax_rate": "0"},
		},
		"settings": map[string]any{
			"tax_rate":          "0",
			"discount":          map[string]any{"type": "fixed", "value": "20"},
			"shipping_amount":   "10",
			"shipping_tax_rate": "5",
		},
	}

	rec := doJSON(t, s, http.MethodPost, "/api/invoice/preview", req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Number        string `json:"number"`
		IssueDate     string `json:"issue_date"`
		DueDate       string `json:"due_date"`
		Subtotal      string `json:"subtotal"`
		TotalDiscount string `json:"total_discount"`
		TotalTax      string `json:"total_tax"`
		ShippingTax   string `json:"shipping_tax"`
		Total         string `json:"total"`
		Items         []struct {
			Amount string `json:"amount"`
			Tax    string `json:"tax"`
			Total  string `json:"total"`
		} `json:"items"`
	}
	decodeBody(t, rec, &resp)

	if !strings.HasPrefix(resp.Number, "INV-20240601-") {
		t.Errorf("number = %q", resp.Number)
	}
	if resp.DueDate != "2024-07-01" {
		t.Errorf("due date = %q", resp.DueDate)
	}
	if resp.Subtotal != "300" {
		t.Errorf("subtotal = %q", resp.Subtotal)
	}
	if resp.TotalDiscount != "20" {
		t.Errorf("total discount = %q", resp.TotalDiscount)
	}
	if resp.TotalTax != "20" {
		t.Errorf("total tax = %q", resp.TotalTax)
	}
	if resp.ShippingTax != "0.5" {
		t.Errorf("shipping tax = %q", resp.ShippingTax)
	}
	if resp.Total != "310.5" {
		t.Errorf("total = %q", resp.Total)
	}
	if len(resp.Items) != 2 || resp.Items[0].Total != "220" {
		t.Errorf("items = %+v", resp.Items)
	}
}

func TestInvoicePreviewRejectsBadInput(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		req  map[string]any
	}{
		{
			name: "negative net days",
			req: map[string]any{
				"net_days": -1,
				"items":    []map[string]any{},
			},
		},
		{
			name: "negative quantity",
			req: map[string]any{
				"items": []map[string]any{
					{"description": "x", "quantity": "-1", "rate": "10"},
				},
			},
		},
		{
			name: "percentage discount over 100",
			req: map[string]any{
				"items": []map[string]any{
					{"description": "x", "quantity": "1", "rate": "10",
						"discount": map[string]any{"type": "percentage", "value": "150"}},
				},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, s, http.MethodPost, "/api/invoice/preview", tt.req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400, body = %s", rec.Code, rec.Body.String())
			}
		})
	}
}
