package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"tally/internal/core"
	"tally/internal/invoice"
)

type discountJSON struct {
	Type  string          `json:"type,omitempty"`
	Value decimal.Decimal `json:"value"`
}

type lineItemJSON struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Discount    *discountJSON   `json:"discount,omitempty"`
}

type invoicePreviewRequest struct {
	IssueDate string         `json:"issue_date,omitempty"`
	NetDays   int            `json:"net_days"`
	Items     []lineItemJSON `json:"items"`
	Settings  struct {
		TaxRate         decimal.Decimal `json:"tax_rate"`
		Discount        *discountJSON   `json:"discount,omitempty"`
		ShippingAmount  decimal.Decimal `json:"shipping_amount"`
		ShippingTaxRate decimal.Decimal `json:"shipping_tax_rate"`
	} `json:"settings"`
}

type lineItemResultJSON struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Discount    decimal.Decimal `json:"discount"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
}

type invoicePreviewResponse struct {
	Number         string               `json:"number"`
	IssueDate      string               `json:"issue_date"`
	DueDate        string               `json:"due_date"`
	Items          []lineItemResultJSON `json:"items"`
	Subtotal       decimal.Decimal      `json:"subtotal"`
	TotalDiscount  decimal.Decimal      `json:"total_discount"`
	TotalTax       decimal.Decimal      `json:"total_tax"`
	ShippingAmount decimal.Decimal      `json:"shipping_amount"`
	ShippingTax    decimal.Decimal      `json:"shipping_tax"`
	Total          decimal.Decimal      `json:"total"`
}

func discountFields(d *discountJSON) (decimal.Decimal, invoice.DiscountType) {
	if d == nil {
		return decimal.Decimal{}, invoice.DiscountPercentage
	}
	dt := invoice.DiscountType(d.Type)
	if dt == "" {
		dt = invoice.DiscountPercentage
	}
	return d.Value, dt
}

func (s *Server) handleInvoicePreview(w http.ResponseWriter, r *http.Request) {
	var req invoicePreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	issue := time.Now().UTC()
	if req.IssueDate != "" {
		d, err := core.ParseDate(req.IssueDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid issue date")
			return
		}
		issue = d.Time
	}

	due, err := invoice.DueDate(issue, req.NetDays)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items := make([]invoice.LineItem, 0, len(req.Items))
	for _, it := range req.Items {
		rate, dt := discountFields(it.Discount)
		items = append(items, invoice.LineItem{
			Description:  it.Description,
			Quantity:     it.Quantity,
			Rate:         it.Rate,
			TaxRate:      it.TaxRate,
			DiscountRate: rate,
			DiscountType: dt,
		})
	}

	rate, dt := discountFields(req.Settings.Discount)
	settings := invoice.Settings{
		TaxRate:         req.Settings.TaxRate,
		DiscountRate:    rate,
		DiscountType:    dt,
		ShippingAmount:  req.Settings.ShippingAmount,
		ShippingTaxRate: req.Settings.ShippingTaxRate,
	}

	totals, err := invoice.CalculateInvoice(items, settings)
	if err != nil {
		writeInvoiceError(w, err)
		return
	}

	resp := invoicePreviewResponse{
		Number:         invoice.NewInvoiceNumber(issue),
		IssueDate:      issue.Format("2006-01-02"),
		DueDate:        due.Format("2006-01-02"),
		Subtotal:       totals.Subtotal,
		TotalDiscount:  totals.TotalDiscount,
		TotalTax:       totals.TotalTax,
		ShippingAmount: totals.ShippingAmount,
		ShippingTax:    totals.ShippingTax,
		Total:          totals.Total,
	}
	for i, it := range items {
		res, err := invoice.CalculateLineItem(it)
		if err != nil {
			writeInvoiceError(w, err)
			return
		}
		resp.Items = append(resp.Items, lineItemResultJSON{
			Description: req.Items[i].Description,
			Amount:      res.Amount,
			Discount:    res.Discount,
			Tax:         res.Tax,
			Total:       res.Total,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeInvoiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, invoice.ErrNegativeQuantity),
		errors.Is(err, invoice.ErrNegativeRate),
		errors.Is(err, invoice.ErrNegativeTax),
		errors.Is(err, invoice.ErrInvalidDiscount),
		errors.Is(err, invoice.ErrInvalidShipping),
		errors.Is(err, invoice.ErrNegativeNetDays):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
