// Package invoice computes billable line-item and invoice totals.
//
// Percent rates and quantities arrive as decimals, so arithmetic here uses
// shopspring/decimal rather than the cents representation the ledger core
// carries; results are rounded to two places only in the final totals.
package invoice

import (
	"errors"

	"github.com/shopspring/decimal"
)

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type (
	DiscountType string

	// LineItem is one billable row. Rates are percentages (0-100); the
	// discount is either a percentage or a fixed amount depending on
	// DiscountType.
	LineItem struct {
		Description  string
		Quantity     decimal.Decimal
		Rate         decimal.Decimal
		TaxRate      decimal.Decimal
		DiscountRate decimal.Decimal
		DiscountType DiscountType
	}

	// LineItemResult carries the derived values for one line. These are
	// always recomputed from the inputs, never edited independently.
	LineItemResult struct {
		Amount   decimal.Decimal
		Discount decimal.Decimal
		Tax      decimal.Decimal
		Total    decimal.Decimal
	}

	// Settings are the invoice-level adjustments applied on top of the
	// line items.
	Settings struct {
		TaxRate         decimal.Decimal
		DiscountRate    decimal.Decimal
		DiscountType    DiscountType
		ShippingAmount  decimal.Decimal
		ShippingTaxRate decimal.Decimal
	}

	Totals struct {
		Subtotal       decimal.Decimal
		TotalDiscount  decimal.Decimal
		TotalTax       decimal.Decimal
		ShippingAmount decimal.Decimal
		ShippingTax    decimal.Decimal
		Total          decimal.Decimal
	}
)

var (
	ErrNegativeQuantity = errors.New("negative quantity")
	ErrNegativeRate     = errors.New("negative rate")
	ErrNegativeTax      = errors.New("negative tax rate")
	ErrInvalidDiscount  = errors.New("invalid discount")
	ErrInvalidShipping  = errors.New("invalid shipping")
)

var hundred = decimal.NewFromInt(100)

func (d DiscountType) Validate() error {
	switch d {
	case DiscountPercentage, DiscountFixed, "":
		return nil
	default:
		return ErrInvalidDiscount
	}
}

func (li LineItem) Validate() error {
	if li.Quantity.IsNegative() {
		return ErrNegativeQuantity
	}
	if li.Rate.IsNegative() {
		return ErrNegativeRate
	}
	if li.TaxRate.IsNegative() || li.TaxRate.GreaterThan(hundred) {
		return ErrNegativeTax
	}
	if err := li.DiscountType.Validate(); err != nil {
		return err
	}
	if li.DiscountRate.IsNegative() {
		return ErrInvalidDiscount
	}
	if li.DiscountType != DiscountFixed && li.DiscountRate.GreaterThan(hundred) {
		return ErrInvalidDiscount
	}
	return nil
}

func (s Settings) Validate() error {
	if s.TaxRate.IsNegative() || s.TaxRate.GreaterThan(hundred) {
		return ErrNegativeTax
	}
	if err := s.DiscountType.Validate(); err != nil {
		return err
	}
	if s.DiscountRate.IsNegative() {
		return ErrInvalidDiscount
	}
	if s.DiscountType != DiscountFixed && s.DiscountRate.GreaterThan(hundred) {
		return ErrInvalidDiscount
	}
	if s.ShippingAmount.IsNegative() || s.ShippingTaxRate.IsNegative() || s.ShippingTaxRate.GreaterThan(hundred) {
		return ErrInvalidShipping
	}
	return nil
}

// CalculateLineItem derives amount, discount, tax and total for one row.
// Discount applies before tax; a fixed discount is capped at the line amount
// so the taxable base can never go negative.
func CalculateLineItem(li LineItem) (LineItemResult, error) {
	if err := li.Validate(); err != nil {
		return LineItemResult{}, err
	}
	amount := li.Quantity.Mul(li.Rate)
	discount := applyDiscount(amount, li.DiscountRate, li.DiscountType)
	tax := amount.Sub(discount).Mul(li.TaxRate).Div(hundred)
	return LineItemResult{
		Amount:   amount,
		Discount: discount,
		Tax:      tax,
		Total:    amount.Sub(discount).Add(tax),
	}, nil
}

// CalculateInvoice folds the line items into invoice totals and applies the
// invoice-level adjustments: discount against the subtotal, tax against the
// post-discount base, then shipping and its own tax.
//
// The result satisfies Total = Subtotal - TotalDiscount + TotalTax +
// ShippingAmount + ShippingTax, with every monetary field rounded to two
// places.
func CalculateInvoice(items []LineItem, settings Settings) (Totals, error) {
	if err := settings.Validate(); err != nil {
		return Totals{}, err
	}

	var subtotal, itemDiscount, itemTax decimal.Decimal
	for _, li := range items {
		r, err := CalculateLineItem(li)
		if err != nil {
			return Totals{}, err
		}
		subtotal = subtotal.Add(r.Amount)
		itemDiscount = itemDiscount.Add(r.Discount)
		itemTax = itemTax.Add(r.Tax)
	}

	invoiceDiscount := applyDiscount(subtotal, settings.DiscountRate, settings.DiscountType)
	totalDiscount := itemDiscount.Add(invoiceDiscount)
	base := subtotal.Sub(totalDiscount)
	totalTax := itemTax.Add(base.Mul(settings.TaxRate).Div(hundred))
	shippingTax := settings.ShippingAmount.Mul(settings.ShippingTaxRate).Div(hundred)

	t := Totals{
		Subtotal:       subtotal.Round(2),
		TotalDiscount:  totalDiscount.Round(2),
		TotalTax:       totalTax.Round(2),
		ShippingAmount: settings.ShippingAmount.Round(2),
		ShippingTax:    shippingTax.Round(2),
	}
	t.Total = t.Subtotal.Sub(t.TotalDiscount).Add(t.TotalTax).Add(t.ShippingAmount).Add(t.ShippingTax)
	return t, nil
}

func applyDiscount(amount, rate decimal.Decimal, dt DiscountType) decimal.Decimal {
	if dt == DiscountFixed {
		if rate.GreaterThan(amount) {
			return amount
		}
		return rate
	}
	return amount.Mul(rate).Div(hundred)
}
