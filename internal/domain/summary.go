package domain

import (
	"math"
	"time"
)

// Summary holds the derived financial totals of an invoice.
type Summary struct {
	Subtotal       float64 `json:"subtotal"`
	DiscountRate   float64 `json:"discount_rate"`
	DiscountAmount float64 `json:"discount_amount"`
	TaxRate        float64 `json:"tax_rate"`
	TaxAmount      float64 `json:"tax_amount"`
	Total          float64 `json:"total"`
}

// round2 rounds to the nearest cent, half away from zero. Rounding each line
// independently keeps floating-point drift from accumulating across items.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// ComputeSummary derives per-line amounts and invoice totals from the line
// items and the two percentage rates. It is pure: the input slice is not
// mutated, rates are assumed already validated to [0, 100], and calling it
// twice on the same input yields identical output.
//
// The discount applies to the subtotal; tax applies to the discounted amount.
func ComputeSummary(items []LineItem, taxRate, discountRate float64) ([]LineItem, Summary) {
	computed := make([]LineItem, len(items))
	subtotal := 0.0
	for i, it := range items {
		it.Amount = round2(it.Quantity * it.Rate)
		computed[i] = it
		subtotal += it.Amount
	}
	subtotal = round2(subtotal) // cent-aligned already; guards against float residue

	discountAmount := round2(subtotal * discountRate / 100)
	afterDiscount := subtotal - discountAmount
	taxAmount := round2(afterDiscount * taxRate / 100)
	total := round2(afterDiscount + taxAmount)

	return computed, Summary{
		Subtotal:       subtotal,
		DiscountRate:   discountRate,
		DiscountAmount: discountAmount,
		TaxRate:        taxRate,
		TaxAmount:      taxAmount,
		Total:          total,
	}
}

// ValidateLineItems rejects negative quantities or rates.
func ValidateLineItems(items []LineItem) error {
	for _, it := range items {
		if it.Quantity < 0 || it.Rate < 0 {
			return ErrInvalidLineItem
		}
	}
	return nil
}

// ValidateRates rejects percentage rates outside [0, 100].
func ValidateRates(taxRate, discountRate float64) error {
	if taxRate < 0 || taxRate > 100 || discountRate < 0 || discountRate > 100 {
		return ErrInvalidRate
	}
	return nil
}

// DateLayout is the calendar-date wire format supplied by the request layer.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date into a UTC-midnight time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// DateOnly truncates t to its UTC calendar date. Due-date comparisons ignore
// time of day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
