package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"billfold/internal/domain"
)

func TestComputeSummary_DiscountAndTax(t *testing.T) {
	items := []domain.LineItem{
		{Description: "Design", Quantity: 2, Rate: 19.99},
		{Description: "Hosting", Quantity: 1, Rate: 5},
		{Description: "Stock photos", Quantity: 3, Rate: 0.33},
	}

	computed, sum := domain.ComputeSummary(items, 8.5, 10)

	assert.Equal(t, 39.98, computed[0].Amount)
	assert.Equal(t, 5.0, computed[1].Amount)
	assert.Equal(t, 0.99, computed[2].Amount)

	assert.Equal(t, 45.97, sum.Subtotal)
	assert.Equal(t, 4.6, sum.DiscountAmount)
	assert.Equal(t, 3.52, sum.TaxAmount)
	assert.Equal(t, 44.89, sum.Total)
	assert.Equal(t, 10.0, sum.DiscountRate)
	assert.Equal(t, 8.5, sum.TaxRate)
}

func TestComputeSummary_NoItems(t *testing.T) {
	computed, sum := domain.ComputeSummary(nil, 18, 5)

	assert.Empty(t, computed)
	assert.Equal(t, 0.0, sum.Subtotal)
	assert.Equal(t, 0.0, sum.DiscountAmount)
	assert.Equal(t, 0.0, sum.TaxAmount)
	assert.Equal(t, 0.0, sum.Total)
}

func TestComputeSummary_ZeroRates(t *testing.T) {
	items := []domain.LineItem{{Description: "Consulting", Quantity: 4, Rate: 125}}

	_, sum := domain.ComputeSummary(items, 0, 0)

	assert.Equal(t, 500.0, sum.Subtotal)
	assert.Equal(t, 0.0, sum.DiscountAmount)
	assert.Equal(t, 0.0, sum.TaxAmount)
	assert.Equal(t, 500.0, sum.Total)
}

func TestComputeSummary_FullDiscount(t *testing.T) {
	items := []domain.LineItem{{Description: "Comped", Quantity: 1, Rate: 99.99}}

	_, sum := domain.ComputeSummary(items, 20, 100)

	assert.Equal(t, 99.99, sum.Subtotal)
	assert.Equal(t, 99.99, sum.DiscountAmount)
	assert.Equal(t, 0.0, sum.TaxAmount)
	assert.Equal(t, 0.0, sum.Total)
}

func TestComputeSummary_RoundsHalfUpPerLine(t *testing.T) {
	// 3 * 0.335 = 1.005 which must round to 1.01, not 1.00
	items := []domain.LineItem{{Description: "Widget", Quantity: 3, Rate: 0.335}}

	computed, sum := domain.ComputeSummary(items, 0, 0)

	assert.Equal(t, 1.01, computed[0].Amount)
	assert.Equal(t, 1.01, sum.Subtotal)
}

func TestComputeSummary_DoesNotMutateInput(t *testing.T) {
	items := []domain.LineItem{{Description: "Audit", Quantity: 2, Rate: 50}}

	domain.ComputeSummary(items, 10, 0)

	assert.Equal(t, 0.0, items[0].Amount)
}

func TestComputeSummary_Deterministic(t *testing.T) {
	items := []domain.LineItem{
		{Description: "A", Quantity: 7, Rate: 13.37},
		{Description: "B", Quantity: 0.5, Rate: 99.95},
	}

	_, first := domain.ComputeSummary(items, 12.5, 7.5)
	_, second := domain.ComputeSummary(items, 12.5, 7.5)

	assert.Equal(t, first, second)
}

func TestValidateLineItems(t *testing.T) {
	assert.NoError(t, domain.ValidateLineItems([]domain.LineItem{{Quantity: 1, Rate: 10}}))
	assert.NoError(t, domain.ValidateLineItems(nil))
	assert.ErrorIs(t, domain.ValidateLineItems([]domain.LineItem{{Quantity: -1, Rate: 10}}), domain.ErrInvalidLineItem)
	assert.ErrorIs(t, domain.ValidateLineItems([]domain.LineItem{{Quantity: 1, Rate: -0.01}}), domain.ErrInvalidLineItem)
}

func TestValidateRates(t *testing.T) {
	assert.NoError(t, domain.ValidateRates(0, 0))
	assert.NoError(t, domain.ValidateRates(100, 100))
	assert.ErrorIs(t, domain.ValidateRates(-1, 0), domain.ErrInvalidRate)
	assert.ErrorIs(t, domain.ValidateRates(0, 101), domain.ErrInvalidRate)
}

func TestParseDate(t *testing.T) {
	d, err := domain.ParseDate("2026-08-01")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = domain.ParseDate("01/08/2026")
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	_, err = domain.ParseDate("")
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestDateOnly(t *testing.T) {
	ts := time.Date(2026, 8, 29, 17, 45, 12, 999, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), domain.DateOnly(ts))
}
