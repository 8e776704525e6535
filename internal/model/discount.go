package model

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Discount is an immutable discount code with a percentage in the
// inclusive 0-100 range, optional usage cap and optional expiry.
type Discount struct {
	code          string
	percentage    decimal.Decimal
	maxUsages     *int
	currentUsages int
	validUntil    *time.Time
}

// NewDiscount creates a Discount. Percentage outside [0, 100] fails
// construction; 0 and 100 are both valid boundaries.
func NewDiscount(code string, percentage decimal.Decimal, maxUsages *int, currentUsages int, validUntil *time.Time) (Discount, error) {
	if percentage.IsNegative() || percentage.GreaterThan(hundred) {
		return Discount{}, NewValidationError("percentage", percentage.String(), "range_0_100", "discount percentage must be between 0 and 100")
	}
	return Discount{
		code:          code,
		percentage:    percentage,
		maxUsages:     maxUsages,
		currentUsages: currentUsages,
		validUntil:    validUntil,
	}, nil
}

// Code returns the discount code
func (d Discount) Code() string {
	return d.code
}

// Percentage returns the discount percentage (0-100)
func (d Discount) Percentage() decimal.Decimal {
	return d.percentage
}

// IsValid reports whether the discount is usable at the given instant:
// not exhausted (current < max, when a cap is set) and not expired.
func (d Discount) IsValid(now time.Time) bool {
	if d.maxUsages != nil && d.currentUsages >= *d.maxUsages {
		return false
	}
	if d.validUntil != nil && d.validUntil.Before(now) {
		return false
	}
	return true
}

// DiscountAmount returns the discounted portion of the original amount,
// rounded to 2 decimal places, or zero when the discount is not valid.
func (d Discount) DiscountAmount(original decimal.Decimal, now time.Time) decimal.Decimal {
	if !d.IsValid(now) {
		return decimal.Zero
	}
	return original.Mul(d.percentage).Div(hundred).Round(2)
}

// FinalAmount returns the original amount less the discount
func (d Discount) FinalAmount(original decimal.Decimal, now time.Time) decimal.Decimal {
	return original.Sub(d.DiscountAmount(original, now))
}
