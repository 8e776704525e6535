package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// zeroDecimalCurrencies have no minor unit: their smallest unit is the
// whole unit itself.
var zeroDecimalCurrencies = map[string]bool{
	"JPY": true,
	"KRW": true,
}

// Money is an immutable amount in a single currency with 2-decimal
// fixed-point semantics. Construct via NewMoney or FromSmallestUnit.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney creates Money from a decimal amount and a 3-letter ISO
// currency code. The amount is rounded to 2 decimal places and must be
// non-negative; the currency is normalized to upper case.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, NewValidationError("amount", amount.String(), "non_negative", "amount cannot be negative")
	}
	if len(currency) != 3 {
		return Money{}, NewValidationError("currency", currency, "iso4217", "currency must be 3-letter ISO code")
	}
	return Money{
		amount:   amount.Round(2),
		currency: strings.ToUpper(currency),
	}, nil
}

// NewMoneyFromFloat creates Money from a float amount
func NewMoneyFromFloat(amount float64, currency string) (Money, error) {
	return NewMoney(decimal.NewFromFloat(amount), currency)
}

// FromSmallestUnit creates Money from a smallest-unit amount as used by
// payment processors (cents, or whole units for zero-decimal currencies)
func FromSmallestUnit(amount int64, currency string) (Money, error) {
	d := decimal.NewFromInt(amount)
	if !zeroDecimalCurrencies[strings.ToUpper(currency)] {
		d = d.Div(decimal.NewFromInt(100))
	}
	return NewMoney(d, currency)
}

// Amount returns the amount rounded to 2 decimal places
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the upper-cased 3-letter currency code
func (m Money) Currency() string {
	return m.currency
}

// ToSmallestUnit converts the amount to the currency's smallest unit
func (m Money) ToSmallestUnit() int64 {
	if zeroDecimalCurrencies[m.currency] {
		return m.amount.IntPart()
	}
	return m.amount.Mul(decimal.NewFromInt(100)).IntPart()
}

// Equal reports whether both amount and currency match
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(2), m.currency)
}
