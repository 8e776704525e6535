package model

import (
	"strings"

	"github.com/biter777/countries"
	"github.com/shopspring/decimal"
)

// euCountries is the static set of 27 EU member codes (UK excluded)
var euCountries = map[string]bool{
	"AT": true, "BE": true, "BG": true, "HR": true, "CY": true,
	"CZ": true, "DK": true, "EE": true, "FI": true, "FR": true,
	"DE": true, "GR": true, "HU": true, "IE": true, "IT": true,
	"LV": true, "LT": true, "LU": true, "MT": true, "NL": true,
	"PL": true, "PT": true, "RO": true, "SK": true, "SI": true,
	"ES": true, "SE": true,
}

// euVatRates holds standard VAT rates per EU country. EU countries
// absent from this table fall back to 20%.
var euVatRates = map[string]decimal.Decimal{
	"BE": decimal.NewFromFloat(0.21),
	"CZ": decimal.NewFromFloat(0.21),
	"LV": decimal.NewFromFloat(0.21),
	"LT": decimal.NewFromFloat(0.21),
	"NL": decimal.NewFromFloat(0.21),
	"ES": decimal.NewFromFloat(0.21),
	"HR": decimal.NewFromFloat(0.25),
	"DK": decimal.NewFromFloat(0.25),
	"SE": decimal.NewFromFloat(0.25),
	"CY": decimal.NewFromFloat(0.19),
	"DE": decimal.NewFromFloat(0.19),
	"RO": decimal.NewFromFloat(0.19),
	"EE": decimal.NewFromFloat(0.22),
	"IT": decimal.NewFromFloat(0.22),
	"SI": decimal.NewFromFloat(0.22),
	"FI": decimal.NewFromFloat(0.24),
	"GR": decimal.NewFromFloat(0.24),
	"HU": decimal.NewFromFloat(0.27),
	"IE": decimal.NewFromFloat(0.23),
	"PL": decimal.NewFromFloat(0.23),
	"PT": decimal.NewFromFloat(0.23),
	"LU": decimal.NewFromFloat(0.17),
	"MT": decimal.NewFromFloat(0.18),
}

// defaultEUVatRate applies to EU countries not listed in euVatRates
var defaultEUVatRate = decimal.NewFromFloat(0.20)

// stateProvinceCountries require a state/province in addresses
var stateProvinceCountries = map[string]bool{
	"US": true, "CA": true, "AU": true, "BR": true,
	"MX": true, "IN": true, "MY": true, "AR": true,
}

// Country is an immutable ISO 3166-1 alpha-2 country with its display
// name and EU membership resolved at construction.
type Country struct {
	code string
	name string
	isEU bool
}

// NewCountry creates a Country from a 2-letter ISO code. The code is
// normalized to upper case and must resolve in the ISO 3166 reference
// table, otherwise construction fails.
func NewCountry(code string) (Country, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if len(normalized) != 2 {
		return Country{}, NewValidationError("country", code, "iso3166_alpha2", "country code must be 2-letter ISO code")
	}

	ref := countries.ByName(normalized)
	if ref == countries.Unknown {
		return Country{}, NewValidationError("country", code, "iso3166_alpha2", "invalid country code")
	}

	return Country{
		code: normalized,
		name: ref.String(),
		isEU: euCountries[normalized],
	}, nil
}

// MustCountry creates a Country, panicking on invalid input. Intended
// for tests and static initialization.
func MustCountry(code string) Country {
	c, err := NewCountry(code)
	if err != nil {
		panic(err)
	}
	return c
}

// Code returns the upper-cased 2-letter ISO code
func (c Country) Code() string {
	return c.code
}

// Name returns the English display name from the ISO reference table
func (c Country) Name() string {
	return c.name
}

// IsEU reports EU membership
func (c Country) IsEU() bool {
	return c.isEU
}

// VATRate returns the standard VAT rate as a fraction (0.23 for 23%).
// Non-EU countries have a 0 rate; EU countries missing from the rate
// table fall back to 20%.
func (c Country) VATRate() decimal.Decimal {
	if !c.isEU {
		return decimal.Zero
	}
	if rate, ok := euVatRates[c.code]; ok {
		return rate
	}
	return defaultEUVatRate
}

// RequiresStateProvince reports whether addresses in this country must
// carry a state/province
func (c Country) RequiresStateProvince() bool {
	return stateProvinceCountries[c.code]
}

// Equal reports whether both countries have the same code
func (c Country) Equal(other Country) bool {
	return c.code == other.code
}

func (c Country) String() string {
	return c.code
}
