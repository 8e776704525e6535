package model

import (
	"regexp"
	"strings"
)

// vatPatterns holds per-country VAT number format rules, keyed by the
// 2-letter prefix. GB stays recognized even though the UK left the EU:
// UK numbers are still commonly supplied by customers.
var vatPatterns = map[string]*regexp.Regexp{
	"AT": regexp.MustCompile(`^U\d{8}$`),
	"BE": regexp.MustCompile(`^0\d{9}$`),
	"BG": regexp.MustCompile(`^\d{9,10}$`),
	"CY": regexp.MustCompile(`^\d{8}[A-Z]$`),
	"CZ": regexp.MustCompile(`^\d{8,10}$`),
	"DE": regexp.MustCompile(`^\d{9}$`),
	"DK": regexp.MustCompile(`^\d{8}$`),
	"EE": regexp.MustCompile(`^\d{9}$`),
	"ES": regexp.MustCompile(`^[A-Z]\d{7}[A-Z0-9]$`),
	"FI": regexp.MustCompile(`^\d{8}$`),
	"FR": regexp.MustCompile(`^[A-Z0-9]{2}\d{9}$`),
	"GB": regexp.MustCompile(`^(\d{9}|\d{12}|(GD|HA)\d{3})$`),
	"GR": regexp.MustCompile(`^\d{9}$`),
	"HR": regexp.MustCompile(`^\d{11}$`),
	"HU": regexp.MustCompile(`^\d{8}$`),
	"IE": regexp.MustCompile(`^(\d{7}[A-Z]{1,2}|\d[A-Z]\d{5}[A-Z])$`),
	"IT": regexp.MustCompile(`^\d{11}$`),
	"LT": regexp.MustCompile(`^(\d{9}|\d{12})$`),
	"LU": regexp.MustCompile(`^\d{8}$`),
	"LV": regexp.MustCompile(`^\d{11}$`),
	"MT": regexp.MustCompile(`^\d{8}$`),
	"NL": regexp.MustCompile(`^\d{9}B\d{2}$`),
	"PL": regexp.MustCompile(`^\d{10}$`),
	"PT": regexp.MustCompile(`^\d{9}$`),
	"RO": regexp.MustCompile(`^\d{2,10}$`),
	"SE": regexp.MustCompile(`^\d{12}$`),
	"SI": regexp.MustCompile(`^\d{8}$`),
	"SK": regexp.MustCompile(`^\d{10}$`),
}

// nipWeights are the mod-11 checksum weights for Polish NIP numbers,
// applied to the first 9 digits.
var nipWeights = []int{6, 5, 7, 2, 3, 4, 5, 6, 7}

// VatNumber is an immutable VAT identification number: a 2-letter
// country prefix plus the national number with spaces/dashes stripped.
type VatNumber struct {
	countryPrefix string
	number        string
}

// NewVatNumber creates a VatNumber from a country prefix and the
// national number. The number is normalized by stripping spaces and
// dashes, then validated against the per-country format table. Polish
// numbers additionally pass the NIP mod-11 checksum.
func NewVatNumber(countryPrefix, number string) (VatNumber, error) {
	prefix := strings.ToUpper(strings.TrimSpace(countryPrefix))
	if len(prefix) != 2 {
		return VatNumber{}, NewValidationError("vat_number", countryPrefix, "iso3166_alpha2", "country prefix must be 2-letter ISO code")
	}

	normalized := strings.NewReplacer(" ", "", "-", "").Replace(number)
	if normalized == "" {
		return VatNumber{}, NewValidationError("vat_number", nil, "required", "VAT number cannot be empty")
	}

	if pattern, ok := vatPatterns[prefix]; ok && !pattern.MatchString(normalized) {
		return VatNumber{}, NewValidationError("vat_number", normalized, "format", "invalid VAT number format for "+prefix)
	}

	if prefix == "PL" {
		if err := validateNIPChecksum(normalized); err != nil {
			return VatNumber{}, err
		}
	}

	return VatNumber{countryPrefix: prefix, number: normalized}, nil
}

// validateNIPChecksum verifies the Polish NIP mod-11 checksum. A
// remainder of 10 is invalid by definition.
func validateNIPChecksum(number string) error {
	sum := 0
	for i, weight := range nipWeights {
		sum += int(number[i]-'0') * weight
	}
	checksum := sum % 11
	if checksum == 10 || checksum != int(number[9]-'0') {
		return NewValidationError("vat_number", number, "nip_checksum", "invalid Polish NIP checksum")
	}
	return nil
}

// CountryPrefix returns the 2-letter country prefix
func (v VatNumber) CountryPrefix() string {
	return v.countryPrefix
}

// Number returns the normalized national number without prefix
func (v VatNumber) Number() string {
	return v.number
}

// IsEU reports whether the prefix belongs to an EU member state. GB is
// format-recognized above but deliberately not part of this set.
func (v VatNumber) IsEU() bool {
	return euCountries[v.countryPrefix]
}

func (v VatNumber) String() string {
	return v.countryPrefix + v.number
}
