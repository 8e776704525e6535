package model

// Address is a validated postal address. State/province is mandatory
// for countries that require it (US, CA, AU, BR, MX, IN, MY, AR).
type Address struct {
	Street        string
	City          string
	PostalCode    string
	Country       Country
	StateProvince string
}

// NewAddress creates an Address, resolving the country from its ISO
// code and enforcing the state/province requirement.
func NewAddress(street, city, postalCode, countryCode, stateProvince string) (Address, error) {
	country, err := NewCountry(countryCode)
	if err != nil {
		return Address{}, err
	}
	if country.RequiresStateProvince() && stateProvince == "" {
		return Address{}, NewValidationError("state_province", nil, "required", "state/province is required for "+country.Code())
	}
	return Address{
		Street:        street,
		City:          city,
		PostalCode:    postalCode,
		Country:       country,
		StateProvince: stateProvince,
	}, nil
}

// Customer holds billing identity data. A customer counts as a
// business when a VAT number or a company name is present.
type Customer struct {
	FirstName   string
	LastName    string
	Email       string
	Address     Address
	CompanyName string
	VatNumber   *VatNumber
	Phone       string
}

// IsB2B reports whether the customer is a business
func (c Customer) IsB2B() bool {
	return c.VatNumber != nil || c.CompanyName != ""
}

// FullName returns "first last"
func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// DisplayName returns the company name when present, the full name
// otherwise
func (c Customer) DisplayName() string {
	if c.CompanyName != "" {
		return c.CompanyName
	}
	return c.FullName()
}
