package server

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/djweb/payments/internal/model"
)

const dateLayout = "2006-01-02"

// AddressRequest is the JSON shape of a billing address
type AddressRequest struct {
	Street        string `json:"street"`
	City          string `json:"city"`
	PostalCode    string `json:"postal_code"`
	Country       string `json:"country"`
	StateProvince string `json:"state_province,omitempty"`
}

// VatNumberRequest is the JSON shape of a VAT number
type VatNumberRequest struct {
	CountryPrefix string `json:"country_prefix"`
	Number        string `json:"number"`
}

// CustomerRequest is the JSON shape of a customer
type CustomerRequest struct {
	FirstName   string            `json:"first_name"`
	LastName    string            `json:"last_name"`
	Email       string            `json:"email"`
	Address     AddressRequest    `json:"address"`
	CompanyName string            `json:"company_name,omitempty"`
	VatNumber   *VatNumberRequest `json:"vat_number,omitempty"`
	Phone       string            `json:"phone,omitempty"`
}

// DiscountRequest is the JSON shape of a discount
type DiscountRequest struct {
	Code          string     `json:"code"`
	Percentage    float64    `json:"percentage"`
	MaxUsages     *int       `json:"max_usages,omitempty"`
	CurrentUsages int        `json:"current_usages"`
	ValidUntil    *time.Time `json:"valid_until,omitempty"`
}

// InvoiceCreateRequest is the JSON body of POST /api/v1/invoices.
// Dates use the YYYY-MM-DD layout and default to today when omitted.
type InvoiceCreateRequest struct {
	Customer       CustomerRequest   `json:"customer"`
	Amount         float64           `json:"amount"`
	Currency       string            `json:"currency"`
	OriginalAmount float64           `json:"original_amount"`
	ProductName    string            `json:"product_name"`
	Discount       *DiscountRequest  `json:"discount,omitempty"`
	IssueDate      string            `json:"issue_date,omitempty"`
	SaleDate       string            `json:"sale_date,omitempty"`
	PaymentMethod  string            `json:"payment_method,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// PaymentCreateRequest is the JSON body of POST /api/v1/payments
type PaymentCreateRequest struct {
	Customer    CustomerRequest   `json:"customer"`
	Amount      float64           `json:"amount"`
	Currency    string            `json:"currency"`
	Description string            `json:"description"`
	Discount    *DiscountRequest  `json:"discount,omitempty"`
	ReturnURL   string            `json:"return_url,omitempty"`
	CancelURL   string            `json:"cancel_url,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// RefundRequest is the JSON body of POST /api/v1/payments/:id/refund.
// An empty body refunds the full amount.
type RefundRequest struct {
	Amount   float64 `json:"amount,omitempty"`
	Currency string  `json:"currency,omitempty"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// InvoiceResponse is the response for invoice creation
type InvoiceResponse struct {
	Success       bool              `json:"success"`
	InvoiceID     string            `json:"invoice_id"`
	InvoiceNumber string            `json:"invoice_number,omitempty"`
	PDFURL        string            `json:"pdf_url,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	CreatedAt     *time.Time        `json:"created_at,omitempty"`
}

// PaymentIntentResponse is the response for payment creation
type PaymentIntentResponse struct {
	ID           string     `json:"id"`
	ClientSecret string     `json:"client_secret"`
	Amount       float64    `json:"amount"`
	Currency     string     `json:"currency"`
	Status       string     `json:"status"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

// PaymentResultResponse is the response for status and refund calls
type PaymentResultResponse struct {
	Success       bool              `json:"success"`
	TransactionID string            `json:"transaction_id"`
	Status        string            `json:"status"`
	Amount        float64           `json:"amount"`
	Currency      string            `json:"currency"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	ErrorMessage  string            `json:"error_message,omitempty"`
}

// ToModel converts the request into a validated customer
func (r CustomerRequest) ToModel() (model.Customer, error) {
	address, err := model.NewAddress(r.Address.Street, r.Address.City, r.Address.PostalCode, r.Address.Country, r.Address.StateProvince)
	if err != nil {
		return model.Customer{}, err
	}

	customer := model.Customer{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Address:     address,
		CompanyName: r.CompanyName,
		Phone:       r.Phone,
	}
	if r.VatNumber != nil {
		vat, err := model.NewVatNumber(r.VatNumber.CountryPrefix, r.VatNumber.Number)
		if err != nil {
			return model.Customer{}, err
		}
		customer.VatNumber = &vat
	}
	return customer, nil
}

// ToModel converts the request into a validated discount
func (r DiscountRequest) ToModel() (model.Discount, error) {
	return model.NewDiscount(r.Code, decimal.NewFromFloat(r.Percentage), r.MaxUsages, r.CurrentUsages, r.ValidUntil)
}

// ToModel converts the request into a validated invoice request
func (r InvoiceCreateRequest) ToModel() (model.InvoiceRequest, error) {
	customer, err := r.Customer.ToModel()
	if err != nil {
		return model.InvoiceRequest{}, err
	}
	amount, err := model.NewMoneyFromFloat(r.Amount, r.Currency)
	if err != nil {
		return model.InvoiceRequest{}, err
	}
	original, err := model.NewMoneyFromFloat(r.OriginalAmount, r.Currency)
	if err != nil {
		return model.InvoiceRequest{}, err
	}

	req := model.InvoiceRequest{
		Customer:       customer,
		Amount:         amount,
		OriginalAmount: original,
		ProductName:    r.ProductName,
		PaymentMethod:  r.PaymentMethod,
		Metadata:       r.Metadata,
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = model.PaymentMethodTransfer
	}

	if r.Discount != nil {
		discount, err := r.Discount.ToModel()
		if err != nil {
			return model.InvoiceRequest{}, err
		}
		req.Discount = &discount
	}
	if req.IssueDate, err = parseDate(r.IssueDate); err != nil {
		return model.InvoiceRequest{}, err
	}
	if req.SaleDate, err = parseDate(r.SaleDate); err != nil {
		return model.InvoiceRequest{}, err
	}
	return req, nil
}

// ToModel converts the request into a validated payment request
func (r PaymentCreateRequest) ToModel() (model.PaymentRequest, error) {
	customer, err := r.Customer.ToModel()
	if err != nil {
		return model.PaymentRequest{}, err
	}
	amount, err := model.NewMoneyFromFloat(r.Amount, r.Currency)
	if err != nil {
		return model.PaymentRequest{}, err
	}

	req := model.PaymentRequest{
		Amount:      amount,
		Customer:    customer,
		Description: r.Description,
		Metadata:    r.Metadata,
		ReturnURL:   r.ReturnURL,
		CancelURL:   r.CancelURL,
	}
	if r.Discount != nil {
		discount, err := r.Discount.ToModel()
		if err != nil {
			return model.PaymentRequest{}, err
		}
		req.Discount = &discount
	}
	return req, nil
}

// ToModel converts the refund body into an optional partial amount
func (r RefundRequest) ToModel() (*model.Money, error) {
	if r.Amount == 0 && r.Currency == "" {
		return nil, nil
	}
	amount, err := model.NewMoneyFromFloat(r.Amount, r.Currency)
	if err != nil {
		return nil, err
	}
	return &amount, nil
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, model.NewValidationError("date", value, "date_format", "dates must use the YYYY-MM-DD layout")
	}
	return &t, nil
}

func toInvoiceResponse(result *model.InvoiceResult) InvoiceResponse {
	return InvoiceResponse{
		Success:       result.Success,
		InvoiceID:     result.InvoiceID,
		InvoiceNumber: result.InvoiceNumber,
		PDFURL:        result.PDFURL,
		Metadata:      result.Metadata,
		CreatedAt:     result.CreatedAt,
	}
}

func toPaymentIntentResponse(intent *model.PaymentIntent) PaymentIntentResponse {
	return PaymentIntentResponse{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       intent.Amount.Amount().InexactFloat64(),
		Currency:     intent.Amount.Currency(),
		Status:       intent.Status,
		CreatedAt:    intent.CreatedAt,
	}
}

func toPaymentResultResponse(result *model.PaymentResult) PaymentResultResponse {
	return PaymentResultResponse{
		Success:       result.Success,
		TransactionID: result.TransactionID,
		Status:        result.Status,
		Amount:        result.Amount.Amount().InexactFloat64(),
		Currency:      result.Amount.Currency(),
		Metadata:      result.Metadata,
		ErrorMessage:  result.ErrorMessage,
	}
}
