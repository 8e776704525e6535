package model_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djweb/payments/internal/model"
)

func TestValidationError_Message(t *testing.T) {
	err := model.NewValidationError("currency", "EURO", "iso4217", "currency must be 3-letter ISO code")
	assert.Contains(t, err.Error(), "currency")
	assert.Contains(t, err.Error(), "EURO")
	assert.Contains(t, err.Error(), "iso4217")
}

func TestInvoiceError_CarriesProviderContext(t *testing.T) {
	err := model.NewInvoiceError("/fakturakraj.json", 201, "Invalid customer data")
	assert.Contains(t, err.Error(), "/fakturakraj.json")
	assert.Contains(t, err.Error(), "Invalid customer data")
	assert.Equal(t, 201, err.Code)
}

func TestEncodingError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("bad byte sequence")
	err := model.NewEncodingError("failed to encode invoice data as JSON", cause)

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "bad byte sequence")
}

func TestPaymentError_Unwrap(t *testing.T) {
	cause := errors.New("card declined")
	err := model.NewPaymentError("stripe", "charge failed", cause)

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "stripe")
}

func TestNoStrategyError_CarriesCountry(t *testing.T) {
	err := model.NewNoStrategyError("DE")
	assert.Equal(t, "DE", err.CountryCode)
	assert.Contains(t, err.Error(), "DE")
}
