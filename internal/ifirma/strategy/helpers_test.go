package strategy_test

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/djweb/payments/internal/model"
)

// frozenTime is the fake clock instant shared by payload tests
var frozenTime = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func fakeClock() clockwork.Clock {
	return clockwork.NewFakeClockAt(frozenTime)
}

// newRequest builds a minimal valid invoice request for the given
// country, currency and business status
func newRequest(t *testing.T, countryCode, currency string, business bool) model.InvoiceRequest {
	t.Helper()

	state := ""
	if model.MustCountry(countryCode).RequiresStateProvince() {
		state = "State"
	}
	addr, err := model.NewAddress("ul. Testowa 123", "Warsaw", "00-001", countryCode, state)
	require.NoError(t, err)

	customer := model.Customer{
		FirstName: "Jan",
		LastName:  "Kowalski",
		Email:     "jan@example.com",
		Address:   addr,
	}
	if business {
		customer.CompanyName = "ACME Sp. z o.o."
	}

	amount, err := model.NewMoneyFromFloat(123.45, currency)
	require.NoError(t, err)

	return model.InvoiceRequest{
		Customer:       customer,
		Amount:         amount,
		OriginalAmount: amount,
		ProductName:    "Test Product",
		PaymentMethod:  model.PaymentMethodTransfer,
	}
}

func withDiscount(t *testing.T, req model.InvoiceRequest, percentage float64) model.InvoiceRequest {
	t.Helper()
	d, err := model.NewDiscount("CODE", decimal.NewFromFloat(percentage), nil, 0, nil)
	require.NoError(t, err)
	req.Discount = &d
	return req
}
