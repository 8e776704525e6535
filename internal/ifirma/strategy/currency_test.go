package strategy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djweb/payments/internal/ifirma/strategy"
)

func TestCurrencySupports(t *testing.T) {
	s := strategy.NewCurrency(fakeClock())

	assert.True(t, s.Supports(newRequest(t, "PL", "EUR", false)))
	assert.True(t, s.Supports(newRequest(t, "PL", "USD", true)))
	assert.False(t, s.Supports(newRequest(t, "PL", "PLN", false)))
	assert.False(t, s.Supports(newRequest(t, "DE", "EUR", false)))
}

func TestCurrencyPayload(t *testing.T) {
	s := strategy.NewCurrency(fakeClock())

	req := newRequest(t, "PL", "EUR", false)

	payload, ok := s.BuildPayload(req).(strategy.DomesticPayload)
	require.True(t, ok)

	// The foreign-currency shape is the domestic one plus explicit
	// sale-type and currency fields.
	assert.Equal(t, "KRAJOWA", payload.TypSprzedazy)
	assert.Equal(t, "EUR", payload.Waluta)
	assert.Equal(t, 123.45, payload.Zaplacono)
	assert.Equal(t, "2026-03-15", payload.DataWystawienia)

	require.Len(t, payload.Pozycje, 1)
	assert.Equal(t, 0.23, payload.Pozycje[0].StawkaVat)
}
