package ifirma_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djweb/payments/internal/ifirma"
	"github.com/djweb/payments/internal/model"
)

const (
	testUsername = "testuser"
	testKey      = "74657374696669726d616b6579" // hex for "testifirmakey"
)

var testTime = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestClient(t *testing.T, serverURL string) *ifirma.Client {
	t.Helper()
	c, err := ifirma.NewClient(testUsername, testKey,
		ifirma.WithBaseURL(serverURL),
		ifirma.WithClock(clockwork.NewFakeClockAt(testTime)),
	)
	require.NoError(t, err)
	return c
}

func domesticRequest(t *testing.T) model.InvoiceRequest {
	t.Helper()
	addr, err := model.NewAddress("ul. Marszałkowska 1", "Warsaw", "00-001", "PL", "")
	require.NoError(t, err)
	amount, err := model.NewMoneyFromFloat(99.99, "PLN")
	require.NoError(t, err)
	return model.InvoiceRequest{
		Customer: model.Customer{
			FirstName: "Jan",
			LastName:  "Kowalski",
			Email:     "jan@example.com",
			Address:   addr,
		},
		Amount:         amount,
		OriginalAmount: amount,
		ProductName:    "Subscription",
		PaymentMethod:  model.PaymentMethodTransfer,
	}
}

func ossRequest(t *testing.T) model.InvoiceRequest {
	t.Helper()
	req := domesticRequest(t)
	addr, err := model.NewAddress("Hauptstr. 1", "Berlin", "10115", "DE", "")
	require.NoError(t, err)
	req.Customer.Address = addr
	amount, err := model.NewMoneyFromFloat(99.99, "EUR")
	require.NoError(t, err)
	req.Amount = amount
	req.OriginalAmount = amount
	return req
}

func successEnvelope(id, number string) string {
	return `{"response":{"Kod":0,"Identyfikator":"` + id + `","Numer":"` + number + `","Informacja":"Faktura wystawiona"}}`
}

func TestNewClientInvalidKey(t *testing.T) {
	// An odd-length hex key must fail at construction, not on first use
	_, err := ifirma.NewClient(testUsername, "abc")
	var configErr *model.ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "invoice_key", configErr.Field)

	_, err = ifirma.NewClient(testUsername, "zzzz")
	require.ErrorAs(t, err, &configErr)
}

func TestCreateInvoiceSuccess(t *testing.T) {
	var gotPath, gotAuth, gotContentType string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authentication")
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		io.WriteString(w, successEnvelope("inv-123", "FV 1/03/2026"))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	result, err := client.CreateInvoice(context.Background(), domesticRequest(t))
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "inv-123", result.InvoiceID)
	assert.Equal(t, "FV 1/03/2026", result.InvoiceNumber)
	assert.Equal(t, srv.URL+"/fakturakraj/inv-123.pdf", result.PDFURL)
	assert.Equal(t, "/fakturakraj.json", result.Metadata["endpoint"])
	require.NotNil(t, result.CreatedAt)
	assert.Equal(t, testTime, *result.CreatedAt)

	assert.Equal(t, "/fakturakraj.json", gotPath)
	assert.Equal(t, "application/json; charset=UTF-8", gotContentType)

	// The signature base uses the production URL even when requests go
	// to a test server.
	key, _ := hex.DecodeString(testKey)
	mac := hmac.New(sha1.New, key)
	mac.Write([]byte(ifirma.DefaultBaseURL + "/fakturakraj.json"))
	mac.Write([]byte(testUsername))
	mac.Write([]byte("faktura"))
	mac.Write(gotBody)
	expected := "IAPIS user=" + testUsername + ", hmac-sha1=" + hex.EncodeToString(mac.Sum(nil))
	assert.Equal(t, expected, gotAuth)
}

func TestCreateInvoiceCanonicalJSON(t *testing.T) {
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		io.WriteString(w, successEnvelope("inv-1", "1/2026"))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	req := domesticRequest(t)
	req.ProductName = "Płatność & obsługa"

	_, err := client.CreateInvoice(context.Background(), req)
	require.NoError(t, err)

	body := string(gotBody)
	// No trailing newline, no HTML escaping, non-ASCII preserved
	assert.False(t, strings.HasSuffix(body, "\n"))
	assert.Contains(t, body, "Płatność & obsługa")
	assert.NotContains(t, body, `&`)

	require.True(t, json.Valid(gotBody))
}

func TestCreateInvoiceInvalidByteSequences(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		io.WriteString(w, successEnvelope("inv-1", "1/2026"))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	t.Run("product name", func(t *testing.T) {
		req := domesticRequest(t)
		req.ProductName = "Subscription \xff\xfe plan"

		_, err := client.CreateInvoice(context.Background(), req)

		var encodingErr *model.EncodingError
		require.ErrorAs(t, err, &encodingErr)
	})

	t.Run("address street", func(t *testing.T) {
		req := domesticRequest(t)
		req.Customer.Address.Street = "ul. \x80 Testowa"

		_, err := client.CreateInvoice(context.Background(), req)

		var encodingErr *model.EncodingError
		require.ErrorAs(t, err, &encodingErr)
	})

	// Nothing may be signed and sent to the provider
	assert.Zero(t, requests)
}

func TestCreateInvoiceProviderRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"response":{"Kod":201,"Informacja":"Invalid customer data"}}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	_, err := client.CreateInvoice(context.Background(), domesticRequest(t))

	var invoiceErr *model.InvoiceError
	require.ErrorAs(t, err, &invoiceErr)
	assert.Equal(t, 201, invoiceErr.Code)
	assert.Equal(t, "Invalid customer data", invoiceErr.Message)
	assert.Equal(t, "/fakturakraj.json", invoiceErr.Endpoint)
}

func TestCreateInvoiceRejectionWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"response":{"Kod":500}}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	_, err := client.CreateInvoice(context.Background(), domesticRequest(t))

	var invoiceErr *model.InvoiceError
	require.ErrorAs(t, err, &invoiceErr)
	assert.Equal(t, "Unknown error", invoiceErr.Message)
}

func TestCreateInvoiceMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "not json at all")
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	_, err := client.CreateInvoice(context.Background(), domesticRequest(t))

	var invoiceErr *model.InvoiceError
	require.ErrorAs(t, err, &invoiceErr)
	assert.Contains(t, invoiceErr.Message, "malformed provider response")
}

func TestCreateInvoicePDFURLPerRegime(t *testing.T) {
	var gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		io.WriteString(w, successEnvelope("inv-9", "9/2026"))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	// An OSS invoice links to the OSS document path
	result, err := client.CreateInvoice(context.Background(), ossRequest(t))
	require.NoError(t, err)
	assert.Equal(t, "/fakturaoss.json", gotPath)
	assert.Equal(t, srv.URL+"/fakturaoss/inv-9.pdf", result.PDFURL)

	// An export invoice links to the export document path
	req := ossRequest(t)
	addr, err := model.NewAddress("5th Ave 1", "New York", "10001", "US", "NY")
	require.NoError(t, err)
	req.Customer.Address = addr

	result, err = client.CreateInvoice(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "/fakturaeksportuslug.json", gotPath)
	assert.Equal(t, srv.URL+"/fakturaeksport/inv-9.pdf", result.PDFURL)
}

func TestGetInvoicePDF(t *testing.T) {
	pdfBytes := []byte("%PDF-1.4 fake content")
	var gotPath, gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authentication")
		w.Write(pdfBytes)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	data, err := client.GetInvoicePDF(context.Background(), "inv-123")
	require.NoError(t, err)
	assert.Equal(t, pdfBytes, data)
	assert.Equal(t, "/fakturakraj/inv-123.pdf", gotPath)

	// The document signature base is the requested URL with no body
	key, _ := hex.DecodeString(testKey)
	mac := hmac.New(sha1.New, key)
	mac.Write([]byte(srv.URL + "/fakturakraj/inv-123.pdf"))
	mac.Write([]byte(testUsername))
	mac.Write([]byte("faktura"))
	expected := "IAPIS user=" + testUsername + ", hmac-sha1=" + hex.EncodeToString(mac.Sum(nil))
	assert.Equal(t, expected, gotAuth)
}

func TestGetInvoicePDFNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	_, err := client.GetInvoicePDF(context.Background(), "missing")

	var invoiceErr *model.InvoiceError
	require.ErrorAs(t, err, &invoiceErr)
	assert.Equal(t, http.StatusNotFound, invoiceErr.Code)
}
