// Package ifirma implements the iFirma invoicing API client: canonical
// JSON payload serialization, HMAC-SHA1 request authentication and
// typed handling of provider responses.
package ifirma

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/djweb/payments/internal/ifirma/strategy"
	"github.com/djweb/payments/internal/model"
)

// DefaultBaseURL is the production iFirma API endpoint. Invoice
// signatures are always computed against this URL, regardless of the
// configured base URL: the provider validates them against its
// canonical address.
const DefaultBaseURL = "https://www.ifirma.pl/iapi"

// authScheme is the provider's Authentication header scheme
const authScheme = "IAPIS"

// signatureDiscriminator is the fixed literal the provider requires in
// every signature base
const signatureDiscriminator = "faktura"

// Client is the iFirma invoicing client. It holds no per-call state:
// a single instance may be shared between goroutines as long as the
// underlying HTTP client is safe for concurrent use.
type Client struct {
	username string
	key      []byte
	baseURL  string
	httpc    *http.Client
	selector *strategy.Selector
	clock    clockwork.Clock
	log      zerolog.Logger
}

// Option configures the client
type Option func(*Client)

// WithBaseURL overrides the API base URL (used against test servers)
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithHTTPClient sets a custom HTTP client; timeouts, retries and
// connection pooling are its responsibility
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// WithClock injects the clock used for default invoice dates
func WithClock(clock clockwork.Clock) Option {
	return func(c *Client) {
		c.clock = clock
		c.selector = strategy.NewSelector(clock)
	}
}

// WithLogger sets the client logger. The signing key is never logged.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates an iFirma client. The invoice key is a hex-encoded
// signing secret; an odd-length or non-hex value is a configuration
// error raised here, before any request is made.
func NewClient(username, invoiceKey string, opts ...Option) (*Client, error) {
	if len(invoiceKey)%2 != 0 {
		return nil, model.NewConfigError("invoice_key", "invalid invoice key format")
	}
	key, err := hex.DecodeString(invoiceKey)
	if err != nil {
		return nil, model.NewConfigError("invoice_key", "invoice key is not valid hex")
	}

	clock := clockwork.NewRealClock()
	c := &Client{
		username: username,
		key:      key,
		baseURL:  DefaultBaseURL,
		httpc:    http.DefaultClient,
		selector: strategy.NewSelector(clock),
		clock:    clock,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// RegisterStrategy adds a custom invoicing strategy with priority over
// the built-ins
func (c *Client) RegisterStrategy(s strategy.Strategy) {
	c.selector.Register(s)
}

// CreateInvoice selects the invoicing regime for the request, builds
// and signs the payload and issues it to the provider. Transport
// failures propagate unchanged; provider rejections surface as
// *model.InvoiceError.
func (c *Client) CreateInvoice(ctx context.Context, req model.InvoiceRequest) (*model.InvoiceResult, error) {
	if err := validateText(req); err != nil {
		return nil, err
	}

	strat, err := c.selector.Select(req)
	if err != nil {
		return nil, err
	}
	endpoint := strat.Endpoint()

	body, err := encodePayload(strat.BuildPayload(req))
	if err != nil {
		return nil, err
	}

	signature := c.sign(DefaultBaseURL+endpoint, body)

	c.log.Debug().Str("endpoint", endpoint).Msg("creating invoice")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authentication", c.authHeader(signature))
	httpReq.Header.Set("Content-Type", "application/json; charset=UTF-8")

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return c.parseResponse(resp, endpoint)
}

// GetInvoicePDF fetches the rendered PDF for a previously created
// invoice. The document endpoint has its own signature base with no
// body component.
func (c *Client) GetInvoicePDF(ctx context.Context, invoiceID string) ([]byte, error) {
	endpoint := fmt.Sprintf("/fakturakraj/%s.pdf", invoiceID)
	url := c.baseURL + endpoint
	signature := c.sign(url, nil)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authentication", c.authHeader(signature))

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, model.NewInvoiceError(endpoint, resp.StatusCode, "unexpected status fetching invoice PDF")
	}
	return io.ReadAll(resp.Body)
}

// sign computes the lowercase hex HMAC-SHA1 over
// url + username + discriminator + body
func (c *Client) sign(url string, body []byte) string {
	mac := hmac.New(sha1.New, c.key)
	mac.Write([]byte(url))
	mac.Write([]byte(c.username))
	mac.Write([]byte(signatureDiscriminator))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func (c *Client) authHeader(signature string) string {
	return fmt.Sprintf("%s user=%s, hmac-sha1=%s", authScheme, c.username, signature)
}

// providerResponse is the provider's response envelope
type providerResponse struct {
	Response struct {
		Kod           int     `json:"Kod"`
		Identyfikator string  `json:"Identyfikator"`
		Numer         *string `json:"Numer"`
		Informacja    string  `json:"Informacja"`
	} `json:"response"`
}

func (c *Client) parseResponse(resp *http.Response, endpoint string) (*model.InvoiceResult, error) {
	var parsed providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, model.NewInvoiceError(endpoint, resp.StatusCode, "malformed provider response: "+err.Error())
	}

	r := parsed.Response
	if r.Kod != 0 {
		message := r.Informacja
		if message == "" {
			message = "Unknown error"
		}
		return nil, model.NewInvoiceError(endpoint, r.Kod, message)
	}

	number := ""
	if r.Numer != nil {
		number = *r.Numer
	}
	createdAt := c.clock.Now()

	return &model.InvoiceResult{
		Success:       true,
		InvoiceID:     r.Identyfikator,
		InvoiceNumber: number,
		PDFURL:        c.buildPDFURL(r.Identyfikator, endpoint),
		Metadata: map[string]string{
			"endpoint": endpoint,
			"message":  r.Informacja,
		},
		CreatedAt: &createdAt,
	}, nil
}

// buildPDFURL derives the document retrieval URL from the endpoint the
// strategy used. Pure function of the endpoint and identifier: no
// extra request is needed.
func (c *Client) buildPDFURL(invoiceID, endpoint string) string {
	pdfPath := "/fakturakraj"
	switch {
	case strings.Contains(endpoint, "fakturaoss"):
		pdfPath = "/fakturaoss"
	case strings.Contains(endpoint, "fakturaeksport"):
		pdfPath = "/fakturaeksport"
	}
	return fmt.Sprintf("%s%s/%s.pdf", c.baseURL, pdfPath, invoiceID)
}

// validateText rejects invalid byte sequences in the request's text
// fields up front. The JSON encoder never errors on them; it would
// substitute U+FFFD and a corrupted invoice would be signed and sent.
func validateText(req model.InvoiceRequest) error {
	fields := []string{
		req.ProductName,
		req.Customer.FirstName,
		req.Customer.LastName,
		req.Customer.CompanyName,
		req.Customer.Email,
		req.Customer.Phone,
		req.Customer.Address.Street,
		req.Customer.Address.City,
		req.Customer.Address.PostalCode,
		req.Customer.Address.StateProvince,
	}
	for _, field := range fields {
		if !utf8.ValidString(field) {
			return model.NewEncodingError("invoice text fields contain invalid byte sequences", nil)
		}
	}
	return nil
}

// encodePayload serializes a strategy payload to canonical JSON:
// non-ASCII preserved unescaped, no HTML escaping, no trailing newline.
func encodePayload(payload interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return nil, model.NewEncodingError("failed to encode invoice data as JSON", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
