// Package server exposes the billing library over HTTP.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/djweb/payments/internal/model"
)

// Config holds server configuration
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// InvoiceService is the invoicing surface the server consumes
type InvoiceService interface {
	CreateInvoice(ctx context.Context, req model.InvoiceRequest) (*model.InvoiceResult, error)
	GetInvoicePDF(ctx context.Context, invoiceID string) ([]byte, error)
}

// PaymentGateway is the payment surface the server consumes
type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, req model.PaymentRequest) (*model.PaymentIntent, error)
	GetPaymentStatus(ctx context.Context, paymentID string) (*model.PaymentResult, error)
	RefundPayment(ctx context.Context, paymentID string, amount *model.Money) (*model.PaymentResult, error)
	ParseWebhookEvent(payload []byte, signature string) (*model.WebhookEvent, error)
}

// WebhookHandler processes webhook events it declares support for
type WebhookHandler interface {
	Supports(eventType string) bool
	Handle(ctx context.Context, event model.WebhookEvent) error
}

// Server is the HTTP API server
type Server struct {
	config   *Config
	router   *gin.Engine
	invoices InvoiceService
	payments PaymentGateway
	handlers []WebhookHandler
	log      zerolog.Logger
}

// NewServer creates the API server around the given collaborators
func NewServer(config *Config, invoices InvoiceService, payments PaymentGateway, log zerolog.Logger) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(requestLogger(log))

	s := &Server{
		config:   config,
		router:   router,
		invoices: invoices,
		payments: payments,
		log:      log,
	}
	s.setupRoutes()
	return s
}

// RegisterWebhookHandler adds a handler consulted for incoming webhook
// events. Handlers run in registration order.
func (s *Server) RegisterWebhookHandler(h WebhookHandler) {
	s.handlers = append(s.handlers, h)
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/invoices", s.handleCreateInvoice)
		v1.GET("/invoices/:id/pdf", s.handleInvoicePDF)
		v1.POST("/payments", s.handleCreatePayment)
		v1.GET("/payments/:id", s.handlePaymentStatus)
		v1.POST("/payments/:id/refund", s.handleRefundPayment)
	}

	s.router.POST("/webhooks/stripe", s.handleStripeWebhook)
}

// Run starts the server and blocks until it exits
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	s.log.Info().Str("address", s.config.Address).Msg("starting API server")
	return srv.ListenAndServe()
}

// Handler exposes the router, used by tests
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleCreateInvoice(c *gin.Context) {
	var req InvoiceCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	invoiceReq, err := req.ToModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid invoice request", Details: err.Error()})
		return
	}

	result, err := s.invoices.CreateInvoice(c.Request.Context(), invoiceReq)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toInvoiceResponse(result))
}

func (s *Server) handleInvoicePDF(c *gin.Context) {
	pdf, err := s.invoices.GetInvoicePDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (s *Server) handleCreatePayment(c *gin.Context) {
	var req PaymentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	paymentReq, err := req.ToModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid payment request", Details: err.Error()})
		return
	}

	intent, err := s.payments.CreatePaymentIntent(c.Request.Context(), paymentReq)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPaymentIntentResponse(intent))
}

func (s *Server) handlePaymentStatus(c *gin.Context) {
	result, err := s.payments.GetPaymentStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentResultResponse(result))
}

func (s *Server) handleRefundPayment(c *gin.Context) {
	var req RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	amount, err := req.ToModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid refund request", Details: err.Error()})
		return
	}

	result, err := s.payments.RefundPayment(c.Request.Context(), c.Param("id"), amount)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentResultResponse(result))
}

func (s *Server) handleStripeWebhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read payload"})
		return
	}

	event, err := s.payments.ParseWebhookEvent(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "webhook verification failed", Details: err.Error()})
		return
	}

	for _, h := range s.handlers {
		if !h.Supports(event.Type) {
			continue
		}
		if err := h.Handle(c.Request.Context(), *event); err != nil {
			s.log.Error().Err(err).Str("event_type", event.Type).Msg("webhook handler failed")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "webhook handling failed"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}

// respondError maps domain errors onto HTTP statuses
func (s *Server) respondError(c *gin.Context, err error) {
	var (
		validationErr *model.ValidationError
		invoiceErr    *model.InvoiceError
		paymentErr    *model.PaymentError
		noStrategyErr *model.NoStrategyError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: err.Error()})
	case errors.As(err, &noStrategyErr):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "no invoicing regime", Details: err.Error()})
	case errors.As(err, &invoiceErr):
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "invoicing provider rejected the request", Details: err.Error()})
	case errors.As(err, &paymentErr):
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "payment gateway error", Details: err.Error()})
	default:
		s.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
