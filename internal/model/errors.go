package model

import "fmt"

// ValidationError represents value-object construction failures
type ValidationError struct {
	Field   string
	Value   interface{}
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation failed on %s: %s (value=%v, rule=%s)", e.Field, e.Message, e.Value, e.Rule)
	}
	return fmt.Sprintf("validation failed on %s: %s (rule=%s)", e.Field, e.Message, e.Rule)
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value interface{}, rule, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Rule:    rule,
		Message: message,
	}
}

// ConfigError represents invalid client configuration, raised at
// construction time and never retried
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration for %s: %s", e.Field, e.Message)
}

// NewConfigError creates a new configuration error
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// EncodingError represents a payload that could not be serialized
type EncodingError struct {
	Message string
	Cause   error
}

func (e *EncodingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("encoding failed: %s (%v)", e.Message, e.Cause)
	}
	return fmt.Sprintf("encoding failed: %s", e.Message)
}

func (e *EncodingError) Unwrap() error {
	return e.Cause
}

// NewEncodingError creates a new encoding error
func NewEncodingError(message string, cause error) *EncodingError {
	return &EncodingError{Message: message, Cause: cause}
}

// InvoiceError represents a business failure reported by the invoicing
// provider (non-zero response code), distinct from transport failures
type InvoiceError struct {
	Endpoint string
	Code     int
	Message  string
}

func (e *InvoiceError) Error() string {
	if e.Endpoint != "" {
		return fmt.Sprintf("invoice creation failed [%s] code=%d: %s", e.Endpoint, e.Code, e.Message)
	}
	return fmt.Sprintf("invoice creation failed: %s", e.Message)
}

// NewInvoiceError creates a new provider business error
func NewInvoiceError(endpoint string, code int, message string) *InvoiceError {
	return &InvoiceError{Endpoint: endpoint, Code: code, Message: message}
}

// PaymentError represents payment gateway failures
type PaymentError struct {
	Gateway string
	Message string
	Cause   error
}

func (e *PaymentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("payment gateway error (%s): %s (%v)", e.Gateway, e.Message, e.Cause)
	}
	return fmt.Sprintf("payment gateway error (%s): %s", e.Gateway, e.Message)
}

func (e *PaymentError) Unwrap() error {
	return e.Cause
}

// NewPaymentError creates a new payment gateway error
func NewPaymentError(gateway, message string, cause error) *PaymentError {
	return &PaymentError{Gateway: gateway, Message: message, Cause: cause}
}

// NoStrategyError is returned when no invoice strategy matched a request.
// With the built-in strategy set this is unreachable; it guards custom sets.
type NoStrategyError struct {
	CountryCode string
}

func (e *NoStrategyError) Error() string {
	return fmt.Sprintf("no appropriate invoice strategy found for country: %s", e.CountryCode)
}

// NewNoStrategyError creates a new selector exhaustion error
func NewNoStrategyError(countryCode string) *NoStrategyError {
	return &NoStrategyError{CountryCode: countryCode}
}
