// Package errors defines the error taxonomy for the Stellar gateway.
//
// All gateway errors are represented as GatewayError, which provides:
//   - Code: Machine-readable error identifier
//   - Message: Human-readable error description
//   - Layer: Which component layer produced the error (ledger, payments, store, server)
//   - Cause: Underlying error, if any
//   - Context: Additional error details (asset code, account address, etc.)
//
// Every orchestrator failure is expressed through one of these codes and
// mapped exactly once, at the HTTP boundary, to a status code. Use the
// provided constructor functions (NewLedgerError, NewPaymentError, etc.)
// to create properly typed errors with automatic layer assignment.
package errors

import "fmt"

// Code is a machine-readable error identifier.
type Code string

// Error codes - request validation
const (
	VALIDATION_FAILED Code = "VALIDATION_FAILED"
	UNKNOWN_ASSET     Code = "UNKNOWN_ASSET"
)

// Error codes - ledger pre-flight and submission
const (
	ACCOUNT_NOT_FOUND    Code = "ACCOUNT_NOT_FOUND"
	TRUSTLINE_MISSING    Code = "TRUSTLINE_MISSING"
	INSUFFICIENT_FUNDS   Code = "INSUFFICIENT_FUNDS"
	SUBMISSION_REJECTED  Code = "SUBMISSION_REJECTED"
	FAUCET_FUNDING_ERROR Code = "FAUCET_FUNDING_ERROR"
)

// Error codes - persistence and fallback
const (
	NOT_FOUND        Code = "NOT_FOUND"
	CONSTRAINT_ERROR Code = "CONSTRAINT_ERROR"
	INTERNAL         Code = "INTERNAL"
)

// Error codes - client side
const (
	NETWORK_ERROR Code = "NETWORK_ERROR"
)

// GatewayError is the base error type for all gateway errors.
type GatewayError struct {
	Code    Code
	Message string
	Layer   string // "ledger", "payments", "store", "server"
	Cause   error
	Context map[string]any
}

// Error returns a formatted error string.
func (e *GatewayError) Error() string {
	msg := fmt.Sprintf("[%s] %s: %s", e.Layer, e.Code, e.Message)
	if e.Cause != nil {
		msg += fmt.Sprintf(" (caused by: %v)", e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause error, enabling error chain inspection.
func (e *GatewayError) Unwrap() error {
	return e.Cause
}

// NewLedgerError creates a ledger layer error.
func NewLedgerError(code Code, message string, cause error) *GatewayError {
	return &GatewayError{
		Code:    code,
		Message: message,
		Layer:   "ledger",
		Cause:   cause,
		Context: make(map[string]any),
	}
}

// NewPaymentError creates a payments layer error.
func NewPaymentError(code Code, message string, cause error) *GatewayError {
	return &GatewayError{
		Code:    code,
		Message: message,
		Layer:   "payments",
		Cause:   cause,
		Context: make(map[string]any),
	}
}

// NewStoreError creates a store layer error.
func NewStoreError(code Code, message string, cause error) *GatewayError {
	return &GatewayError{
		Code:    code,
		Message: message,
		Layer:   "store",
		Cause:   cause,
		Context: make(map[string]any),
	}
}

// NewServerError creates a server layer error.
func NewServerError(code Code, message string, cause error) *GatewayError {
	return &GatewayError{
		Code:    code,
		Message: message,
		Layer:   "server",
		Cause:   cause,
		Context: make(map[string]any),
	}
}

// NewClientError creates a client layer error.
func NewClientError(code Code, message string, cause error) *GatewayError {
	return &GatewayError{
		Code:    code,
		Message: message,
		Layer:   "client",
		Cause:   cause,
		Context: make(map[string]any),
	}
}

// Is checks if the target error is a GatewayError with the same code.
func (e *GatewayError) Is(target error) bool {
	if target == nil {
		return false
	}
	other, ok := target.(*GatewayError)
	if !ok {
		return false
	}
	return e.Code == other.Code
}

// As checks if target is a GatewayError and assigns it.
func As(err error, target **GatewayError) bool {
	if err == nil {
		return false
	}
	if v, ok := err.(*GatewayError); ok {
		*target = v
		return true
	}
	return false
}

// CodeOf returns the code carried by err, walking the Unwrap chain.
// Errors outside the taxonomy report INTERNAL.
func CodeOf(err error) Code {
	for err != nil {
		if ge, ok := err.(*GatewayError); ok {
			return ge.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return INTERNAL
}
