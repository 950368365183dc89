package types

import (
	"errors"
	"fmt"
)

// Error codes for the payment exchange. Payment-domain errors propagate to
// the outermost caller unchanged; anything unexpected is wrapped under
// ErrCodePaymentHandlingFailed with its cause attached.
const (
	// ErrCodeMalformedChallenge marks a 402 body that could not be parsed
	// into a PaymentRequiredResponse.
	ErrCodeMalformedChallenge = "malformed_challenge"

	// ErrCodeNoAcceptableRequirement marks a challenge whose offers were all
	// eliminated by the configured filters.
	ErrCodeNoAcceptableRequirement = "no_acceptable_requirement"

	// ErrCodeCredentialIssuanceFailed marks a failure of the signing
	// capability itself.
	ErrCodeCredentialIssuanceFailed = "credential_issuance_failed"

	// ErrCodeMalformedReceipt marks a settlement header that was present but
	// undecodable.
	ErrCodeMalformedReceipt = "malformed_receipt"

	// ErrCodeTransportFailure marks a network-level failure on the retried
	// request.
	ErrCodeTransportFailure = "transport_failure"

	// ErrCodePaymentHandlingFailed wraps unexpected failures during payment
	// handling.
	ErrCodePaymentHandlingFailed = "payment_handling_failed"
)

// PaymentError is the error type for every failure in the payment exchange.
type PaymentError struct {
	Code    string
	Message string
	Err     error
}

func (e *PaymentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *PaymentError) Unwrap() error {
	return e.Err
}

// NewPaymentError builds a PaymentError with an optional cause.
func NewPaymentError(code, message string, cause error) *PaymentError {
	return &PaymentError{Code: code, Message: message, Err: cause}
}

// IsPaymentError reports whether err is (or wraps) a PaymentError.
func IsPaymentError(err error) bool {
	var pe *PaymentError
	return errors.As(err, &pe)
}

// ErrorCode returns the payment error code carried by err, or "" when err is
// not a PaymentError.
func ErrorCode(err error) string {
	var pe *PaymentError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}
