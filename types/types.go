package types

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// X402Version1 is the protocol version this library speaks.
const X402Version1 = 1

// Header names used on the wire.
const (
	// PaymentHeader carries the signed payment credential on the retried request.
	PaymentHeader = "X-Payment"

	// PaymentResponseHeader carries the settlement confirmation on the
	// retried response.
	PaymentResponseHeader = "X-Payment-Response"

	// ExposeHeadersHeader is set on the retried request so the settlement
	// header stays readable across an origin boundary.
	ExposeHeadersHeader = "Access-Control-Expose-Headers"
)

// PaymentRequirements is one way the resource server accepts payment.
//
// The canonical wire spelling is camelCase; snake_case spellings are accepted
// on input. Values are immutable after parsing.
type PaymentRequirements struct {
	// Scheme of the payment protocol to use (e.g., "exact").
	Scheme string `json:"scheme" validate:"required"`

	// Network of the blockchain to send payment on. Normalized to the
	// canonical short name during unmarshal (see NormalizeNetwork).
	Network string `json:"network" validate:"required"`

	// Maximum amount required to pay for the resource in atomic units of the
	// asset. Represented as a decimal string because Go does not support
	// uint256. Empty means zero.
	MaxAmountRequired string `json:"maxAmountRequired"`

	// URL of the resource to pay for.
	Resource string `json:"resource"`

	// Description of the resource being purchased.
	Description string `json:"description"`

	// MIME type of the resource response.
	MimeType string `json:"mimeType"`

	// Output schema of the resource response, if applicable. Opaque.
	OutputSchema map[string]interface{} `json:"outputSchema,omitempty"`

	// Address to which the payment must be sent.
	PayTo string `json:"payTo" validate:"required"`

	// Maximum time in seconds for the resource server to respond.
	MaxTimeoutSeconds int `json:"maxTimeoutSeconds" validate:"gt=0"`

	// Token contract or currency identifier the payment is made in.
	Asset string `json:"asset" validate:"required"`

	// Extra scheme-specific payment details. For "exact" on EVM this may
	// carry the EIP-712 domain `name` and `version`.
	Extra map[string]interface{} `json:"extra,omitempty"`
}

// paymentRequirementsSnake holds the snake_case spellings for the fields
// whose camelCase and snake_case JSON keys differ.
type paymentRequirementsSnake struct {
	MaxAmountRequired *string                `json:"max_amount_required"`
	MimeType          *string                `json:"mime_type"`
	OutputSchema      map[string]interface{} `json:"output_schema"`
	PayTo             *string                `json:"pay_to"`
	MaxTimeoutSeconds *int                   `json:"max_timeout_seconds"`
}

// UnmarshalJSON accepts both camelCase and snake_case field spellings,
// normalizes the network alias, and enforces the amount invariant.
func (pr *PaymentRequirements) UnmarshalJSON(data []byte) error {
	type plain PaymentRequirements
	var camel plain
	if err := json.Unmarshal(data, &camel); err != nil {
		return err
	}

	var snake paymentRequirementsSnake
	if err := json.Unmarshal(data, &snake); err != nil {
		return err
	}
	if snake.MaxAmountRequired != nil {
		camel.MaxAmountRequired = *snake.MaxAmountRequired
	}
	if snake.MimeType != nil {
		camel.MimeType = *snake.MimeType
	}
	if snake.OutputSchema != nil {
		camel.OutputSchema = snake.OutputSchema
	}
	if snake.PayTo != nil {
		camel.PayTo = *snake.PayTo
	}
	if snake.MaxTimeoutSeconds != nil {
		camel.MaxTimeoutSeconds = *snake.MaxTimeoutSeconds
	}

	*pr = PaymentRequirements(camel)
	pr.Network = NormalizeNetwork(pr.Network)

	if _, err := pr.Amount(); err != nil {
		return err
	}
	return nil
}

// Amount parses MaxAmountRequired as a non-negative integer amount in atomic
// units. The empty string is treated as zero.
func (pr *PaymentRequirements) Amount() (decimal.Decimal, error) {
	if pr.MaxAmountRequired == "" {
		return decimal.Zero, nil
	}

	amount, err := decimal.NewFromString(pr.MaxAmountRequired)
	if err != nil {
		return decimal.Zero, fmt.Errorf("maxAmountRequired must be an integer encoded as a string: %w", err)
	}
	if !amount.IsInteger() {
		return decimal.Zero, fmt.Errorf("maxAmountRequired %q is not an integer", pr.MaxAmountRequired)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("maxAmountRequired %q is negative", pr.MaxAmountRequired)
	}
	return amount, nil
}

// Validate checks that the requirement carries every field a payment needs.
func (pr *PaymentRequirements) Validate() error {
	if pr.Scheme == "" {
		return fmt.Errorf("paymentRequirements.scheme is required")
	}
	if pr.Network == "" {
		return fmt.Errorf("paymentRequirements.network is required")
	}
	if pr.PayTo == "" {
		return fmt.Errorf("paymentRequirements.payTo is required")
	}
	if pr.Asset == "" {
		return fmt.Errorf("paymentRequirements.asset is required")
	}
	if pr.MaxTimeoutSeconds <= 0 {
		return fmt.Errorf("paymentRequirements.maxTimeoutSeconds must be greater than 0")
	}
	if _, err := pr.Amount(); err != nil {
		return err
	}
	return nil
}

// ExtraString returns a string value from Extra, or fallback when absent.
func (pr *PaymentRequirements) ExtraString(key, fallback string) string {
	if pr.Extra == nil {
		return fallback
	}
	if v, ok := pr.Extra[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// PaymentRequiredResponse is the body of a 402 challenge: the protocol
// version, the server's accepted payment requirements in preference order,
// and a human-readable reason. Discarded after selection.
type PaymentRequiredResponse struct {
	X402Version int                   `json:"x402Version" validate:"required"`
	Accepts     []PaymentRequirements `json:"accepts" validate:"dive"`
	Error       string                `json:"error"`
}

// UnmarshalJSON accepts both the canonical "x402Version" and the snake_case
// "x402_version" spelling of the version field.
func (r *PaymentRequiredResponse) UnmarshalJSON(data []byte) error {
	type plain PaymentRequiredResponse
	var camel plain
	if err := json.Unmarshal(data, &camel); err != nil {
		return err
	}

	var snake struct {
		X402Version *int `json:"x402_version"`
	}
	if err := json.Unmarshal(data, &snake); err != nil {
		return err
	}
	if snake.X402Version != nil {
		camel.X402Version = *snake.X402Version
	}

	*r = PaymentRequiredResponse(camel)
	return nil
}

// SettlementReceipt is the decoded settlement confirmation carried by the
// X-Payment-Response header of a successfully retried response.
type SettlementReceipt struct {
	Success     bool   `json:"success"`
	Transaction string `json:"transaction"`
	Network     string `json:"network,omitempty"`
	Payer       string `json:"payer,omitempty"`
}
