// Package settlement decodes the settlement confirmation a resource server
// returns once a payment has been accepted.
package settlement

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/protagolabs/x402-ParsePro/types"
)

// Decode parses an X-Payment-Response header value into a settlement
// receipt. The wire form is base64(JSON). A value that cannot be decoded, or
// that carries no transaction identifier, fails with a malformed_receipt
// error.
func Decode(headerValue string) (*types.SettlementReceipt, error) {
	raw, err := base64.StdEncoding.DecodeString(headerValue)
	if err != nil {
		return nil, types.NewPaymentError(types.ErrCodeMalformedReceipt,
			"settlement header is not valid base64", err)
	}

	var receipt types.SettlementReceipt
	if err := json.Unmarshal(raw, &receipt); err != nil {
		return nil, types.NewPaymentError(types.ErrCodeMalformedReceipt,
			"settlement header is not valid JSON", err)
	}
	if receipt.Transaction == "" {
		return nil, types.NewPaymentError(types.ErrCodeMalformedReceipt,
			"settlement header carries no transaction identifier", nil)
	}

	return &receipt, nil
}

// FromResponse extracts the settlement receipt from a settled response.
// An absent header is not an error: it means no settlement occurred (the
// resource was free) and both return values are nil.
func FromResponse(resp *http.Response) (*types.SettlementReceipt, error) {
	headerValue := resp.Header.Get(types.PaymentResponseHeader)
	if headerValue == "" {
		return nil, nil
	}
	return Decode(headerValue)
}
