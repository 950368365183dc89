package utils

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"

	"github.com/protagolabs/x402-ParsePro/types"
)

var validate = validator.New()

// ParsePaymentRequired parses a 402 challenge body into a
// PaymentRequiredResponse. Any structural problem — invalid JSON, a missing
// protocol version, missing required requirement fields, or a malformed
// amount — fails with a malformed_challenge error.
func ParsePaymentRequired(data []byte) (*types.PaymentRequiredResponse, error) {
	var resp types.PaymentRequiredResponse

	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, types.NewPaymentError(types.ErrCodeMalformedChallenge,
			"failed to parse 402 challenge body", err)
	}

	if resp.X402Version == 0 {
		return nil, types.NewPaymentError(types.ErrCodeMalformedChallenge,
			"x402Version is required", nil)
	}

	if err := validate.Struct(&resp); err != nil {
		return nil, types.NewPaymentError(types.ErrCodeMalformedChallenge,
			"challenge validation failed", err)
	}

	for i := range resp.Accepts {
		if err := resp.Accepts[i].Validate(); err != nil {
			return nil, types.NewPaymentError(types.ErrCodeMalformedChallenge,
				"invalid payment requirement in challenge", err)
		}
	}

	return &resp, nil
}
