package types

// PaymentPayload is the signed payment credential carried base64-encoded in
// the X-Payment header of the retried request.
type PaymentPayload struct {
	// Version of the x402 payment protocol.
	X402Version int `json:"x402Version"`

	Scheme string `json:"scheme"`

	Network string `json:"network"`

	Payload ExactEVMPayload `json:"payload"`
}

// ExactEVMPayload is the "exact" scheme payload for EVM networks: an
// EIP-3009 authorization and its EIP-712 signature.
type ExactEVMPayload struct {
	// Signature is the 65-byte R||S||V signature, hex encoded with a 0x
	// prefix. V is on the legacy 27/28 convention.
	Signature string `json:"signature"`

	Authorization EVMAuthorization `json:"authorization"`
}

// EVMAuthorization is the transferWithAuthorization struct being signed.
// Numeric fields are decimal strings because Go does not support uint256.
type EVMAuthorization struct {
	From        string `json:"from"`
	To          string `json:"to"`
	Value       string `json:"value"`
	ValidAfter  string `json:"validAfter"`
	ValidBefore string `json:"validBefore"`
	Nonce       string `json:"nonce"`
}
