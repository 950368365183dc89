// Package signers provides payment credential issuance: turning a selected
// payment requirement into a signed payload the resource server's
// facilitator can verify and settle.
package signers

import (
	"crypto/rand"

	"github.com/protagolabs/x402-ParsePro/types"
)

// SchemeExact is the only payment scheme the signers support.
const SchemeExact = "exact"

// Signer issues signed payment payloads on behalf of one address.
type Signer interface {
	// Address returns the payer address credentials are issued for.
	Address() string

	// Sign produces a signed payment payload satisfying the requirement.
	Sign(req types.PaymentRequirements) (*types.PaymentPayload, error)
}

// NonceFunc supplies the 32-byte authorization nonce. Injectable for tests.
type NonceFunc func() ([32]byte, error)

// RandomNonce draws a nonce from crypto/rand.
func RandomNonce() ([32]byte, error) {
	var nonce [32]byte
	_, err := rand.Read(nonce[:])
	return nonce, err
}
