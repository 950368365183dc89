package signers

// Issuance failure reasons, reported inside credential_issuance_failed
// errors.
const (
	ErrUnsupportedScheme  = "unsupported_scheme"
	ErrUnsupportedNetwork = "unsupported_network"
	ErrUnknownChainID     = "unknown_chain_id"
	ErrInvalidAmount      = "invalid_amount"
	ErrNonceFailed        = "nonce_generation_failed"
	ErrSigningFailed      = "signing_failed"
)
