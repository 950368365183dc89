package signers

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/protagolabs/x402-ParsePro/types"
	"github.com/protagolabs/x402-ParsePro/utils/eip712"
)

// Defaults for the EIP-712 domain when the requirement's extra bag does not
// carry the token's name and version. These are the USDC values, the asset
// x402 services overwhelmingly price in.
const (
	defaultDomainName    = "USD Coin"
	defaultDomainVersion = "2"
)

// minValiditySeconds floors the authorization window so a slow settlement
// does not expire a credential mid-flight.
const minValiditySeconds = 600

var _ Signer = (*EVMSigner)(nil)

// EVMSigner issues EIP-3009 transferWithAuthorization credentials signed
// with a secp256k1 private key.
type EVMSigner struct {
	key     *ecdsa.PrivateKey
	address common.Address
	nonce   NonceFunc
	now     func() time.Time
}

// NewEVMSigner builds a signer from a hex-encoded private key, with or
// without a 0x prefix.
func NewEVMSigner(privateKeyHex string) (*EVMSigner, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	return &EVMSigner{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
		nonce:   RandomNonce,
		now:     time.Now,
	}, nil
}

// Address returns the payer address as a checksummed hex string.
func (s *EVMSigner) Address() string {
	return s.address.Hex()
}

// Sign builds and signs an EIP-3009 authorization for the requirement.
func (s *EVMSigner) Sign(req types.PaymentRequirements) (*types.PaymentPayload, error) {
	if req.Scheme != SchemeExact {
		return nil, issuanceError(ErrUnsupportedScheme,
			fmt.Sprintf("scheme %q is not supported", req.Scheme), nil)
	}

	network := types.Network(req.Network)
	chainID, ok := network.ChainID()
	if !ok {
		return nil, issuanceError(ErrUnknownChainID,
			fmt.Sprintf("no chain ID known for network %q", req.Network), nil)
	}

	amount, err := req.Amount()
	if err != nil {
		return nil, issuanceError(ErrInvalidAmount, "requirement amount is invalid", err)
	}

	nonce, err := s.nonce()
	if err != nil {
		return nil, issuanceError(ErrNonceFailed, "failed to generate authorization nonce", err)
	}

	validitySeconds := req.MaxTimeoutSeconds
	if validitySeconds < minValiditySeconds {
		validitySeconds = minValiditySeconds
	}
	now := s.now().Unix()

	auth := types.EVMAuthorization{
		From:        s.address.Hex(),
		To:          common.HexToAddress(req.PayTo).Hex(),
		Value:       amount.String(),
		ValidAfter:  fmt.Sprintf("%d", now),
		ValidBefore: fmt.Sprintf("%d", now+int64(validitySeconds)),
		Nonce:       "0x" + hex.EncodeToString(nonce[:]),
	}

	domain := eip712.Domain{
		Name:              req.ExtraString("name", defaultDomainName),
		Version:           req.ExtraString("version", defaultDomainVersion),
		ChainID:           chainID,
		VerifyingContract: req.Asset,
	}

	digest, err := eip712.TransferWithAuthDigest(domain,
		auth.From, auth.To, auth.Value, auth.ValidAfter, auth.ValidBefore, auth.Nonce)
	if err != nil {
		return nil, issuanceError(ErrSigningFailed, "failed to build signing digest", err)
	}

	sig, err := crypto.Sign(digest.Bytes(), s.key)
	if err != nil {
		return nil, issuanceError(ErrSigningFailed, "failed to sign authorization", err)
	}
	// Contracts expect the legacy 27/28 recovery value.
	if sig[64] < 27 {
		sig[64] += 27
	}

	return &types.PaymentPayload{
		X402Version: types.X402Version1,
		Scheme:      req.Scheme,
		Network:     req.Network,
		Payload: types.ExactEVMPayload{
			Signature:     "0x" + hex.EncodeToString(sig),
			Authorization: auth,
		},
	}, nil
}

func issuanceError(reason, message string, cause error) *types.PaymentError {
	return types.NewPaymentError(types.ErrCodeCredentialIssuanceFailed,
		fmt.Sprintf("%s: %s", reason, message), cause)
}
