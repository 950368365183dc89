package signers

import (
	"encoding/hex"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protagolabs/x402-ParsePro/types"
	"github.com/protagolabs/x402-ParsePro/utils/eip712"
)

// Well-known anvil developer account 0.
const (
	testPrivateKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testAddress    = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

func testRequirement() types.PaymentRequirements {
	return types.PaymentRequirements{
		Scheme:            SchemeExact,
		Network:           "base",
		MaxAmountRequired: "1000",
		Resource:          "https://example.com/parse",
		PayTo:             "0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
		MaxTimeoutSeconds: 60,
		Asset:             "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913",
	}
}

func newTestSigner(t *testing.T) *EVMSigner {
	t.Helper()
	s, err := NewEVMSigner(testPrivateKey)
	require.NoError(t, err)
	s.nonce = func() ([32]byte, error) {
		var n [32]byte
		n[31] = 0x01
		return n, nil
	}
	s.now = func() time.Time { return time.Unix(1_700_000_000, 0) }
	return s
}

func TestNewEVMSigner(t *testing.T) {
	s, err := NewEVMSigner(testPrivateKey)
	require.NoError(t, err)
	assert.Equal(t, testAddress, s.Address())

	s, err = NewEVMSigner("0x" + testPrivateKey)
	require.NoError(t, err)
	assert.Equal(t, testAddress, s.Address())

	_, err = NewEVMSigner("not-a-key")
	require.Error(t, err)
}

func TestSign(t *testing.T) {
	s := newTestSigner(t)
	req := testRequirement()

	payload, err := s.Sign(req)
	require.NoError(t, err)

	assert.Equal(t, types.X402Version1, payload.X402Version)
	assert.Equal(t, SchemeExact, payload.Scheme)
	assert.Equal(t, "base", payload.Network)

	auth := payload.Payload.Authorization
	assert.Equal(t, testAddress, auth.From)
	assert.Equal(t, req.PayTo, auth.To)
	assert.Equal(t, "1000", auth.Value)

	// Validity window is floored at ten minutes even when the requirement
	// allows less.
	after, err := strconv.ParseInt(auth.ValidAfter, 10, 64)
	require.NoError(t, err)
	before, err := strconv.ParseInt(auth.ValidBefore, 10, 64)
	require.NoError(t, err)
	assert.Equal(t, int64(1_700_000_000), after)
	assert.Equal(t, int64(600), before-after)
}

func TestSignSignatureRecovers(t *testing.T) {
	s := newTestSigner(t)
	req := testRequirement()

	payload, err := s.Sign(req)
	require.NoError(t, err)

	auth := payload.Payload.Authorization
	chainID, ok := types.Network(req.Network).ChainID()
	require.True(t, ok)

	digest, err := eip712.TransferWithAuthDigest(eip712.Domain{
		Name:              "USD Coin",
		Version:           "2",
		ChainID:           chainID,
		VerifyingContract: req.Asset,
	}, auth.From, auth.To, auth.Value, auth.ValidAfter, auth.ValidBefore, auth.Nonce)
	require.NoError(t, err)

	sig, err := hex.DecodeString(strings.TrimPrefix(payload.Payload.Signature, "0x"))
	require.NoError(t, err)
	require.Len(t, sig, 65)
	assert.GreaterOrEqual(t, sig[64], byte(27), "wire signature carries legacy V")

	recovered, err := eip712.RecoverSigner(digest, sig)
	require.NoError(t, err)
	assert.Equal(t, testAddress, recovered.Hex())
}

func TestSignUsesDomainFromExtra(t *testing.T) {
	s := newTestSigner(t)
	req := testRequirement()
	req.Extra = map[string]interface{}{"name": "USDC", "version": "1"}

	payload, err := s.Sign(req)
	require.NoError(t, err)

	auth := payload.Payload.Authorization
	chainID, _ := types.Network(req.Network).ChainID()
	digest, err := eip712.TransferWithAuthDigest(eip712.Domain{
		Name:              "USDC",
		Version:           "1",
		ChainID:           chainID,
		VerifyingContract: req.Asset,
	}, auth.From, auth.To, auth.Value, auth.ValidAfter, auth.ValidBefore, auth.Nonce)
	require.NoError(t, err)

	sig, err := hex.DecodeString(strings.TrimPrefix(payload.Payload.Signature, "0x"))
	require.NoError(t, err)
	recovered, err := eip712.RecoverSigner(digest, sig)
	require.NoError(t, err)
	assert.Equal(t, testAddress, recovered.Hex())
}

func TestSignEmptyAmountIsZero(t *testing.T) {
	s := newTestSigner(t)
	req := testRequirement()
	req.MaxAmountRequired = ""

	payload, err := s.Sign(req)
	require.NoError(t, err)
	assert.Equal(t, "0", payload.Payload.Authorization.Value)
}

func TestSignErrors(t *testing.T) {
	s := newTestSigner(t)

	unsupported := testRequirement()
	unsupported.Scheme = "upto"
	_, err := s.Sign(unsupported)
	require.Error(t, err)
	assert.Equal(t, types.ErrCodeCredentialIssuanceFailed, types.ErrorCode(err))
	assert.Contains(t, err.Error(), ErrUnsupportedScheme)

	unknownNetwork := testRequirement()
	unknownNetwork.Network = "solana"
	_, err = s.Sign(unknownNetwork)
	require.Error(t, err)
	assert.Equal(t, types.ErrCodeCredentialIssuanceFailed, types.ErrorCode(err))
	assert.Contains(t, err.Error(), ErrUnknownChainID)

	badAmount := testRequirement()
	badAmount.MaxAmountRequired = "-5"
	_, err = s.Sign(badAmount)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrInvalidAmount)
}
