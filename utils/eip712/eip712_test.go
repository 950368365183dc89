package eip712

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDomain() Domain {
	return Domain{
		Name:              "USD Coin",
		Version:           "2",
		ChainID:           big.NewInt(8453),
		VerifyingContract: "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913",
	}
}

func TestHexToBytes32(t *testing.T) {
	short, err := HexToBytes32("0x01")
	require.NoError(t, err)
	assert.Equal(t, byte(0x01), short[31])
	assert.Equal(t, byte(0x00), short[0])

	bare, err := HexToBytes32("01")
	require.NoError(t, err)
	assert.Equal(t, short, bare)

	_, err = HexToBytes32("0x" + "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff" + "00")
	require.Error(t, err)

	_, err = HexToBytes32("0xzz")
	require.Error(t, err)
}

func TestDomainSeparatorRequiresCompleteDomain(t *testing.T) {
	_, err := DomainSeparator(testDomain())
	require.NoError(t, err)

	incomplete := testDomain()
	incomplete.ChainID = nil
	_, err = DomainSeparator(incomplete)
	require.Error(t, err)
}

func TestTransferWithAuthDigest(t *testing.T) {
	digest, err := TransferWithAuthDigest(testDomain(),
		"0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		"0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
		"1000", "1700000000", "1700000600", "0x01")
	require.NoError(t, err)

	// Deterministic, and sensitive to every field.
	same, err := TransferWithAuthDigest(testDomain(),
		"0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		"0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
		"1000", "1700000000", "1700000600", "0x01")
	require.NoError(t, err)
	assert.Equal(t, digest, same)

	different, err := TransferWithAuthDigest(testDomain(),
		"0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		"0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
		"1001", "1700000000", "1700000600", "0x01")
	require.NoError(t, err)
	assert.NotEqual(t, digest, different)

	_, err = TransferWithAuthDigest(testDomain(),
		"0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		"0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
		"not-a-number", "1700000000", "1700000600", "0x01")
	require.Error(t, err)
}

func TestRecoverSigner(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey)

	digest, err := TransferWithAuthDigest(testDomain(),
		address.Hex(),
		"0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
		"1000", "1700000000", "1700000600", "0x01")
	require.NoError(t, err)

	sig, err := crypto.Sign(digest.Bytes(), key)
	require.NoError(t, err)

	// Raw 0/1 recovery value.
	recovered, err := RecoverSigner(digest, sig)
	require.NoError(t, err)
	assert.Equal(t, address, recovered)

	// Legacy 27/28 convention.
	legacy := make([]byte, 65)
	copy(legacy, sig)
	legacy[64] += 27
	recovered, err = RecoverSigner(digest, legacy)
	require.NoError(t, err)
	assert.Equal(t, address, recovered)

	_, err = RecoverSigner(digest, sig[:64])
	require.Error(t, err)
}
