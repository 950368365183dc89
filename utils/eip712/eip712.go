// Package eip712 implements the EIP-712 hashing needed to sign and recover
// EIP-3009 transferWithAuthorization payloads without an RPC connection.
package eip712

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Domain is the EIP-712 domain separator input.
type Domain struct {
	Name              string // token name, e.g. "USD Coin"
	Version           string // token version, e.g. "2"
	ChainID           *big.Int
	VerifyingContract string // token contract address "0x..."
}

var (
	domainTypeHash = crypto.Keccak256Hash([]byte(
		"EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)"))

	transferAuthTypeHash = crypto.Keccak256Hash([]byte(
		"TransferWithAuthorization(address from,address to,uint256 value,uint256 validAfter,uint256 validBefore,bytes32 nonce)"))
)

// hashWords keccak256-hashes the concatenation of already 32-byte-aligned
// words, matching abi.encode for the static types used here.
func hashWords(words ...[]byte) common.Hash {
	var joined []byte
	for _, w := range words {
		joined = append(joined, w...)
	}
	return crypto.Keccak256Hash(joined)
}

// uint256Word returns the 32-byte right-aligned representation of n.
func uint256Word(n *big.Int) []byte {
	b := n.Bytes()
	if len(b) > 32 {
		b = b[len(b)-32:]
	}
	out := make([]byte, 32)
	copy(out[32-len(b):], b)
	return out
}

// addressWord left-pads an address into a 32-byte word.
func addressWord(a common.Address) []byte {
	out := make([]byte, 32)
	copy(out[12:], a.Bytes())
	return out
}

func parseUint256(s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid decimal integer string %q", s)
	}
	return n, nil
}

// HexToBytes32 decodes a 0x-prefixed (or bare) hex string into a 32-byte
// array, right-aligning shorter inputs.
func HexToBytes32(hexStr string) ([32]byte, error) {
	var out [32]byte
	b, err := hex.DecodeString(strings.TrimPrefix(hexStr, "0x"))
	if err != nil {
		return out, err
	}
	if len(b) > 32 {
		return out, fmt.Errorf("value longer than 32 bytes")
	}
	copy(out[32-len(b):], b)
	return out, nil
}

// DomainSeparator hashes the EIP-712 domain:
// keccak256(abi.encode(domainTypeHash, keccak256(name), keccak256(version), chainId, verifyingContract)).
func DomainSeparator(d Domain) (common.Hash, error) {
	if d.Name == "" || d.Version == "" || d.ChainID == nil || d.VerifyingContract == "" {
		return common.Hash{}, errors.New("incomplete EIP-712 domain")
	}
	return hashWords(
		domainTypeHash.Bytes(),
		crypto.Keccak256Hash([]byte(d.Name)).Bytes(),
		crypto.Keccak256Hash([]byte(d.Version)).Bytes(),
		uint256Word(d.ChainID),
		addressWord(common.HexToAddress(d.VerifyingContract)),
	), nil
}

// HashTransferWithAuthorization hashes the EIP-3009 struct:
// keccak256(abi.encode(typeHash, from, to, value, validAfter, validBefore, nonce)).
func HashTransferWithAuthorization(from, to common.Address, value, validAfter, validBefore *big.Int, nonce [32]byte) common.Hash {
	return hashWords(
		transferAuthTypeHash.Bytes(),
		addressWord(from),
		addressWord(to),
		uint256Word(value),
		uint256Word(validAfter),
		uint256Word(validBefore),
		nonce[:],
	)
}

// TypedDataHash returns the digest to sign: keccak256("\x19\x01" || domainSeparator || structHash).
func TypedDataHash(domainSeparator, structHash common.Hash) common.Hash {
	data := append([]byte{0x19, 0x01}, domainSeparator.Bytes()...)
	data = append(data, structHash.Bytes()...)
	return crypto.Keccak256Hash(data)
}

// TransferWithAuthDigest builds the full signing digest for an EIP-3009
// transferWithAuthorization. value/validAfter/validBefore are decimal
// strings, nonce is hex.
func TransferWithAuthDigest(domain Domain, fromHex, toHex, value, validAfter, validBefore, nonceHex string) (common.Hash, error) {
	domainSep, err := DomainSeparator(domain)
	if err != nil {
		return common.Hash{}, err
	}

	valueBI, err := parseUint256(value)
	if err != nil {
		return common.Hash{}, err
	}
	validAfterBI, err := parseUint256(validAfter)
	if err != nil {
		return common.Hash{}, err
	}
	validBeforeBI, err := parseUint256(validBefore)
	if err != nil {
		return common.Hash{}, err
	}
	nonce, err := HexToBytes32(nonceHex)
	if err != nil {
		return common.Hash{}, err
	}

	structHash := HashTransferWithAuthorization(
		common.HexToAddress(fromHex),
		common.HexToAddress(toHex),
		valueBI, validAfterBI, validBeforeBI, nonce,
	)
	return TypedDataHash(domainSep, structHash), nil
}

// RecoverSigner recovers the address that signed digest. sig must be 65
// bytes (R||S||V); V may be 0/1 or 27/28.
func RecoverSigner(digest common.Hash, sig []byte) (common.Address, error) {
	if len(sig) != 65 {
		return common.Address{}, errors.New("signature must be 65 bytes")
	}

	s := make([]byte, 65)
	copy(s, sig)
	if s[64] >= 27 {
		s[64] -= 27
	}

	pub, err := crypto.SigToPub(digest.Bytes(), s)
	if err != nil {
		return common.Address{}, fmt.Errorf("signature recovery failed: %w", err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}
