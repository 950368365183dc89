package types

import "math/big"

// Network identifies a blockchain by its canonical short name.
type Network string

const (
	NetworkBase        Network = "base"
	NetworkBaseSepolia Network = "base-sepolia" // testnet
	NetworkPolygon     Network = "polygon"
	NetworkPolygonAmoy Network = "polygon-amoy" // testnet
	NetworkAvalanche   Network = "avalanche"
)

// networkAliasBase is the CAIP-2 style identifier some servers still emit for
// Base mainnet.
const networkAliasBase = "eip155:8453"

// NormalizeNetwork rewrites the legacy chain-id alias for Base to its
// canonical short name. Every other value passes through verbatim.
func NormalizeNetwork(network string) string {
	if network == networkAliasBase {
		return string(NetworkBase)
	}
	return network
}

// evmChainIDs maps canonical network names to EVM chain IDs used in EIP-712
// domain separators.
var evmChainIDs = map[Network]int64{
	NetworkBase:        8453,
	NetworkBaseSepolia: 84532,
	NetworkPolygon:     137,
	NetworkPolygonAmoy: 80002,
	NetworkAvalanche:   43114,
}

// IsEVM reports whether the network is a known EVM chain.
func (n Network) IsEVM() bool {
	_, ok := evmChainIDs[n]
	return ok
}

// IsTestnet reports whether the network is a known test network.
func (n Network) IsTestnet() bool {
	return n == NetworkBaseSepolia || n == NetworkPolygonAmoy
}

// ChainID returns the EVM chain ID for the network, or false when the
// network is not a known EVM chain.
func (n Network) ChainID() (*big.Int, bool) {
	id, ok := evmChainIDs[n]
	if !ok {
		return nil, false
	}
	return big.NewInt(id), true
}

func (n Network) String() string {
	return string(n)
}
