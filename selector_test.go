package x402

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protagolabs/x402-ParsePro/types"
)

func offer(scheme, network, amount string) types.PaymentRequirements {
	return types.PaymentRequirements{
		Scheme:            scheme,
		Network:           network,
		MaxAmountRequired: amount,
		PayTo:             "0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
		MaxTimeoutSeconds: 60,
		Asset:             "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913",
	}
}

func TestDefaultSelectorServerOrder(t *testing.T) {
	accepts := []types.PaymentRequirements{
		offer("exact", "base", "1000"),
		offer("exact", "polygon", "500"),
	}

	// No filters: the server's first offer wins even when a later one is
	// cheaper.
	selected, err := DefaultSelector(accepts, "", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "base", selected.Network)

	// Same inputs, same selection.
	again, err := DefaultSelector(accepts, "", "", nil)
	require.NoError(t, err)
	assert.Equal(t, selected, again)
}

func TestDefaultSelectorFilters(t *testing.T) {
	accepts := []types.PaymentRequirements{
		offer("exact", "base", "1000"),
		offer("upto", "polygon", "500"),
		offer("exact", "polygon", "800"),
	}

	selected, err := DefaultSelector(accepts, "polygon", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "upto", selected.Scheme)

	selected, err = DefaultSelector(accepts, "polygon", "exact", nil)
	require.NoError(t, err)
	assert.Equal(t, "800", selected.MaxAmountRequired)
}

func TestDefaultSelectorMaxValue(t *testing.T) {
	accepts := []types.PaymentRequirements{
		offer("exact", "base", "1000"),
		offer("exact", "polygon", "500"),
	}

	ceiling := decimal.NewFromInt(600)
	selected, err := DefaultSelector(accepts, "", "", &ceiling)
	require.NoError(t, err)
	assert.Equal(t, "polygon", selected.Network)

	tooLow := decimal.NewFromInt(100)
	_, err = DefaultSelector(accepts, "", "", &tooLow)
	require.Error(t, err)
	assert.Equal(t, types.ErrCodeNoAcceptableRequirement, types.ErrorCode(err))
}

func TestDefaultSelectorSkipsUnparseableAmounts(t *testing.T) {
	accepts := []types.PaymentRequirements{
		offer("exact", "base", "not-a-number"),
		offer("exact", "base", "500"),
	}

	ceiling := decimal.NewFromInt(1000)
	selected, err := DefaultSelector(accepts, "", "", &ceiling)
	require.NoError(t, err)
	assert.Equal(t, "500", selected.MaxAmountRequired)
}

func TestDefaultSelectorEmptyAccepts(t *testing.T) {
	_, err := DefaultSelector(nil, "", "", nil)
	require.Error(t, err)
	assert.Equal(t, types.ErrCodeNoAcceptableRequirement, types.ErrorCode(err))

	_, err = DefaultSelector([]types.PaymentRequirements{}, "base", "exact", nil)
	require.Error(t, err)
	assert.Equal(t, types.ErrCodeNoAcceptableRequirement, types.ErrorCode(err))
}
