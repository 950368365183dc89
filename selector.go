package x402

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/protagolabs/x402-ParsePro/types"
)

// SelectorFunc chooses one payment requirement from the server's offers.
// Implementations must be pure: same inputs, same selection, no I/O. An
// empty filter string means "no filter"; a nil maxValue means "no ceiling".
type SelectorFunc func(accepts []types.PaymentRequirements, networkFilter, schemeFilter string, maxValue *decimal.Decimal) (types.PaymentRequirements, error)

// DefaultSelector walks the offers in the server's preference order and
// returns the first one that passes the network filter, the scheme filter,
// and the spend ceiling. It fails with a no_acceptable_requirement error
// when the list is empty or every offer is filtered out.
func DefaultSelector(accepts []types.PaymentRequirements, networkFilter, schemeFilter string, maxValue *decimal.Decimal) (types.PaymentRequirements, error) {
	for _, req := range accepts {
		if networkFilter != "" && req.Network != networkFilter {
			continue
		}
		if schemeFilter != "" && req.Scheme != schemeFilter {
			continue
		}
		if maxValue != nil {
			amount, err := req.Amount()
			if err != nil || amount.GreaterThan(*maxValue) {
				continue
			}
		}
		return req, nil
	}

	ceiling := "none"
	if maxValue != nil {
		ceiling = maxValue.String()
	}
	return types.PaymentRequirements{}, types.NewPaymentError(
		types.ErrCodeNoAcceptableRequirement,
		fmt.Sprintf("no offer satisfied the filters (network=%q, scheme=%q, maxValue=%s, offers=%d)",
			networkFilter, schemeFilter, ceiling, len(accepts)),
		nil)
}
