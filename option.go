package x402

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/protagolabs/x402-ParsePro/logger"
	"github.com/protagolabs/x402-ParsePro/metrics"
)

type Option func(*Client)

func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

func WithMetrics(r metrics.Recorder) Option {
	return func(c *Client) {
		c.metrics = r
	}
}

// WithSelector replaces the requirement selection policy. The function must
// honor the SelectorFunc contract: pure, order-preserving, failing with a
// no_acceptable_requirement error when nothing matches.
func WithSelector(s SelectorFunc) Option {
	return func(c *Client) {
		if s != nil {
			c.selector = s
		}
	}
}

// WithNetworkFilter restricts selection to requirements on one network.
func WithNetworkFilter(network string) Option {
	return func(c *Client) {
		c.networkFilter = network
	}
}

// WithSchemeFilter restricts selection to requirements using one scheme.
func WithSchemeFilter(scheme string) Option {
	return func(c *Client) {
		c.schemeFilter = scheme
	}
}

// WithMaxValue caps the amount, in atomic units, the client will agree to
// pay for a single request.
func WithMaxValue(v decimal.Decimal) Option {
	return func(c *Client) {
		c.maxValue = &v
	}
}

// WithTimeout bounds the whole exchange, retry included, on clients built by
// HTTPClient.
func WithTimeout(t time.Duration) Option {
	return func(c *Client) {
		c.timeout = t
	}
}

// WithBaseTransport sets the round tripper requests are actually sent over.
func WithBaseTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		if rt != nil {
			c.base = rt
		}
	}
}
