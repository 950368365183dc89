// Package x402 implements the buyer side of the x402 payment protocol: an
// HTTP interceptor that answers a 402 Payment Required challenge by signing
// a payment credential and retrying the request exactly once.
package x402

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/protagolabs/x402-ParsePro/logger"
	"github.com/protagolabs/x402-ParsePro/metrics"
	"github.com/protagolabs/x402-ParsePro/signers"
	"github.com/protagolabs/x402-ParsePro/types"
)

// Client selects payment requirements and issues payment credential headers
// on behalf of one signing identity. It is the capability the interceptor
// drives when a challenge arrives.
type Client struct {
	signer        signers.Signer
	selector      SelectorFunc
	networkFilter string
	schemeFilter  string
	maxValue      *decimal.Decimal
	timeout       time.Duration
	base          http.RoundTripper
	logger        logger.Logger
	metrics       metrics.Recorder
}

// NewClient builds a Client around a signer. By default it uses
// DefaultSelector with no filters, http.DefaultTransport, no logging, and no
// metrics.
func NewClient(signer signers.Signer, opts ...Option) *Client {
	c := &Client{
		signer:   signer,
		selector: DefaultSelector,
		base:     http.DefaultTransport,
		logger:   logger.NoopLogger{},
		metrics:  metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SelectRequirement picks one requirement from the server's offers using the
// configured selector, network/scheme filters, and spend ceiling.
func (c *Client) SelectRequirement(accepts []types.PaymentRequirements) (types.PaymentRequirements, error) {
	return c.selector(accepts, c.networkFilter, c.schemeFilter, c.maxValue)
}

// CreatePaymentHeader signs the selected requirement and encodes the payload
// into the opaque X-Payment header value: base64(JSON).
func (c *Client) CreatePaymentHeader(req types.PaymentRequirements, version int) (string, error) {
	payload, err := c.signer.Sign(req)
	if err != nil {
		return "", err
	}
	payload.X402Version = version

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", types.NewPaymentError(types.ErrCodeCredentialIssuanceFailed,
			"failed to encode payment payload", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// Transport returns the payment interceptor wrapping the configured base
// round tripper.
func (c *Client) Transport() *Transport {
	return NewTransport(c, c.base)
}

// HTTPClient returns an http.Client with payment handling installed. The
// timeout, when set, bounds the whole exchange including the single payment
// retry.
func (c *Client) HTTPClient() *http.Client {
	return &http.Client{
		Transport: c.Transport(),
		Timeout:   c.timeout,
	}
}
