package x402

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/protagolabs/x402-ParsePro/metrics"
	"github.com/protagolabs/x402-ParsePro/types"
	"github.com/protagolabs/x402-ParsePro/utils"
)

// Transport is an http.RoundTripper that handles 402 Payment Required
// responses: it parses the challenge, selects a requirement, attaches a
// signed payment credential, and resends the request exactly once.
//
// Each RoundTrip call owns an independent exchange, so a single Transport is
// safe for concurrent use; no state is shared across requests.
type Transport struct {
	client *Client
	base   http.RoundTripper
}

func NewTransport(client *Client, base http.RoundTripper) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{client: client, base: base}
}

// RoundTrip sends the request and settles a 402 challenge when one comes
// back. The retried request inherits the original request's context, so the
// retry is bounded by the caller's deadline, not a fresh one.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ex := &exchange{transport: t, request: req}

	ex.onRequest(req)

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	return ex.onResponse(resp)
}

// exchange holds the state of one logical request/response exchange. It is
// created per RoundTrip and never reused.
type exchange struct {
	transport *Transport
	request   *http.Request
	retried   bool
}

// onRequest is a reserved extension point; all payment logic lives in
// onResponse.
func (ex *exchange) onRequest(*http.Request) {}

func (ex *exchange) onResponse(resp *http.Response) (*http.Response, error) {
	c := ex.transport.client

	if resp.StatusCode != http.StatusPaymentRequired {
		return resp, nil
	}
	if ex.retried {
		// A second 402 on the same exchange is surfaced to the caller
		// as-is, never retried again.
		c.logger.Warn("resource still requires payment after retry", map[string]any{
			"url": ex.request.URL.String(),
		})
		return resp, nil
	}

	settled, err := ex.settle(resp)
	if err != nil {
		ex.retried = false
		c.metrics.IncCounter(metrics.EventFailure, map[string]string{"network": ""})
		c.logger.Error("payment handling failed", map[string]any{
			"url":   ex.request.URL.String(),
			"error": err.Error(),
		})
		if types.IsPaymentError(err) {
			return nil, err
		}
		return nil, types.NewPaymentError(types.ErrCodePaymentHandlingFailed,
			"failed to handle payment", err)
	}
	return settled, nil
}

// settle reads and parses the challenge, obtains a credential, and resends
// the request with the credential attached. The retried request is never
// sent before the challenge body has been fully read and parsed.
func (ex *exchange) settle(resp *http.Response) (*http.Response, error) {
	c := ex.transport.client

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read challenge body: %w", err)
	}
	resp.Body.Close()

	challenge, err := utils.ParsePaymentRequired(body)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("received payment challenge", map[string]any{
		"url":    ex.request.URL.String(),
		"offers": len(challenge.Accepts),
		"reason": challenge.Error,
	})

	selected, err := c.SelectRequirement(challenge.Accepts)
	if err != nil {
		return nil, err
	}
	labels := map[string]string{"network": selected.Network}
	c.metrics.IncCounter(metrics.EventChallenge, labels)

	header, err := c.CreatePaymentHeader(selected, challenge.X402Version)
	if err != nil {
		return nil, err
	}

	retry := ex.request.Clone(ex.request.Context())
	if ex.request.GetBody != nil {
		retry.Body, err = ex.request.GetBody()
		if err != nil {
			return nil, fmt.Errorf("replay request body: %w", err)
		}
	}
	retry.Header.Set(types.PaymentHeader, header)
	retry.Header.Set(types.ExposeHeadersHeader, types.PaymentResponseHeader)

	ex.retried = true
	c.metrics.IncCounter(metrics.EventRetry, labels)
	c.logger.Info("retrying request with payment credential", map[string]any{
		"url":     ex.request.URL.String(),
		"network": selected.Network,
		"amount":  selected.MaxAmountRequired,
		"payTo":   selected.PayTo,
	})

	start := time.Now()
	retryResp, err := ex.transport.base.RoundTrip(retry)
	c.metrics.ObserveLatency(metrics.OperationPaymentRetry, time.Since(start), labels)
	if err != nil {
		return nil, types.NewPaymentError(types.ErrCodeTransportFailure,
			"retried request failed", err)
	}

	if retryResp.StatusCode != http.StatusPaymentRequired {
		c.metrics.IncCounter(metrics.EventSettled, labels)
	}
	return ex.onResponse(retryResp)
}
