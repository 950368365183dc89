package mcptool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/shopspring/decimal"

	x402 "github.com/protagolabs/x402-ParsePro"
	"github.com/protagolabs/x402-ParsePro/settlement"
	"github.com/protagolabs/x402-ParsePro/signers"
	"github.com/protagolabs/x402-ParsePro/types"
	"github.com/protagolabs/x402-ParsePro/utils"
)

// ParsePDFParams are the inputs of the parse_pdf tool.
type ParsePDFParams struct {
	// PrivateKey signs the payment on the caller's behalf. It is used for
	// the one exchange and never stored.
	PrivateKey string `json:"private_key" jsonschema:"User's private key to sign payments"`

	// URL of the PDF document to parse.
	URL string `json:"url" jsonschema:"URL of the PDF document to parse"`

	// Format is the desired output format, "json" or "markdown".
	Format string `json:"format" jsonschema:"Desired output format: json or markdown"`

	// VLM selects the VLM parsing model.
	VLM bool `json:"vlm" jsonschema:"Whether to use the VLM model"`

	// CustomNetworkFilter restricts payment to one network when set.
	CustomNetworkFilter string `json:"custom_network_filter,omitempty" jsonschema:"Optional network filter for payment requirements"`
}

// ParsePDFOutput is the structured result of the parse_pdf tool.
type ParsePDFOutput struct {
	// Result is the parse service's response body.
	Result string `json:"result"`

	// Transaction is the settlement transaction identifier, or null when no
	// settlement occurred.
	Transaction *string `json:"transaction"`
}

// parseRequest is the body posted to the parse endpoint.
type parseRequest struct {
	URL    string `json:"url"`
	Format string `json:"format"`
	VLM    bool   `json:"vlm"`
}

// ParsePDF performs the paid exchange against the parse service. Every
// failure comes back as a structured tool error, never a crash.
func (s *Server) ParsePDF(
	ctx context.Context,
	req *mcp.CallToolRequest,
	params *ParsePDFParams,
) (*mcp.CallToolResult, ParsePDFOutput, error) {
	if err := utils.ValidateResourceURL(params.URL); err != nil {
		return toolError("invalid url: %v", err), ParsePDFOutput{}, nil
	}
	if err := utils.ValidateOutputFormat(params.Format); err != nil {
		return toolError("invalid format: %v", err), ParsePDFOutput{}, nil
	}
	if err := utils.ValidatePrivateKey(params.PrivateKey); err != nil {
		return toolError("invalid private key: %v", err), ParsePDFOutput{}, nil
	}

	signer, err := signers.NewEVMSigner(params.PrivateKey)
	if err != nil {
		return toolError("failed to load signing account: %v", err), ParsePDFOutput{}, nil
	}
	s.log.Info("initialized signing account", map[string]any{
		"address": signer.Address(),
	})

	client := x402.NewClient(signer,
		x402.WithLogger(s.log),
		x402.WithMetrics(s.recorder),
		x402.WithTimeout(s.cfg.HTTPTimeout),
		x402.WithSelector(networkOverrideSelector(params.CustomNetworkFilter)),
	)

	body, err := json.Marshal(parseRequest{
		URL:    params.URL,
		Format: params.Format,
		VLM:    params.VLM,
	})
	if err != nil {
		return toolError("failed to encode request: %v", err), ParsePDFOutput{}, nil
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.cfg.BaseURL+s.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return toolError("failed to build request: %v", err), ParsePDFOutput{}, nil
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := client.HTTPClient().Do(httpReq)
	if err != nil {
		return toolError("request failed: %v", err), ParsePDFOutput{}, nil
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return toolError("failed to read response: %v", err), ParsePDFOutput{}, nil
	}

	output := ParsePDFOutput{Result: string(content)}

	receipt, err := settlement.FromResponse(resp)
	switch {
	case err != nil:
		// The resource result still stands; only the receipt is unusable.
		s.log.Warn("undecodable settlement header", map[string]any{
			"error": err.Error(),
		})
	case receipt == nil:
		s.log.Warn("no settlement header on response", map[string]any{
			"status": resp.StatusCode,
		})
	default:
		s.log.Info("payment settled", map[string]any{
			"transaction": receipt.Transaction,
			"network":     receipt.Network,
		})
		output.Transaction = &receipt.Transaction
	}

	return nil, output, nil
}

// networkOverrideSelector layers a caller-supplied network filter over the
// default selection policy, mirroring the injectable-selector contract.
func networkOverrideSelector(customNetworkFilter string) x402.SelectorFunc {
	return func(accepts []types.PaymentRequirements, networkFilter, schemeFilter string, maxValue *decimal.Decimal) (types.PaymentRequirements, error) {
		if customNetworkFilter != "" {
			networkFilter = customNetworkFilter
		}
		return x402.DefaultSelector(accepts, networkFilter, schemeFilter, maxValue)
	}
}

func toolError(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
		IsError: true,
	}
}
