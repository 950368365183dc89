// Package mcptool exposes the paid document-parsing client as an MCP tool,
// so agents can call the x402-gated parse service without handling the
// payment protocol themselves.
package mcptool

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/protagolabs/x402-ParsePro/config"
	"github.com/protagolabs/x402-ParsePro/logger"
	"github.com/protagolabs/x402-ParsePro/metrics"
)

// Server wraps the MCP server that exposes the parse_pdf tool.
type Server struct {
	mcpServer *mcp.Server
	cfg       *config.Config
	log       logger.Logger
	recorder  metrics.Recorder
}

// NewServer builds the MCP server and registers its tools.
func NewServer(cfg *config.Config, log logger.Logger, recorder metrics.Recorder) *Server {
	if log == nil {
		log = logger.NoopLogger{}
	}
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "parsepro",
			Version: "1.0.0",
		},
		&mcp.ServerOptions{},
	)

	s := &Server{
		mcpServer: mcpServer,
		cfg:       cfg,
		log:       log,
		recorder:  recorder,
	}
	s.registerTools()

	return s
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "parse_pdf",
		Title:       "Parse PDF document",
		Description: "Parse a PDF document to json or markdown through the paid parse service, settling the x402 payment automatically.",
	}, s.ParsePDF)
}

// Run serves MCP over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// Handler returns an http.Handler for the MCP streamable HTTP transport.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	}, nil)
}
