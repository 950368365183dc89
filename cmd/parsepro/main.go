package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/protagolabs/x402-ParsePro/config"
	"github.com/protagolabs/x402-ParsePro/logger"
	"github.com/protagolabs/x402-ParsePro/mcptool"
	"github.com/protagolabs/x402-ParsePro/metrics"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "parsepro:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.NewZapLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.Transport {
	case config.TransportHTTP:
		return runHTTP(ctx, cfg, log)
	default:
		server := mcptool.NewServer(cfg, log, metrics.NoopRecorder{})
		log.Info("serving MCP over stdio", nil)
		return server.Run(ctx)
	}
}

func runHTTP(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	recorder := metrics.NewPrometheusRecorder()
	server := mcptool.NewServer(cfg, log, recorder)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Any("/mcp", gin.WrapH(server.Handler()))
	router.Any("/mcp/*path", gin.WrapH(http.StripPrefix("/mcp", server.Handler())))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Info("serving MCP over http", map[string]any{
		"addr": cfg.ListenAddr,
	})

	select {
	case <-ctx.Done():
		return srv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}
