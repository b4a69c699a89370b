package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"browser-mcp/internal/adapter/mcpserver"
	"browser-mcp/internal/application/port/output"
	"browser-mcp/internal/di"
	"browser-mcp/internal/infrastructure/env"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

var version = "dev"

const (
	transportStdio = "stdio"
	transportHTTP  = "http"
)

type rootOptions struct {
	transport string
	addr      string
	logLevel  string
}

func newRootCmd() *cobra.Command {
	envService := env.NewEnvService()
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "browser-mcp",
		Short:        "MCP server that lets an agent drive a real browser",
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, envService, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.transport, "transport", envService.GetWithDefault("MCP_TRANSPORT", transportStdio),
		"MCP transport: stdio or http")
	flags.StringVar(&opts.addr, "addr", envService.GetWithDefault("MCP_HTTP_ADDR", "127.0.0.1:8931"),
		"listen address for the http transport")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides LOG_LEVEL)")

	return cmd
}

func run(cmd *cobra.Command, cfgPort output.ConfigPort, opts *rootOptions) error {
	if opts.transport != transportStdio && opts.transport != transportHTTP {
		return fmt.Errorf("unknown transport %q, want %s or %s", opts.transport, transportStdio, transportHTTP)
	}

	cfg, err := di.ConfigFromEnv(cfgPort)
	if err != nil {
		return err
	}
	cfg.Version = version
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}

	container, err := di.NewContainer(cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container.Logger.Info("Server starting", "transport", opts.transport, "version", version)

	if opts.transport == transportHTTP {
		return serveHTTP(ctx, opts.addr, mcpserver.NewHTTPHandler(container.Server), container.Logger)
	}
	if err := container.Server.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	return nil
}

func serveHTTP(ctx context.Context, addr string, handler http.Handler, log output.LoggerPort) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP transport listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	log.Info("HTTP transport stopped")
	return nil
}
