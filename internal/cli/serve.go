package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/turing/internal/config"
	httpAdapter "github.com/aretw0/turing/pkg/adapters/http"
	mcpAdapter "github.com/aretw0/turing/pkg/adapters/mcp"
	"github.com/aretw0/turing/pkg/observability"
)

// shutdownTimeout bounds graceful shutdown of the HTTP servers.
const shutdownTimeout = 5 * time.Second

// Serve runs the HTTP API until ctx is cancelled.
func Serve(ctx context.Context, cfg *config.Config) error {
	logger := cfg.Logger()

	store, err := NewStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore(store, logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	eng := createServerEngine(cfg, store, logger, metrics.Hooks())
	handler := httpAdapter.NewHandler(eng, store,
		httpAdapter.WithLogger(logger),
		httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
	)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Starting Turing Server", "addr", srv.Addr, "store", cfg.Store.Backend, "step_limit", eng.StepLimit())
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("Start shutdown...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			return srv.Close()
		}
		logger.Info("Turing Server stopped gracefully")
		return nil
	}
}

// MCP transports.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// ServeMCP runs the Model Context Protocol server on the given transport.
func ServeMCP(ctx context.Context, cfg *config.Config, transport, baseURL string) error {
	logger := cfg.Logger()

	store, err := NewStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore(store, logger)

	srv := mcpAdapter.NewServer(createServerEngine(cfg, store, logger), store)

	switch transport {
	case TransportStdio:
		logger.Info("Starting Turing MCP Server (Stdio)...")
		return srv.ServeStdio()
	case TransportSSE:
		if baseURL == "" {
			baseURL = "http://localhost" + cfg.Server.Addr
		}
		err := srv.ServeSSE(ctx, cfg.Server.Addr, baseURL)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	default:
		return fmt.Errorf("unknown transport %q, supported: %s, %s", transport, TransportStdio, TransportSSE)
	}
}
