// Package main implements the entry point for the LexiGraph service.
// LexiGraph answers structured educational queries about the Afrikaans
// language from a Neo4j knowledge graph and streams results incrementally
// to clients.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/c360/lexigraph/config"
	"github.com/c360/lexigraph/gateway/http"
	"github.com/c360/lexigraph/graph"
	"github.com/c360/lexigraph/health"
	"github.com/c360/lexigraph/metric"
	"github.com/c360/lexigraph/natsclient"
	"github.com/c360/lexigraph/stream"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "lexigraph"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	// Run application with proper error handling
	if err := run(); err != nil {
		slog.Error("Application failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	// Parse and validate CLI flags
	cliCfg, logger, shouldExit, err := initializeCLI()
	if shouldExit || err != nil {
		return err
	}

	// Load and validate configuration
	cfg, err := config.Load(cliCfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if cliCfg.Validate {
		slog.Info("Configuration is valid")
		return nil
	}

	ctx := context.Background()

	// Core infrastructure: metrics registry, graph database, NATS mirror
	metricsRegistry := metric.NewMetricsRegistry()
	metrics := metricsRegistry.CoreMetrics()

	graphClient := setupGraphClient(ctx, cfg, logger, metrics)
	if graphClient != nil {
		defer graphClient.Close(ctx)
	}

	natsClient := setupNATSClient(ctx, cfg, logger, metrics)
	if natsClient != nil {
		defer natsClient.Close(ctx)
	}

	// Query pipeline: executor, emitter, mirror
	var runner graph.Runner
	if graphClient != nil {
		runner = graphClient
	}
	executor := graph.NewExecutor(runner, logger, metrics)
	emitter := stream.NewEmitter(cfg.Stream.ResultDelay(), metrics)
	mirror := stream.NewMirror(natsClient, cfg.NATS.SubjectPrefix, logger, metrics)

	// Gateway
	var database http.DatabaseStatus
	if graphClient != nil {
		database = graphClient
	}
	gw, err := http.NewGateway(cfg.Server, http.Dependencies{
		Executor: executor,
		Emitter:  emitter,
		Mirror:   mirror,
		Database: database,
		Logger:   logger,
		Metrics:  metrics,
		Monitor:  health.NewMonitor(),
	})
	if err != nil {
		return fmt.Errorf("create gateway: %w", err)
	}
	if err := gw.RegisterMetrics(metricsRegistry); err != nil {
		return fmt.Errorf("register gateway metrics: %w", err)
	}

	slog.Info("LexiGraph starting",
		"port", cfg.Server.Port,
		"mock_mode", executor.MockMode(),
		"mirror_enabled", mirror.Enabled(),
		"result_delay", cfg.Stream.ResultDelay())

	return runWithSignalHandling(ctx, cfg, gw, metricsRegistry, cliCfg.ShutdownTimeout)
}

// initializeCLI parses flags and sets up logging
func initializeCLI() (*CLIConfig, *slog.Logger, bool, error) {
	cliCfg := parseFlags()
	if err := validateFlags(cliCfg); err != nil {
		return nil, nil, false, fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, Version)
		return nil, nil, true, nil
	}

	if cliCfg.ShowHelp {
		printDetailedHelp()
		return nil, nil, true, nil
	}

	logger := setupLogger(cliCfg.LogLevel, cliCfg.LogFormat)
	slog.SetDefault(logger)

	slog.Info("Starting LexiGraph (Afrikaans knowledge graph service)",
		"version", Version,
		"build_time", BuildTime,
		"config_path", cliCfg.ConfigPath)

	return cliCfg, logger, false, nil
}

// setupGraphClient connects to the graph database when configured. A missing
// configuration or a failed connection degrades the service to mock mode
// rather than aborting startup.
func setupGraphClient(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *metric.Metrics) *graph.Client {
	if !cfg.Neo4j.Configured() {
		slog.Warn("Graph database not configured, running in mock mode",
			"required_env", []string{config.EnvNeo4jURI, config.EnvNeo4jUsername, config.EnvNeo4jPassword})
		metrics.DatabaseConnected.Set(0)
		return nil
	}

	client, err := graph.NewClient(cfg.Neo4j.URI, cfg.Neo4j.Username, cfg.Neo4j.Password,
		graph.WithLogger(logger))
	if err != nil {
		slog.Error("Failed to create graph client, running in mock mode", "error", err)
		metrics.DatabaseConnected.Set(0)
		return nil
	}

	if err := client.Connect(ctx); err != nil {
		slog.Error("Failed to connect to graph database, running in mock mode",
			"error", health.SanitizeErrorMessage(err.Error()))
		metrics.DatabaseConnected.Set(0)
		return nil
	}

	slog.Info("Graph database connected")
	metrics.DatabaseConnected.Set(1)
	return client
}

// setupNATSClient connects the optional event mirror. Mirroring is strictly
// additive; any failure here leaves the service fully functional.
func setupNATSClient(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *metric.Metrics) *natsclient.Client {
	if !cfg.NATS.Enabled() {
		metrics.NATSConnected.Set(0)
		return nil
	}

	client, err := natsclient.NewClient(cfg.NATS.URL,
		natsclient.WithLogger(logger),
		natsclient.WithClientName(cfg.NATS.ClientName),
		natsclient.WithDisconnectCallback(func(error) { metrics.NATSConnected.Set(0) }),
		natsclient.WithReconnectCallback(func() { metrics.NATSConnected.Set(1) }),
	)
	if err != nil {
		slog.Error("Failed to create NATS client, event mirroring disabled", "error", err)
		return nil
	}

	if err := client.Connect(ctx); err != nil {
		slog.Error("Failed to connect to NATS, event mirroring disabled",
			"error", health.SanitizeErrorMessage(err.Error()))
		metrics.NATSConnected.Set(0)
		return nil
	}

	slog.Info("NATS event mirror connected", "subject_prefix", cfg.NATS.SubjectPrefix)
	metrics.NATSConnected.Set(1)
	return client
}

// runWithSignalHandling starts the servers and handles shutdown signals
func runWithSignalHandling(ctx context.Context, cfg *config.Config, gw *http.Gateway, metricsRegistry *metric.MetricsRegistry, shutdownTimeout time.Duration) error {
	signalCtx, signalCancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer signalCancel()

	gatewayServer := http.NewServer(cfg.Server.Port, gw)
	serverErrs := make(chan error, 2)

	go func() {
		serverErrs <- gatewayServer.Start()
	}()

	var metricsServer *metric.Server
	if cfg.Metric.Port > 0 {
		metricsServer = metric.NewServer(cfg.Metric.Port, cfg.Metric.Path, metricsRegistry)
		go func() {
			serverErrs <- metricsServer.Start()
		}()
		slog.Info("Metrics server started", "address", metricsServer.Address())
	}

	slog.Info("LexiGraph started successfully", "address", gatewayServer.Address())

	select {
	case <-signalCtx.Done():
		slog.Info("Received shutdown signal")
	case err := <-serverErrs:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := gatewayServer.Stop(shutdownCtx); err != nil {
		slog.Error("Error stopping gateway server", "error", err)
	}
	if metricsServer != nil {
		if err := metricsServer.Stop(); err != nil {
			slog.Error("Error stopping metrics server", "error", err)
		}
	}

	slog.Info("LexiGraph shutdown complete")
	return nil
}
