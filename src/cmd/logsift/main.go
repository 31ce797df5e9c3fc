// FILE: logsift/src/cmd/logsift/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"logsift/src/internal/config"
	"logsift/src/internal/format"
	"logsift/src/internal/pipeline"
	"logsift/src/internal/sink"
	"logsift/src/internal/source"
	"logsift/src/internal/version"

	"github.com/lixenwraith/log"
)

var logger *log.Logger

func main() {
	// Parse flags first to get quiet mode early
	flagCfg, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		usageHint()
		os.Exit(1)
	}

	// Initialize output handler with quiet mode
	InitOutputHandler(flagCfg.Quiet)

	// Handle version flag
	if flagCfg.ShowVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	// Set config file environment if specified
	if flagCfg.ConfigFile != "" {
		os.Setenv("LOGSIFT_CONFIG_FILE", flagCfg.ConfigFile)
	}

	// Load configuration with CLI overrides
	cfg, err := config.Load(&flagCfg.Overrides)
	if err != nil {
		if flagCfg.ConfigFile != "" && strings.Contains(err.Error(), "not found") {
			FatalError(2, "Config file not found: %s\n", flagCfg.ConfigFile)
		}
		FatalError(1, "Failed to load config: %v\n", err)
	}

	// Initialize logger with quiet mode awareness
	if err := initializeLogger(cfg, flagCfg.Quiet); err != nil {
		FatalError(1, "Failed to initialize logger: %v\n", err)
	}
	defer shutdownLogger()

	logger.Info("msg", "logsift starting",
		"version", version.String(),
		"input", flagCfg.InputPath,
		"column", cfg.Input.Column,
		"serve", cfg.Serve.Enabled)

	// Open the input table; a missing message column is its own exit code
	src, err := source.NewCSVSource(flagCfg.InputPath, cfg.Input.Column, logger)
	if err != nil {
		if errors.Is(err, source.ErrColumnNotFound) {
			FatalError(2, "Error: %v\n", err)
		}
		FatalError(1, "Error: %v\n", err)
	}
	defer src.Close()

	formatter := format.NewLineFormatter(logger)

	if cfg.Serve.Enabled {
		runServe(cfg, src, formatter)
		return
	}

	runBatch(cfg, src, formatter)
}

// runBatch formats the whole input to the configured sink and exits.
func runBatch(cfg *config.Config, src source.Source, formatter format.Formatter) {
	snk, err := buildSink(cfg)
	if err != nil {
		FatalError(1, "Error: %v\n", err)
	}

	p := pipeline.New(src, formatter, snk, logger)
	if err := p.Run(context.Background()); err != nil {
		snk.Close()
		FatalError(1, "Error: %v\n", err)
	}

	if err := snk.Close(); err != nil {
		FatalError(1, "Error: %v\n", err)
	}

	stats := p.GetStats()
	logger.Info("msg", "Run complete",
		"rows_in", stats.RowsIn,
		"lines_out", stats.LinesOut,
		"suppressed", stats.Suppressed)
}

// runServe formats the whole input into the HTTP sink, then keeps
// streaming it to SSE clients until interrupted.
func runServe(cfg *config.Config, src source.Source, formatter format.Formatter) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpSink, err := sink.NewHTTPSink(&cfg.Serve, logger)
	if err != nil {
		FatalError(1, "Error: %v\n", err)
	}

	if err := httpSink.Start(ctx); err != nil {
		FatalError(1, "Failed to start HTTP server: %v\n", err)
	}

	p := pipeline.New(src, formatter, httpSink, logger)
	if err := p.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		httpSink.Close()
		FatalError(1, "Error: %v\n", err)
	}

	stats := p.GetStats()
	logger.Info("msg", "Input consumed, serving formatted lines",
		"lines", stats.LinesOut,
		"port", cfg.Serve.Port)

	<-ctx.Done()
	logger.Info("msg", "Shutdown signal received")
	httpSink.Close()
}

func shutdownLogger() {
	if logger != nil {
		if err := logger.Shutdown(2 * time.Second); err != nil {
			// Best effort - can't log the shutdown error
			Error("Logger shutdown error: %v\n", err)
		}
	}
}

func usageHint() {
	fmt.Fprintf(os.Stderr, "Run '%s -h' for usage.\n", os.Args[0])
}
