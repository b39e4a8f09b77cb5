package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pcosta/quotelake/internal/config"
	"github.com/pcosta/quotelake/internal/quote"
	"github.com/pcosta/quotelake/internal/scheduler"
	"github.com/pcosta/quotelake/internal/store"
	"github.com/pcosta/quotelake/internal/tidy"
	"github.com/pcosta/quotelake/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/ingestor.yaml", "path to config file")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting ingestor",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	loc, err := cfg.Location()
	if err != nil {
		logger.Error("failed to resolve timezone", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"instance_id", cfg.Instance.ID,
		"feed_url", cfg.Feed.BaseURL,
		"symbols", len(cfg.Universe.Symbols),
		"timezone", cfg.Universe.Timezone,
		"store_root", cfg.Store.Root,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Create feed client
	client := quote.NewClient(
		cfg.Feed.BaseURL,
		quote.WithTimeout(cfg.Feed.Timeout),
		quote.WithRetries(cfg.Feed.MaxRetries, cfg.Feed.RetryBackoff),
		quote.WithWindow(cfg.Feed.Range, cfg.Feed.Granularity),
		quote.WithLocation(loc),
		quote.WithLogger(logger),
	)

	// Wire the pipeline
	transformer := tidy.New()
	writer := store.NewWriter(cfg.Store.Root, logger)

	sched := scheduler.New(scheduler.Config{
		Symbols:      cfg.Universe.Symbols,
		Interval:     cfg.Scheduler.Interval,
		BackoffMax:   cfg.Scheduler.BackoffMax,
		FetchTimeout: cfg.Feed.Timeout,
	}, client, transformer, writer, logger)

	if err := sched.Start(ctx); err != nil {
		logger.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}

	logger.Info("ingestor running",
		"instance_id", cfg.Instance.ID,
		"interval", cfg.Scheduler.Interval,
	)

	// Wait for shutdown
	<-ctx.Done()

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := sched.Stop(shutdownCtx); err != nil {
		logger.Error("scheduler shutdown timed out", "error", err)
	}

	logger.Info("ingestor stopped")
}
