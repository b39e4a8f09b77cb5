package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pcosta/quotelake/internal/model"
)

// QuoteSource fetches a wide snapshot for the instrument universe.
type QuoteSource interface {
	Fetch(ctx context.Context, symbols []string) (*model.RawSnapshot, error)
}

// Transformer reshapes a snapshot into tidy records.
type Transformer interface {
	Tidy(snap *model.RawSnapshot) ([]model.QuoteRecord, error)
}

// StoreWriter persists a batch of tidy records.
type StoreWriter interface {
	Write(ctx context.Context, records []model.QuoteRecord) error
}

// Config holds scheduler configuration.
type Config struct {
	Symbols      []string      // Instrument universe, fixed for the process lifetime
	Interval     time.Duration // Delay from end of one cycle to start of the next (default: 2m)
	BackoffMax   time.Duration // Cap for critical-failure backoff (default: 30m)
	FetchTimeout time.Duration // Bound on one fetch call (default: 30s)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval:     2 * time.Minute,
		BackoffMax:   30 * time.Minute,
		FetchTimeout: 30 * time.Second,
	}
}

// Scheduler runs the fetch -> tidy -> write loop.
type Scheduler struct {
	cfg         Config
	source      QuoteSource
	transformer Transformer
	writer      StoreWriter
	logger      *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a Scheduler.
func New(cfg Config, source QuoteSource, transformer Transformer, writer StoreWriter, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	if cfg.BackoffMax <= 0 {
		cfg.BackoffMax = DefaultConfig().BackoffMax
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultConfig().FetchTimeout
	}
	return &Scheduler{
		cfg:         cfg,
		source:      source,
		transformer: transformer,
		writer:      writer,
		logger:      logger,
	}
}

// Start begins the ingestion loop. The first cycle runs immediately.
func (s *Scheduler) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.run()

	s.logger.Info("ingestion scheduler started",
		"symbols", len(s.cfg.Symbols),
		"interval", s.cfg.Interval,
	)
	return nil
}

// Stop shuts the loop down. The in-flight cycle, if any, is allowed to
// finish; Stop waits for it up to ctx's deadline.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("ingestion scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run is the main loop. The delay is measured from the end of one cycle
// to the start of the next; cancellation is honored at the sleep
// boundary only.
func (s *Scheduler) run() {
	defer s.wg.Done()

	backoff := 2 * s.cfg.Interval
	consecutive := 0

	for {
		critical := s.cycle()

		var delay time.Duration
		if critical {
			consecutive++
			delay = backoff
			backoff *= 2
			if backoff > s.cfg.BackoffMax {
				backoff = s.cfg.BackoffMax
			}
			s.logger.Warn("backing off after critical failure",
				"consecutive", consecutive,
				"delay", delay,
			)
		} else {
			consecutive = 0
			backoff = 2 * s.cfg.Interval
			delay = s.cfg.Interval
		}

		select {
		case <-s.ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}

// cycle executes one fetch -> tidy -> write pass. Stage errors are
// handled here and end the cycle early; only a panic escaping a stage is
// critical.
func (s *Scheduler) cycle() (critical bool) {
	defer func() {
		if r := recover(); r != nil {
			critical = true
			s.logger.Error("critical: cycle panicked", "panic", r)
		}
	}()

	start := time.Now()

	fetchCtx, cancel := context.WithTimeout(s.ctx, s.cfg.FetchTimeout)
	snap, err := s.source.Fetch(fetchCtx, s.cfg.Symbols)
	cancel()
	if err != nil {
		s.logger.Error("cycle failed", "stage", "fetch", "error", err)
		return false
	}

	records, err := s.transformer.Tidy(snap)
	if err != nil {
		s.logger.Error("cycle failed", "stage", "transform", "error", err)
		return false
	}

	if len(records) == 0 {
		s.logger.Warn("cycle produced no records",
			"instants", snap.Rows(),
			"symbols", snap.Cols(),
		)
		return false
	}

	// A write already in flight is never cancelled mid-partition; shutdown
	// waits for it in Stop instead.
	if err := s.writer.Write(context.WithoutCancel(s.ctx), records); err != nil {
		s.logger.Error("cycle failed", "stage", "write", "error", err)
		return false
	}

	s.logger.Info("cycle complete",
		"records", len(records),
		"duration", time.Since(start),
	)
	return false
}
