package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pcosta/quotelake/internal/model"
	"github.com/pcosta/quotelake/internal/tidy"
)

// fakeSource returns canned snapshots or errors, counting calls.
type fakeSource struct {
	calls atomic.Int32
	snap  *model.RawSnapshot
	err   error
	panic bool
}

func (f *fakeSource) Fetch(ctx context.Context, symbols []string) (*model.RawSnapshot, error) {
	f.calls.Add(1)
	if f.panic {
		panic("boom")
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.snap != nil {
		return f.snap, nil
	}
	return &model.RawSnapshot{}, nil
}

// fakeWriter records every batch it receives.
type fakeWriter struct {
	writes  atomic.Int32
	records atomic.Int32
	err     error
}

func (f *fakeWriter) Write(ctx context.Context, records []model.QuoteRecord) error {
	f.writes.Add(1)
	f.records.Add(int32(len(records)))
	return f.err
}

func oneCellSnapshot(ts time.Time) *model.RawSnapshot {
	return &model.RawSnapshot{
		Timestamps: []time.Time{ts},
		Symbols:    []string{"AAA"},
		Prices:     [][]float64{{10.5}},
		Present:    [][]bool{{true}},
	}
}

func testConfig() Config {
	return Config{
		Symbols:      []string{"AAA"},
		Interval:     10 * time.Millisecond,
		BackoffMax:   time.Second,
		FetchTimeout: time.Second,
	}
}

func TestCycleWritesRecords(t *testing.T) {
	source := &fakeSource{snap: oneCellSnapshot(time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC))}
	writer := &fakeWriter{}

	s := New(testConfig(), source, tidy.New(), writer, nil)
	s.ctx, s.cancel = context.WithCancel(context.Background())
	defer s.cancel()

	if critical := s.cycle(); critical {
		t.Fatal("healthy cycle reported critical")
	}

	if got := writer.writes.Load(); got != 1 {
		t.Errorf("writes = %d, want 1", got)
	}
	if got := writer.records.Load(); got != 1 {
		t.Errorf("records written = %d, want 1", got)
	}
}

// A fetch failure must end the cycle early without touching the store,
// and the loop must keep cycling on the normal delay.
func TestCycleIsolationOnFetchFailure(t *testing.T) {
	source := &fakeSource{err: errors.New("upstream unreachable")}
	writer := &fakeWriter{}

	s := New(testConfig(), source, tidy.New(), writer, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Enough wall time for several cycles at 10ms interval.
	time.Sleep(100 * time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()
	if err := s.Stop(stopCtx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	if got := source.calls.Load(); got < 2 {
		t.Errorf("fetch calls = %d, want >= 2 (loop must survive failures)", got)
	}
	if got := writer.writes.Load(); got != 0 {
		t.Errorf("writes = %d, want 0 (failed cycles write nothing)", got)
	}
}

func TestCycleEmptySnapshotSkipsWrite(t *testing.T) {
	source := &fakeSource{} // empty snapshot
	writer := &fakeWriter{}

	s := New(testConfig(), source, tidy.New(), writer, nil)
	s.ctx, s.cancel = context.WithCancel(context.Background())
	defer s.cancel()

	if critical := s.cycle(); critical {
		t.Fatal("empty cycle reported critical")
	}
	if got := writer.writes.Load(); got != 0 {
		t.Errorf("writes = %d, want 0 (no empty files or partitions)", got)
	}
}

func TestCycleWriteFailureIsHandled(t *testing.T) {
	source := &fakeSource{snap: oneCellSnapshot(time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC))}
	writer := &fakeWriter{err: errors.New("disk full")}

	s := New(testConfig(), source, tidy.New(), writer, nil)
	s.ctx, s.cancel = context.WithCancel(context.Background())
	defer s.cancel()

	if critical := s.cycle(); critical {
		t.Fatal("handled write failure must not be critical")
	}
}

func TestCyclePanicIsCritical(t *testing.T) {
	source := &fakeSource{panic: true}
	writer := &fakeWriter{}

	s := New(testConfig(), source, tidy.New(), writer, nil)
	s.ctx, s.cancel = context.WithCancel(context.Background())
	defer s.cancel()

	if critical := s.cycle(); !critical {
		t.Fatal("a panic escaping a stage must be critical")
	}
	if got := writer.writes.Load(); got != 0 {
		t.Errorf("writes = %d, want 0", got)
	}
}

func TestStopHonoredAtSleepBoundary(t *testing.T) {
	source := &fakeSource{}
	writer := &fakeWriter{}

	cfg := testConfig()
	cfg.Interval = time.Hour // park the loop in its sleep

	s := New(cfg, source, tidy.New(), writer, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Give the first cycle time to run and reach the sleep.
	time.Sleep(50 * time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()

	start := time.Now()
	if err := s.Stop(stopCtx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("Stop took %s, want prompt return from sleep", elapsed)
	}

	if got := source.calls.Load(); got != 1 {
		t.Errorf("fetch calls = %d, want 1", got)
	}
}
