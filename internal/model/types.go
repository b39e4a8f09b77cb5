package model

import (
	"fmt"
	"time"
)

// QuoteRecord is one tidy price observation: a single (instant, symbol) pair.
// Records are immutable once created; the store is append-only.
type QuoteRecord struct {
	Timestamp time.Time // Observation instant
	Symbol    string    // Instrument symbol (e.g., "PETR4.SA")
	Price     float64   // Last traded price, always finite

	// Partition keys, derived from Timestamp by calendar decomposition
	// in the universe's location. Re-derivable; kept on the record so
	// store files are self-describing.
	Year  int
	Month int
	Day   int
}

// PartitionKey identifies the calendar-day partition a record belongs to.
type PartitionKey struct {
	Year  int
	Month int
	Day   int
}

// Key returns the record's partition key.
func (r QuoteRecord) Key() PartitionKey {
	return PartitionKey{Year: r.Year, Month: r.Month, Day: r.Day}
}

// Path returns the key's relative directory path, year=YYYY/month=M/day=D.
func (k PartitionKey) Path() string {
	return fmt.Sprintf("year=%04d/month=%d/day=%d", k.Year, k.Month, k.Day)
}

func (k PartitionKey) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", k.Year, k.Month, k.Day)
}

// RawSnapshot is the wide-format result of one feed fetch: one row per
// observation instant, one column per symbol. Cells may be absent (no trade
// in that minute, or the feed omitted it), tracked by the Present mask.
// A snapshot lives for one pipeline cycle and is never persisted.
type RawSnapshot struct {
	Timestamps []time.Time // Row index, ascending
	Symbols    []string    // Column index, feed order
	Prices     [][]float64 // Row-major: Prices[i][j] = price at instant i for symbol j
	Present    [][]bool    // Validity mask, same shape as Prices
}

// Rows returns the number of observation instants.
func (s *RawSnapshot) Rows() int { return len(s.Timestamps) }

// Cols returns the number of symbols.
func (s *RawSnapshot) Cols() int { return len(s.Symbols) }

// Empty reports whether the snapshot holds no observations.
func (s *RawSnapshot) Empty() bool { return s == nil || len(s.Timestamps) == 0 }

// At returns the price at (row i, column j) and whether it is present.
func (s *RawSnapshot) At(i, j int) (float64, bool) {
	if !s.Present[i][j] {
		return 0, false
	}
	return s.Prices[i][j], true
}

// Validate checks that the price and mask matrices match the declared
// row/column counts. A malformed snapshot must never reach the transformer's
// cell loop.
func (s *RawSnapshot) Validate() error {
	if len(s.Prices) != len(s.Timestamps) {
		return fmt.Errorf("snapshot has %d timestamp(s) but %d price row(s)", len(s.Timestamps), len(s.Prices))
	}
	if len(s.Present) != len(s.Timestamps) {
		return fmt.Errorf("snapshot has %d timestamp(s) but %d mask row(s)", len(s.Timestamps), len(s.Present))
	}
	for i := range s.Prices {
		if len(s.Prices[i]) != len(s.Symbols) {
			return fmt.Errorf("price row %d has %d cell(s), want %d", i, len(s.Prices[i]), len(s.Symbols))
		}
		if len(s.Present[i]) != len(s.Symbols) {
			return fmt.Errorf("mask row %d has %d cell(s), want %d", i, len(s.Present[i]), len(s.Symbols))
		}
	}
	return nil
}
