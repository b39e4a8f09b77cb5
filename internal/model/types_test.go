package model

import (
	"testing"
	"time"
)

func TestPartitionKeyPath(t *testing.T) {
	tests := []struct {
		name string
		key  PartitionKey
		want string
	}{
		{"single digit month and day", PartitionKey{2024, 1, 2}, "year=2024/month=1/day=2"},
		{"double digit month and day", PartitionKey{2024, 11, 25}, "year=2024/month=11/day=25"},
		{"year end", PartitionKey{2023, 12, 31}, "year=2023/month=12/day=31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.Path(); got != tt.want {
				t.Errorf("Path() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQuoteRecordKey(t *testing.T) {
	r := QuoteRecord{
		Timestamp: time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
		Symbol:    "PETR4.SA",
		Price:     38.42,
		Year:      2024,
		Month:     3,
		Day:       15,
	}

	want := PartitionKey{Year: 2024, Month: 3, Day: 15}
	if got := r.Key(); got != want {
		t.Errorf("Key() = %v, want %v", got, want)
	}
}

func TestRawSnapshotValidate(t *testing.T) {
	ts := []time.Time{
		time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
		time.Date(2024, 3, 15, 10, 31, 0, 0, time.UTC),
	}

	valid := &RawSnapshot{
		Timestamps: ts,
		Symbols:    []string{"AAA", "BBB"},
		Prices:     [][]float64{{1, 2}, {3, 4}},
		Present:    [][]bool{{true, true}, {true, false}},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() on valid snapshot: %v", err)
	}

	ragged := &RawSnapshot{
		Timestamps: ts,
		Symbols:    []string{"AAA", "BBB"},
		Prices:     [][]float64{{1, 2}, {3}},
		Present:    [][]bool{{true, true}, {true, false}},
	}
	if err := ragged.Validate(); err == nil {
		t.Error("Validate() on ragged price row: expected error, got nil")
	}

	missingRow := &RawSnapshot{
		Timestamps: ts,
		Symbols:    []string{"AAA"},
		Prices:     [][]float64{{1}},
		Present:    [][]bool{{true}},
	}
	if err := missingRow.Validate(); err == nil {
		t.Error("Validate() with fewer price rows than timestamps: expected error, got nil")
	}
}

func TestRawSnapshotEmpty(t *testing.T) {
	var nilSnap *RawSnapshot
	if !nilSnap.Empty() {
		t.Error("nil snapshot should be empty")
	}

	if !(&RawSnapshot{}).Empty() {
		t.Error("zero-value snapshot should be empty")
	}

	s := &RawSnapshot{
		Timestamps: []time.Time{time.Now()},
		Symbols:    []string{"AAA"},
		Prices:     [][]float64{{1}},
		Present:    [][]bool{{true}},
	}
	if s.Empty() {
		t.Error("populated snapshot should not be empty")
	}
}
