// Package tidy reshapes wide fetch snapshots into the long-format record
// stream persisted by the store: one QuoteRecord per present (instant,
// symbol) cell, with calendar partition keys attached. Absent cells are
// dropped, never substituted or interpolated.
package tidy

import (
	"fmt"
	"math"

	"github.com/pcosta/quotelake/internal/model"
)

// TransformError reports a snapshot whose shape is inconsistent. The
// transformer makes no partial recovery: the caller gets no records.
type TransformError struct {
	Err error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("transform: %v", e.Err)
}

func (e *TransformError) Unwrap() error { return e.Err }

// Transformer converts snapshots into tidy records. It is stateless and
// safe for concurrent use.
type Transformer struct{}

// New creates a Transformer.
func New() *Transformer {
	return &Transformer{}
}

// Tidy emits one record per present cell, instant-major then column order,
// so output is stable for a given snapshot. An empty snapshot yields an
// empty slice and no error; a malformed one yields a *TransformError.
//
// Partition keys are decomposed in each timestamp's own location, which
// the fetch layer has already normalized to the universe's configured
// zone; the same instant therefore always lands in the same partition.
func (t *Transformer) Tidy(snap *model.RawSnapshot) ([]model.QuoteRecord, error) {
	if snap.Empty() {
		return nil, nil
	}

	if err := snap.Validate(); err != nil {
		return nil, &TransformError{Err: err}
	}

	records := make([]model.QuoteRecord, 0, snap.Rows()*snap.Cols())

	for i := 0; i < snap.Rows(); i++ {
		ts := snap.Timestamps[i]
		year, month, day := ts.Date()

		for j := 0; j < snap.Cols(); j++ {
			price, ok := snap.At(i, j)
			if !ok {
				continue
			}
			// The feed should never print a non-finite close, but a record
			// with one would poison downstream aggregation.
			if math.IsNaN(price) || math.IsInf(price, 0) {
				continue
			}

			records = append(records, model.QuoteRecord{
				Timestamp: ts,
				Symbol:    snap.Symbols[j],
				Price:     price,
				Year:      year,
				Month:     int(month),
				Day:       day,
			})
		}
	}

	return records, nil
}
