package store

import (
	"fmt"
	"strings"

	"github.com/pcosta/quotelake/internal/model"
)

// PartitionFailure is one partition group that could not be written.
type PartitionFailure struct {
	Partition model.PartitionKey
	Err       error
}

// WriteError reports the partition groups of a Write call that failed.
// Groups committed before a failure stay on disk (best-effort semantics);
// the caller can see exactly which calendar days are missing data.
type WriteError struct {
	Failures []PartitionFailure
	Written  int // Partition groups that did commit
}

func (e *WriteError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = fmt.Sprintf("%s: %v", f.Partition, f.Err)
	}
	return fmt.Sprintf("write: %d of %d partition group(s) failed: %s",
		len(e.Failures), len(e.Failures)+e.Written, strings.Join(parts, "; "))
}

// Unwrap exposes the underlying causes for errors.Is/As.
func (e *WriteError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f.Err
	}
	return errs
}
