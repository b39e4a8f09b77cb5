package store

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"

	"github.com/pcosta/quotelake/internal/model"
)

// Writer appends tidy records into the partitioned store. It never
// rewrites existing files; every call produces new, uniquely-named files,
// so a Writer is safe alongside other writers on the same root.
type Writer struct {
	root   string
	logger *slog.Logger
}

// NewWriter creates a Writer rooted at the given directory. The root
// itself is created lazily on first non-empty write.
func NewWriter(root string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{root: root, logger: logger}
}

// Write groups records by calendar day and appends one snappy-compressed
// parquet file per group. Empty input is a no-op: no directories, no
// files. Groups are written best-effort: a failure in one group does not
// roll back groups already committed, and the returned *WriteError names
// every partition that failed.
func (w *Writer) Write(ctx context.Context, records []model.QuoteRecord) error {
	if len(records) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	groups := make(map[model.PartitionKey][]model.QuoteRecord)
	for _, r := range records {
		groups[r.Key()] = append(groups[r.Key()], r)
	}

	keys := make([]model.PartitionKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })

	start := time.Now()
	var failures []PartitionFailure

	for _, key := range keys {
		if err := w.writePartition(key, groups[key]); err != nil {
			w.logger.Error("partition write failed",
				"partition", key.String(),
				"records", len(groups[key]),
				"error", err,
			)
			failures = append(failures, PartitionFailure{Partition: key, Err: err})
		}
	}

	if len(failures) > 0 {
		return &WriteError{Failures: failures, Written: len(keys) - len(failures)}
	}

	w.logger.Info("batch written",
		"records", len(records),
		"partitions", len(keys),
		"duration", time.Since(start),
	)
	return nil
}

// writePartition appends one file to a single partition directory. The
// file is staged with a .tmp suffix and renamed into place so a crash
// mid-write never leaves a half-visible file.
func (w *Writer) writePartition(key model.PartitionKey, records []model.QuoteRecord) error {
	dir := filepath.Join(w.root, filepath.FromSlash(key.Path()))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create partition dir: %w", err)
	}

	name := fileName(time.Now())
	final := filepath.Join(dir, name)
	tmp := final + ".tmp"

	if err := w.writeFile(tmp, records); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("commit %s: %w", name, err)
	}

	w.logger.Debug("partition file written",
		"partition", key.String(),
		"file", name,
		"records", len(records),
	)
	return nil
}

func (w *Writer) writeFile(path string, records []model.QuoteRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	rows := make([]quoteRow, len(records))
	for i, r := range records {
		rows[i] = toRow(r)
	}

	pw := parquet.NewGenericWriter[quoteRow](f, parquet.Compression(&parquet.Snappy))
	if _, err := pw.Write(rows); err != nil {
		f.Close()
		return fmt.Errorf("write rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		f.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}

	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	return nil
}

// fileName builds a per-write unique name: a wall-clock stamp for humans
// plus a uuid fragment so concurrent writers on the same root in the same
// second cannot collide.
func fileName(now time.Time) string {
	return fmt.Sprintf("quotes_%s_%s.parquet", now.Format("150405"), uuid.NewString()[:8])
}
