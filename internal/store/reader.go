package store

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/pcosta/quotelake/internal/model"
)

// Reader scans the partitioned store for downstream consumers. It
// tolerates an empty or missing store: no records is an empty result,
// not an error.
type Reader struct {
	root string
	loc  *time.Location
}

// NewReader creates a Reader over the given store root. Timestamps read
// back are presented in loc; nil means UTC.
func NewReader(root string, loc *time.Location) *Reader {
	if loc == nil {
		loc = time.UTC
	}
	return &Reader{root: root, loc: loc}
}

// ReadAll scans every partition and returns all records sorted by
// timestamp, then symbol.
func (r *Reader) ReadAll() ([]model.QuoteRecord, error) {
	if _, err := os.Stat(r.root); os.IsNotExist(err) {
		return nil, nil
	}

	var records []model.QuoteRecord
	err := filepath.WalkDir(r.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".parquet") {
			return nil
		}
		recs, err := r.readFile(path)
		if err != nil {
			return err
		}
		records = append(records, recs...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan store: %w", err)
	}

	sortRecords(records)
	return records, nil
}

// ReadPartition returns all records for one calendar-day partition,
// sorted by timestamp then symbol. A missing partition is an empty
// result.
func (r *Reader) ReadPartition(key model.PartitionKey) ([]model.QuoteRecord, error) {
	dir := filepath.Join(r.root, filepath.FromSlash(key.Path()))
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read partition %s: %w", key, err)
	}

	var records []model.QuoteRecord
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".parquet") {
			continue
		}
		recs, err := r.readFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}

	sortRecords(records)
	return records, nil
}

// ReadDay returns one symbol's records for one calendar day, sorted by
// timestamp — the downstream reporting contract.
func (r *Reader) ReadDay(symbol string, key model.PartitionKey) ([]model.QuoteRecord, error) {
	partition, err := r.ReadPartition(key)
	if err != nil {
		return nil, err
	}

	var records []model.QuoteRecord
	for _, rec := range partition {
		if rec.Symbol == symbol {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (r *Reader) readFile(path string) ([]model.QuoteRecord, error) {
	rows, err := parquet.ReadFile[quoteRow](path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	records := make([]model.QuoteRecord, len(rows))
	for i, row := range rows {
		records[i] = row.toRecord(r.loc)
	}
	return records, nil
}

func sortRecords(records []model.QuoteRecord) {
	sort.Slice(records, func(i, j int) bool {
		if !records[i].Timestamp.Equal(records[j].Timestamp) {
			return records[i].Timestamp.Before(records[j].Timestamp)
		}
		return records[i].Symbol < records[j].Symbol
	})
}
