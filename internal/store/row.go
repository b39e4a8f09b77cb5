package store

import (
	"time"

	"github.com/pcosta/quotelake/internal/model"
)

// quoteRow is the on-disk parquet schema. Timestamps are int64 microseconds
// since epoch; partition keys are stored as columns as well as in the
// directory path, so a file is self-describing on its own.
type quoteRow struct {
	Timestamp int64   `parquet:"timestamp"`
	Symbol    string  `parquet:"symbol,dict"`
	Price     float64 `parquet:"price"`
	Year      int32   `parquet:"year,dict"`
	Month     int32   `parquet:"month,dict"`
	Day       int32   `parquet:"day,dict"`
}

func toRow(r model.QuoteRecord) quoteRow {
	return quoteRow{
		Timestamp: r.Timestamp.UnixMicro(),
		Symbol:    r.Symbol,
		Price:     r.Price,
		Year:      int32(r.Year),
		Month:     int32(r.Month),
		Day:       int32(r.Day),
	}
}

func (r quoteRow) toRecord(loc *time.Location) model.QuoteRecord {
	return model.QuoteRecord{
		Timestamp: time.UnixMicro(r.Timestamp).In(loc),
		Symbol:    r.Symbol,
		Price:     r.Price,
		Year:      int(r.Year),
		Month:     int(r.Month),
		Day:       int(r.Day),
	}
}
