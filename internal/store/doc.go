// Package store implements the partitioned columnar store.
//
// Layout: root/year=YYYY/month=M/day=D/quotes_HHMMSS_xxxxxxxx.parquet,
// one directory tier per partition key. Every file is parquet with snappy
// compression; readers may rely on that codec being uniform.
//
// The writer is purely additive: partitions are created on first write,
// each call appends new uniquely-named files, and no existing file is ever
// rewritten or merged. Compaction belongs to a separate maintenance
// process.
package store
