// Package quote implements the QuoteSource: a client for the upstream
// batch chart feed.
//
// One Fetch issues a single batched spark request covering the current
// session at minute granularity and reshapes the response into a wide
// RawSnapshot (rows = instants, columns = symbols). Symbols the feed
// omits simply contribute no column; transport and parse failures
// surface as *FetchError. Retry policy across cycles belongs to the
// scheduler, not this package.
package quote
