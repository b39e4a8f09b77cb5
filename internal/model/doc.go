// Package model defines shared data types used across the ingestion pipeline.
//
// Conventions:
//   - Timestamps: time.Time, always in the universe's configured location
//   - Prices: float64 last-traded price as reported by the feed
//   - Partition keys: calendar year/month/day derived from the timestamp
//     in that same location
package model
