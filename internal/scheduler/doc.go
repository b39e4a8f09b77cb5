// Package scheduler drives the ingestion loop: fetch, tidy, write,
// sleep, repeat, until the process is told to stop.
//
// Failure isolation is per cycle. A stage error (fetch, transform or
// write) is logged and ends the cycle early; the next scheduled cycle is
// the retry. A panic escaping a stage counts as critical and switches
// the inter-cycle delay to exponential backoff, but never terminates the
// process. Cycles are strictly sequential and never overlap.
package scheduler
