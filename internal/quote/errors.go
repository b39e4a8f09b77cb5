package quote

import "fmt"

// FetchError wraps any transport or parse failure surfaced by Fetch.
// The scheduler treats it as a handled stage error: the cycle ends early
// and the next scheduled cycle is the retry.
type FetchError struct {
	Op  string // What the client was doing, e.g. "spark request"
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch: %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
