package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultBaseURL       = "https://query1.finance.yahoo.com"
	DefaultFeedTimeout   = 30 * time.Second
	DefaultMaxRetries    = 3
	DefaultRetryBackoff  = 1 * time.Second
	DefaultRange         = "1d"
	DefaultGranularity   = "1m"
	DefaultTimezone      = "America/Sao_Paulo"
	DefaultStoreRoot     = "datalake"
	DefaultCycleInterval = 2 * time.Minute
	DefaultBackoffMax    = 30 * time.Minute
)

// DefaultSymbols is the B3 universe ingested when the config names none:
// FIIs, large-cap stocks, ETFs, and BDRs.
var DefaultSymbols = []string{
	"HGLG11.SA", "KNRI11.SA", "MXRF11.SA", "XPML11.SA", "VISC11.SA",
	"ALZR11.SA", "HGRU11.SA", "BTLG11.SA", "XPLG11.SA",
	"CPTS11.SA", "RECR11.SA", "VGHF11.SA", "KNCR11.SA",
	"PETR4.SA", "VALE3.SA", "ITUB4.SA", "BBDC4.SA", "BBAS3.SA",
	"WEGE3.SA", "ABEV3.SA", "B3SA3.SA", "RENT3.SA",
	"SUZB3.SA", "GGBR4.SA", "VIVT3.SA", "PRIO3.SA",
	"BOVA11.SA", "IVVB11.SA", "SMAL11.SA", "HASH11.SA", "NASD11.SA",
	"XINA11.SA", "GOLD11.SA", "AAPL34.SA", "MSFT34.SA",
	"NVDC34.SA", "AMZO34.SA", "GOGL34.SA", "TSLA34.SA", "MELI34.SA",
}

func (c *IngestorConfig) applyDefaults() {
	// Feed defaults
	if c.Feed.BaseURL == "" {
		c.Feed.BaseURL = DefaultBaseURL
	}
	if c.Feed.Timeout == 0 {
		c.Feed.Timeout = DefaultFeedTimeout
	}
	if c.Feed.MaxRetries == 0 {
		c.Feed.MaxRetries = DefaultMaxRetries
	}
	if c.Feed.RetryBackoff == 0 {
		c.Feed.RetryBackoff = DefaultRetryBackoff
	}
	if c.Feed.Range == "" {
		c.Feed.Range = DefaultRange
	}
	if c.Feed.Granularity == "" {
		c.Feed.Granularity = DefaultGranularity
	}

	// Universe defaults
	if len(c.Universe.Symbols) == 0 {
		c.Universe.Symbols = append([]string(nil), DefaultSymbols...)
	}
	if c.Universe.Timezone == "" {
		c.Universe.Timezone = DefaultTimezone
	}

	// Store defaults
	if c.Store.Root == "" {
		c.Store.Root = DefaultStoreRoot
	}

	// Scheduler defaults
	if c.Scheduler.Interval == 0 {
		c.Scheduler.Interval = DefaultCycleInterval
	}
	if c.Scheduler.BackoffMax == 0 {
		c.Scheduler.BackoffMax = DefaultBackoffMax
	}
}
