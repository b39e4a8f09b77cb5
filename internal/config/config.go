package config

import "time"

// IngestorConfig is the root configuration for an ingestor instance.
type IngestorConfig struct {
	Instance  InstanceConfig  `yaml:"instance"`
	Feed      FeedConfig      `yaml:"feed"`
	Universe  UniverseConfig  `yaml:"universe"`
	Store     StoreConfig     `yaml:"store"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// InstanceConfig identifies this ingestor.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// FeedConfig holds upstream quote feed settings.
type FeedConfig struct {
	BaseURL      string        `yaml:"base_url"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxRetries   int           `yaml:"max_retries"`
	RetryBackoff time.Duration `yaml:"retry_backoff"`
	Range        string        `yaml:"range"`       // Trailing window, e.g. "1d"
	Granularity  string        `yaml:"granularity"` // Bar interval, e.g. "1m"
}

// UniverseConfig holds the fixed instrument universe. The symbol list and
// timezone are constant for the process lifetime; every timestamp and
// partition decision uses this one location.
type UniverseConfig struct {
	Symbols  []string `yaml:"symbols"`
	Timezone string   `yaml:"timezone"`
}

// StoreConfig holds the partitioned store settings.
type StoreConfig struct {
	Root string `yaml:"root"`
}

// SchedulerConfig holds ingestion loop settings.
type SchedulerConfig struct {
	Interval   time.Duration `yaml:"interval"`    // Delay between cycles, end to start
	BackoffMax time.Duration `yaml:"backoff_max"` // Cap for critical-failure backoff
}
