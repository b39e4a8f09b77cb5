package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Validate checks that all required fields are set and values are valid.
func (c *IngestorConfig) Validate() error {
	if c.Instance.ID == "" {
		return errors.New("instance.id is required")
	}

	if c.Feed.BaseURL == "" {
		return errors.New("feed.base_url is required")
	}
	if c.Feed.Timeout <= 0 {
		return fmt.Errorf("feed.timeout must be positive, got %s", c.Feed.Timeout)
	}
	if c.Feed.MaxRetries < 0 {
		return fmt.Errorf("feed.max_retries must be >= 0, got %d", c.Feed.MaxRetries)
	}

	if len(c.Universe.Symbols) == 0 {
		return errors.New("universe.symbols must name at least one instrument")
	}
	for i, sym := range c.Universe.Symbols {
		if strings.TrimSpace(sym) == "" {
			return fmt.Errorf("universe.symbols[%d] is empty", i)
		}
	}
	if _, err := time.LoadLocation(c.Universe.Timezone); err != nil {
		return fmt.Errorf("universe.timezone %q is not a valid IANA zone: %w", c.Universe.Timezone, err)
	}

	if c.Store.Root == "" {
		return errors.New("store.root is required")
	}

	if c.Scheduler.Interval <= 0 {
		return fmt.Errorf("scheduler.interval must be positive, got %s", c.Scheduler.Interval)
	}
	if c.Scheduler.BackoffMax < c.Scheduler.Interval {
		return fmt.Errorf("scheduler.backoff_max (%s) must be >= scheduler.interval (%s)",
			c.Scheduler.BackoffMax, c.Scheduler.Interval)
	}

	return nil
}

// Location resolves the universe timezone. Call after Validate.
func (c *IngestorConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Universe.Timezone)
}
