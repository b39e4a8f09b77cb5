// Package config loads, defaults, and validates the ingestor's YAML
// configuration. ${VAR} references in the file are expanded from the
// environment before parsing.
package config
