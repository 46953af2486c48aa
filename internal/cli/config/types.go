// Package config provides configuration management for the waql CLI.
//
// Settings are layered: built-in defaults, then a waql.yaml config file,
// then WAQL_* environment variables, then explicitly set CLI flags.
package config

import (
	"time"

	"github.com/wwise-tools/waql/internal/waapi"
)

// Config holds all CLI configuration options.
type Config struct {
	// URL is the WAAPI HTTP endpoint of the local authoring instance.
	URL string `koanf:"url"`
	// Timeout bounds a single query round trip.
	Timeout time.Duration `koanf:"timeout"`
	// Output is the default result format: table, json, csv, or md.
	Output  string `koanf:"output"`
	Verbose bool   `koanf:"verbose"`
}

// Default configuration values.
const (
	DefaultURL     = waapi.DefaultURL
	DefaultTimeout = waapi.DefaultTimeout
	DefaultOutput  = "table"
)
