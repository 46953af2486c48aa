package config

import (
	"fmt"
	"net/url"
)

// validFormats are the accepted output format names. "markdown" is an
// alias for "md".
var validFormats = map[string]bool{
	"table":    true,
	"json":     true,
	"csv":      true,
	"md":       true,
	"markdown": true,
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	u, err := url.Parse(c.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid WAAPI url: %q", c.URL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if !validFormats[c.Output] {
		return fmt.Errorf("unknown output format %q (expected table, json, csv, or md)", c.Output)
	}
	return nil
}
