package client

import (
	"fmt"
	"time"
)

const defaultTimeout = 30 * time.Second

// Config configures the HTTP client.
type Config struct {
	// BaseURL is the base URL prepended to all request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// UserAgent is sent as the User-Agent header on every request.
	// Typically built once via config.App.UserAgent().
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// Timeout bounds each request, including the body read. Defaults to 30s.
	// Applies only to the default transport; an injected Doer owns its own
	// timeout policy.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("client: timeout must be positive")
	}
	return nil
}
