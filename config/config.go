package config

import "fmt"

// App identifies the calling application. Built once from configuration and
// never mutated.
type App struct {
	Name    string `yaml:"name" mapstructure:"name"`
	Version string `yaml:"version" mapstructure:"version"`
	URL     string `yaml:"url" mapstructure:"url"`
}

// UserAgent renders the display string "name/version (+url)". Version and
// url are optional; a bare name renders as just the name.
func (a App) UserAgent() string {
	ua := a.Name
	if a.Version != "" {
		ua += "/" + a.Version
	}
	if a.URL != "" {
		ua += " (+" + a.URL + ")"
	}
	return ua
}

// Consumer holds the OAuth 1 consumer credentials.
type Consumer struct {
	Key    string `yaml:"key" mapstructure:"key"`
	Secret string `yaml:"secret" mapstructure:"secret"`
}

// Config is the full fsclient configuration.
type Config struct {
	App         App      `yaml:"app" mapstructure:"app"`
	Consumer    Consumer `yaml:"consumer" mapstructure:"consumer"`
	AccessToken string   `yaml:"access_token" mapstructure:"access_token"`
}

// ApplyDefaults fills in zero-value fields with defaults.
func (c *Config) ApplyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "fsclient"
	}
}

// Validate checks that the configuration is internally consistent. Consumer
// key and secret must be supplied together or not at all.
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("config: app.name is required")
	}
	if (c.Consumer.Key == "") != (c.Consumer.Secret == "") {
		return fmt.Errorf("config: consumer key and secret must be provided together")
	}
	return nil
}
