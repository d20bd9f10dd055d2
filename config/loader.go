package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envPrefix is the prefix for all fsclient environment variables, e.g.
// FSCLIENT_APP_NAME, FSCLIENT_CONSUMER_KEY.
const envPrefix = "FSCLIENT"

// Load reads configuration from a .env file (when present) and the process
// environment, applies defaults, and validates the result.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom behaves like Load but reads the .env file at the given path.
// An empty path falls back to ./.env; a missing file is not an error.
func LoadFrom(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, err
		}
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about, so bind
	// every key explicitly.
	for _, key := range []string{
		"app.name", "app.version", "app.url",
		"consumer.key", "consumer.secret",
		"access_token",
	} {
		_ = v.BindEnv(key)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
