package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the hirepad CLI.
//
// Units: RequestTimeout and OnlineCheckInterval are time.Durations;
// RequestsPerSecond of zero disables client-side rate limiting.
type Config struct {
	ServerURL           string        `env:"SERVER_URL"`
	DatabasePath        string        `env:"DB_PATH"`
	RequestTimeout      time.Duration `env:"REQUEST_TIMEOUT"`
	OnlineCheckInterval time.Duration `env:"ONLINE_CHECK_INTERVAL"`
	RequestsPerSecond   float64       `env:"REQUESTS_PER_SECOND"`
	LogLevel            string        `env:"LOG_LEVEL"`
	NoColor             bool          `env:"NO_COLOR"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8000/api"
	c.DatabasePath = defaultDatabasePath()
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestsPerSecond = 0
	c.LogLevel = "warn"
	c.NoColor = false
}

func defaultDatabasePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "hirepad.db"
	}
	return filepath.Join(dir, "hirepad", "session.db")
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
