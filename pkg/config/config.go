package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration for the application.
type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`

	ScrapeServiceBaseURL string `mapstructure:"SCRAPE_SERVICE_BASE_URL"`
	ScrapeServicePath    string `mapstructure:"SCRAPE_SERVICE_PATH"`
	ScrapeTimeoutSeconds int    `mapstructure:"SCRAPE_TIMEOUT_SECONDS"`

	SessionTTLMinutes int `mapstructure:"SESSION_TTL_MINUTES"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
}

// Load reads configuration from an optional .env file and the environment.
// Environment variables win over the file.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit env file path.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	// A missing file is fine: production is configured through the environment.
	_ = v.ReadInConfig()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SCRAPE_SERVICE_BASE_URL", "http://localhost:5000")
	v.SetDefault("SCRAPE_SERVICE_PATH", "/scrape")
	v.SetDefault("SCRAPE_TIMEOUT_SECONDS", 0)
	v.SetDefault("SESSION_TTL_MINUTES", 30)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ScrapeTimeout is zero when requests should not time out.
func (c *Config) ScrapeTimeout() time.Duration {
	if c.ScrapeTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.ScrapeTimeoutSeconds) * time.Second
}

func (c *Config) SessionTTL() time.Duration {
	if c.SessionTTLMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}
