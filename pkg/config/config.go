package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Port                 int           `yaml:"port" default:"8001"`
		ReadTimeout          time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout         time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout      time.Duration `yaml:"shutdown_timeout" default:"10s"`
		SlowRequestThreshold time.Duration `yaml:"slow_request_threshold" default:"250ms"`
		CORS                 bool          `yaml:"cors" default:"true"`
	} `yaml:"server"`
	Logger struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"logger"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Data      DataConfig `yaml:"data"`
	RateLimit struct {
		Enabled bool          `yaml:"enabled" default:"false"`
		RPS     float64       `yaml:"rps" default:"20"`
		Burst   int           `yaml:"burst" default:"40"`
		IdleTTL time.Duration `yaml:"idle_ttl" default:"10m"`
	} `yaml:"rate_limit"`
	Finnhub struct {
		APIKey  string        `yaml:"api_key"`
		BaseURL string        `yaml:"base_url" default:"https://finnhub.io/api/v1"`
		Timeout time.Duration `yaml:"timeout" default:"10s"`
	} `yaml:"finnhub"`
}

// DataConfig locates the market and narrative sources.
// Relative file names are resolved against Root.
type DataConfig struct {
	Root          string `yaml:"root" default:"."`
	MarketFile    string `yaml:"market_file" default:"market_data.csv"`
	NarrativeFile string `yaml:"narrative_file" default:"narratives.json"`
}

// MarketPath returns the resolved market source path.
func (d DataConfig) MarketPath() string { return d.resolve(d.MarketFile) }

// NarrativePath returns the resolved narrative source path.
func (d DataConfig) NarrativePath() string { return d.resolve(d.NarrativeFile) }

func (d DataConfig) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(d.Root, name)
}

// Default returns a configuration populated only from struct defaults.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("set defaults: %w", err)
	}
	return &c, nil
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	c, err := Default()
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("APP_ENV"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logger.Level = v
	}
	if v := os.Getenv("DATA_ROOT"); v != "" {
		c.Data.Root = v
	}
	if v := os.Getenv("MARKET_FILE"); v != "" {
		c.Data.MarketFile = v
	}
	if v := os.Getenv("NARRATIVE_FILE"); v != "" {
		c.Data.NarrativeFile = v
	}
	if v := os.Getenv("FINNHUB_API_KEY"); v != "" {
		c.Finnhub.APIKey = v
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("logger.format must be 'json' or 'console', got '%s'", c.Logger.Format)
	}
	if c.Data.MarketFile == "" {
		return fmt.Errorf("data.market_file is required")
	}
	if c.Data.NarrativeFile == "" {
		return fmt.Errorf("data.narrative_file is required")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate_limit.rps and rate_limit.burst must be positive when enabled")
	}
	return nil
}
