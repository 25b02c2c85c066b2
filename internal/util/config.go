package util

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	ProviderAlpaca = "alpaca"
	ProviderYahoo  = "yahoo"
)

type Config struct {
	Port      int           `yaml:"port"`
	Alpaca    AlpacaConfig  `yaml:"alpaca"`
	Providers []string      `yaml:"providers"`
	Timeout   time.Duration `yaml:"upstreamTimeout"`
	Cache     CacheConfig   `yaml:"cache"`
}

// AlpacaConfig holds the only credentials the app needs. they are
// handed to the market data repository, never kept globally
type AlpacaConfig struct {
	ApiKey    string `yaml:"apiKey"`
	ApiSecret string `yaml:"apiSecret"`
	DataUrl   string `yaml:"dataUrl"`
	Feed      string `yaml:"feed"`
}

func (a AlpacaConfig) HasCredentials() bool {
	return a.ApiKey != "" && a.ApiSecret != ""
}

// CacheConfig enables the bar cache when Driver is set.
// supported drivers are postgres and sqlite3
type CacheConfig struct {
	Driver string `yaml:"driver"`
	Dsn    string `yaml:"dsn"`
}

func (c CacheConfig) Enabled() bool {
	return c.Driver != ""
}

func DefaultConfig() Config {
	return Config{
		Port:      3009,
		Providers: []string{ProviderAlpaca, ProviderYahoo},
		Timeout:   20 * time.Second,
		Alpaca: AlpacaConfig{
			Feed: "iex",
		},
	}
}

func configFileForEnv() string {
	switch strings.ToLower(os.Getenv("ETFSIM_ENV")) {
	case "dev":
		return "config-dev.yaml"
	case "test":
		return "config-test.yaml"
	}
	if f := os.Getenv("ETFSIM_CONFIG"); f != "" {
		return f
	}
	return "config.yaml"
}

// LoadConfig reads the yaml file picked by ETFSIM_ENV, then applies
// environment overrides. a missing file just means defaults
func LoadConfig() (*Config, error) {
	return LoadConfigFile(configFileForEnv())
}

func LoadConfigFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	f, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	if err == nil {
		if err := yaml.Unmarshal(f, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("API_KEY"); v != "" {
		cfg.Alpaca.ApiKey = v
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		cfg.Alpaca.ApiSecret = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}
	return nil
}

func (c Config) Validate() error {
	if c.Port <= 0 {
		return fmt.Errorf("port must be positive, got %d", c.Port)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("upstreamTimeout must be positive, got %s", c.Timeout)
	}
	if len(c.Providers) == 0 {
		return fmt.Errorf("at least one market data provider is required")
	}
	for _, p := range c.Providers {
		if p != ProviderAlpaca && p != ProviderYahoo {
			return fmt.Errorf("unknown market data provider %q", p)
		}
	}
	switch c.Cache.Driver {
	case "", "postgres", "sqlite3":
	default:
		return fmt.Errorf("unsupported cache driver %q", c.Cache.Driver)
	}
	if c.Cache.Enabled() && c.Cache.Dsn == "" {
		return fmt.Errorf("cache.dsn is required when cache.driver is set")
	}
	return nil
}
