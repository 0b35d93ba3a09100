package configloader

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	EnvTonAPIKey  = "TONAPI_KEY"
	EnvNFTScanKey = "NFTSCAN_TON_API_KEY"
)

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port                string   `yaml:"port" validate:"required"`
	ReadTimeoutSeconds  int      `yaml:"readTimeoutSeconds" validate:"gte=0"`
	WriteTimeoutSeconds int      `yaml:"writeTimeoutSeconds" validate:"gte=0"`
	IdleTimeoutSeconds  int      `yaml:"idleTimeoutSeconds" validate:"gte=0"`
	AllowedOrigins      []string `yaml:"allowedOrigins"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// UpstreamConfig holds the settings of one NFT data API.
type UpstreamConfig struct {
	BaseURL              string  `yaml:"baseURL" validate:"required,url"`
	APIKey               string  `yaml:"apiKey"`
	RequestTimeoutMillis int64   `yaml:"requestTimeoutMillis" validate:"gt=0"`
	RateLimit            float64 `yaml:"rateLimit" validate:"gte=0"` // requests per second, 0 disables limiting
	BurstLimit           int     `yaml:"burstLimit" validate:"gte=0"`
}

// AggregatorConfig holds fallback orchestration settings.
type AggregatorConfig struct {
	SecondaryEnabled    *bool `yaml:"secondaryEnabled"`
	OverviewConcurrency int   `yaml:"overviewConcurrency" validate:"gte=0"`
}

// RedisConfig holds the shared response cache connection.
type RedisConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Addr      string `yaml:"addr" validate:"required_if=Enabled true"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db" validate:"gte=0"`
	KeyPrefix string `yaml:"keyPrefix"`
}

// CacheConfig holds response cache settings.
type CacheConfig struct {
	Enabled                bool        `yaml:"enabled"`
	TTLSeconds             int         `yaml:"ttlSeconds" validate:"gte=0"`
	CleanupIntervalSeconds int         `yaml:"cleanupIntervalSeconds" validate:"gte=0"`
	Redis                  RedisConfig `yaml:"redis"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
	TonAPI     UpstreamConfig   `yaml:"tonapi"`
	NFTScan    UpstreamConfig   `yaml:"nftscan"`
	Aggregator AggregatorConfig `yaml:"aggregator"`
	Cache      CacheConfig      `yaml:"cache"`
}

// IsSecondaryEnabled reports whether the fallback upstream is wired in. It defaults to true.
func (c *Config) IsSecondaryEnabled() bool {
	return c.Aggregator.SecondaryEnabled == nil || *c.Aggregator.SecondaryEnabled
}

// Load reads the YAML configuration file from the given path, applies defaults and
// environment overrides, then validates the result.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse is Load without the file access.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logrus.Errorf("Failed to unmarshal config data: %v", err)
		return nil, fmt.Errorf("failed to unmarshal config data: %w", err)
	}

	applyDefaults(&cfg)
	applyEnv(&cfg)

	if err := validator.New().Struct(&cfg); err != nil {
		logrus.Errorf("Configuration is invalid: %v", err)
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8080"
	}
	if cfg.Server.ReadTimeoutSeconds == 0 {
		cfg.Server.ReadTimeoutSeconds = 10
	}
	if cfg.Server.WriteTimeoutSeconds == 0 {
		cfg.Server.WriteTimeoutSeconds = 30
	}
	if cfg.Server.IdleTimeoutSeconds == 0 {
		cfg.Server.IdleTimeoutSeconds = 60
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	cfg.Logging.Level = strings.ToLower(cfg.Logging.Level)

	// Defaults for TonAPI
	if cfg.TonAPI.BaseURL == "" {
		cfg.TonAPI.BaseURL = "https://tonapi.io"
		logrus.Infof("TonAPI.BaseURL not set, defaulting to %s", cfg.TonAPI.BaseURL)
	}
	if cfg.TonAPI.RequestTimeoutMillis == 0 {
		cfg.TonAPI.RequestTimeoutMillis = 10000
	}

	// Defaults for NFTScan
	if cfg.NFTScan.BaseURL == "" {
		cfg.NFTScan.BaseURL = "https://tonapi.nftscan.com"
		logrus.Infof("NFTScan.BaseURL not set, defaulting to %s", cfg.NFTScan.BaseURL)
	}
	if cfg.NFTScan.RequestTimeoutMillis == 0 {
		cfg.NFTScan.RequestTimeoutMillis = 10000
	}

	if cfg.Aggregator.OverviewConcurrency == 0 {
		cfg.Aggregator.OverviewConcurrency = 3
	}

	// 30 seconds matches the max-age advertised to clients
	if cfg.Cache.TTLSeconds == 0 {
		cfg.Cache.TTLSeconds = 30
	}
	if cfg.Cache.CleanupIntervalSeconds == 0 {
		cfg.Cache.CleanupIntervalSeconds = 60
	}
	if cfg.Cache.Redis.KeyPrefix == "" {
		cfg.Cache.Redis.KeyPrefix = "nftagg:"
	}
}

// applyEnv lets credentials stay out of the config file.
func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvTonAPIKey); v != "" {
		cfg.TonAPI.APIKey = v
	}
	if v := os.Getenv(EnvNFTScanKey); v != "" {
		cfg.NFTScan.APIKey = v
	}
	if cfg.TonAPI.APIKey == "" {
		logrus.Warnf("%s is not set, TonAPI will be called without credentials", EnvTonAPIKey)
	}
	if cfg.NFTScan.APIKey == "" {
		logrus.Warnf("%s is not set, NFTScan will be called without credentials", EnvNFTScanKey)
	}
}
