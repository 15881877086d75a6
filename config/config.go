package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Gateway    GatewayConfig    `yaml:"gateway"`
	Normalizer NormalizerConfig `yaml:"normalizer"`
	Channels   ChannelsConfig   `yaml:"channels"`
	Exchanges  []ExchangeConfig `yaml:"exchanges"`
	RateGuard  RateGuardConfig  `yaml:"rate_guard"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type GatewayConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

type NormalizerConfig struct {
	Volume24hBase float64 `yaml:"volume_24h_base"`
	Volume1mBase  float64 `yaml:"volume_1m_base"`
	NativeFiat    string  `yaml:"native_fiat"`
}

type ChannelsConfig struct {
	SnapshotBuffer int `yaml:"snapshot_buffer"`
	StatusBuffer   int `yaml:"status_buffer"`
}

type ExchangeConfig struct {
	Name       string `yaml:"name"`
	Protocol   string `yaml:"protocol"`
	APIKey     string `yaml:"api_key"`
	APISecret  string `yaml:"api_secret"`
	Passphrase string `yaml:"passphrase"`
}

type RateGuardConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

type MetricsConfig struct {
	Enabled    bool             `yaml:"enabled"`
	Listen     string           `yaml:"listen"`
	CloudWatch CloudWatchConfig `yaml:"cloudwatch"`
}

type CloudWatchConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Region    string `yaml:"region"`
	Namespace string `yaml:"namespace"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
	MaxAge int    `yaml:"max_age"`
}

var envPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnv substitutes ${VAR} references so credentials can live outside
// the config file.
func expandEnv(data []byte) []byte {
	return envPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		name := envPattern.FindSubmatch(match)[1]
		return []byte(os.Getenv(string(name)))
	})
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Config{
		Normalizer: NormalizerConfig{
			Volume24hBase: 1,
			Volume1mBase:  1,
		},
		Channels: ChannelsConfig{
			SnapshotBuffer: 64,
			StatusBuffer:   16,
		},
		RateGuard: RateGuardConfig{
			RequestsPerSecond: 5,
			Burst:             1,
		},
		Metrics: MetricsConfig{
			Listen: "0.0.0.0:2112",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}

	if err := yaml.Unmarshal(expandEnv(data), &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Normalizer.Volume24hBase <= 0 {
		return fmt.Errorf("normalizer.volume_24h_base must be positive")
	}
	if cfg.Normalizer.Volume1mBase <= 0 {
		return fmt.Errorf("normalizer.volume_1m_base must be positive")
	}
	if cfg.Channels.SnapshotBuffer <= 0 {
		return fmt.Errorf("channels.snapshot_buffer must be positive")
	}
	if cfg.Channels.StatusBuffer <= 0 {
		return fmt.Errorf("channels.status_buffer must be positive")
	}

	seen := make(map[string]struct{}, len(cfg.Exchanges))
	for _, ex := range cfg.Exchanges {
		name := strings.ToLower(strings.TrimSpace(ex.Name))
		if name == "" {
			return fmt.Errorf("exchange entry missing name")
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("duplicate exchange entry %q", name)
		}
		seen[name] = struct{}{}

		switch ex.Protocol {
		case "hmac-concat", "jwt-query-hash", "path-chain":
		case "":
			return fmt.Errorf("exchange %q missing signature protocol", name)
		default:
			return fmt.Errorf("exchange %q has unknown signature protocol %q", name, ex.Protocol)
		}
	}

	return nil
}
