package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Address         string        `yaml:"address" mapstructure:"address"`
	Insecure        bool          `yaml:"insecure" mapstructure:"insecure"`
	CAFile          string        `yaml:"ca_file" mapstructure:"ca_file"`
	Timeout         time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxResponseSize int           `yaml:"max_response_size" mapstructure:"max_response_size"`
	Log             LogConfig     `yaml:"log" mapstructure:"log"`
	Metrics         MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

type MetricsConfig struct {
	// Empty disables the /metrics listener.
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// Default returns the configuration used when no file is given. Insecure
// is on because Quantis appliances ship with self-signed certificates.
func Default() Config {
	return Config{
		Insecure:        true,
		MaxResponseSize: 64 << 20,
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// FromViper resolves the configuration from v: the file named by the
// "config" key first, then any keys set by flags or QRNG_* environment
// variables on top.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := Default()
	if path := v.GetString("config"); path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}

	if v.IsSet("address") {
		cfg.Address = v.GetString("address")
	}
	if v.IsSet("insecure") {
		cfg.Insecure = v.GetBool("insecure")
	}
	if v.IsSet("ca_file") {
		cfg.CAFile = v.GetString("ca_file")
	}
	if v.IsSet("timeout") {
		cfg.Timeout = v.GetDuration("timeout")
	}
	if v.IsSet("max_response_size") {
		cfg.MaxResponseSize = v.GetInt("max_response_size")
	}
	if v.IsSet("log.level") {
		cfg.Log.Level = v.GetString("log.level")
	}
	if v.IsSet("log.format") {
		cfg.Log.Format = v.GetString("log.format")
	}
	if v.IsSet("metrics.addr") {
		cfg.Metrics.Addr = v.GetString("metrics.addr")
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewViper returns a viper instance reading QRNG_* environment variables,
// with "log.level" mapped to QRNG_LOG_LEVEL.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("qrng")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func (c *Config) applyDefaults() {
	c.Address = strings.TrimSpace(c.Address)
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
}

func (c *Config) Validate() error {
	if c.Address == "" {
		return fmt.Errorf("address is required")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if c.MaxResponseSize < 0 {
		return fmt.Errorf("max_response_size must not be negative")
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unsupported log format %q", c.Log.Format)
	}
	return nil
}
