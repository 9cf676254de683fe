package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/samirrijal/pluscodes/olc"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Valkey    ValkeyConfig    `mapstructure:"valkey"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Log       LogConfig       `mapstructure:"log"`
	Codec     CodecConfig     `mapstructure:"codec"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
	RateLimit    int `mapstructure:"rate_limit"` // requests per minute per IP
}

type NATSConfig struct {
	URL        string `mapstructure:"url"`
	QueueGroup string `mapstructure:"queue_group"`
}

type ValkeyConfig struct {
	Addr    string `mapstructure:"addr"`
	Enabled bool   `mapstructure:"enabled"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	TempoAddr   string `mapstructure:"tempo_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CodecConfig tunes the code service, not the codec itself.
type CodecConfig struct {
	DefaultLength int `mapstructure:"default_length"`
	CacheTTL      int `mapstructure:"cache_ttl"` // seconds
	MaxBatch      int `mapstructure:"max_batch"`
}

// Load reads configuration from file and environment variables.
func Load(service string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.rate_limit", 600)
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.queue_group", "pluscodes")
	v.SetDefault("valkey.addr", "localhost:6379")
	v.SetDefault("valkey.enabled", true)
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.tempo_addr", "tempo:4317")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("codec.default_length", olc.DefaultCodeLength)
	v.SetDefault("codec.cache_ttl", 3600)
	v.SetDefault("codec.max_batch", 500)

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// A local .env file fills in variables the environment does not set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	// Environment variables: PLUSCODES_VALKEY_ADDR → valkey.addr
	v.SetEnvPrefix("PLUSCODES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.Server.RateLimit <= 0 {
		errs = append(errs, "server.rate_limit must be positive")
	}
	if c.NATS.URL == "" {
		errs = append(errs, "nats.url is required")
	}
	if c.Valkey.Enabled && c.Valkey.Addr == "" {
		errs = append(errs, "valkey.addr is required when valkey is enabled")
	}
	if n := c.Codec.DefaultLength; n < olc.MinCodeLength || n > olc.MaxCodeLength || (n < 10 && n%2 == 1) {
		errs = append(errs, fmt.Sprintf("codec.default_length must be an even number 2-8 or 10-15, got %d", n))
	}
	if c.Codec.CacheTTL < 0 {
		errs = append(errs, "codec.cache_ttl must not be negative")
	}
	if c.Codec.MaxBatch <= 0 {
		errs = append(errs, "codec.max_batch must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
