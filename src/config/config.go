package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/livefire2015/ez-receivables/src/client"
	"github.com/livefire2015/ez-receivables/src/logger"
	"github.com/rs/zerolog"
)

// DefaultPath is the optional YAML file read by Load
const DefaultPath = "configs/config.yaml"

// EnvPrefix prefixes every environment override. Nesting uses a double
// underscore, e.g. ARLEDGER_REMOTE__BASE_URL.
const EnvPrefix = "ARLEDGER_"

// Config is the arledger runtime configuration
type Config struct {
	Environment string `koanf:"environment"`

	Log      LogConfig      `koanf:"log"`
	Remote   RemoteConfig   `koanf:"remote"`
	Redis    RedisConfig    `koanf:"redis"`
	Database DatabaseConfig `koanf:"database"`
	Metrics  MetricsConfig  `koanf:"metrics"`
	Engine   EngineConfig   `koanf:"engine"`
}

type LogConfig struct {
	Level      string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format     string `koanf:"format" validate:"oneof=json console"`
	Output     string `koanf:"output"`
	TimeFormat string `koanf:"time_format"`
}

// RemoteConfig locates and authenticates against the remote ledger service
type RemoteConfig struct {
	BaseURL      string        `koanf:"base_url" validate:"required,url"`
	APIKey       string        `koanf:"api_key"`
	JWTSecret    string        `koanf:"jwt_secret"`
	JWTIssuer    string        `koanf:"jwt_issuer"`
	JWTSubject   string        `koanf:"jwt_subject"`
	TokenTTL     time.Duration `koanf:"token_ttl"`
	Timeout      time.Duration `koanf:"timeout" validate:"gt=0"`
	RateLimitRPS float64       `koanf:"rate_limit_rps" validate:"gt=0"`
	Burst        int           `koanf:"burst" validate:"gte=1"`
}

// RedisConfig enables the list cache
type RedisConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Addr     string        `koanf:"addr" validate:"required_if=Enabled true"`
	Password string        `koanf:"password"`
	DB       int           `koanf:"db"`
	TTL      time.Duration `koanf:"ttl"`
	Prefix   string        `koanf:"prefix"`
}

// DatabaseConfig enables the Postgres batch journal
type DatabaseConfig struct {
	Enabled         bool          `koanf:"enabled"`
	URL             string        `koanf:"url" validate:"required_if=Enabled true"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
}

type MetricsConfig struct {
	Addr string `koanf:"addr"`
}

// EngineConfig tunes the ledger engine
type EngineConfig struct {
	SplitConcurrency int           `koanf:"split_concurrency" validate:"gte=1"`
	RemoteFiltering  bool          `koanf:"remote_filtering"`
	WatchInterval    time.Duration `koanf:"watch_interval" validate:"gt=0"`
}

// Defaults returns the configuration used before any file or environment override
func Defaults() *Config {
	return &Config{
		Environment: "development",
		Log: LogConfig{
			Level:      "info",
			Format:     "console",
			Output:     "stderr",
			TimeFormat: time.RFC3339,
		},
		Remote: RemoteConfig{
			JWTIssuer:    "arledger",
			TokenTTL:     5 * time.Minute,
			Timeout:      30 * time.Second,
			RateLimitRPS: 10,
			Burst:        20,
		},
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			TTL:    30 * time.Second,
			Prefix: "arledger",
		},
		Database: DatabaseConfig{
			MaxOpenConns:    10,
			MaxIdleConns:    2,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Metrics: MetricsConfig{
			Addr: ":9102",
		},
		Engine: EngineConfig{
			SplitConcurrency: 4,
			WatchInterval:    time.Minute,
		},
	}
}

// Load reads defaults, then DefaultPath if present, then the environment
func Load() (*Config, error) {
	return LoadFrom(DefaultPath)
}

// LoadFrom is Load with an explicit YAML path. A missing file is not an error.
func LoadFrom(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Defaults(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

var validate = validator.New()

// Validate checks the loaded configuration
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) && len(vErrs) > 0 {
			fe := vErrs[0]
			return fmt.Errorf("invalid config: %s failed '%s'", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// GetLoggerConfig converts the log section for logger.Setup
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.Log.Level,
		Format:     c.Log.Format,
		TimeFormat: c.Log.TimeFormat,
		Output:     c.Log.Output,
	}
}

// ClientConfig converts the remote section for client.NewHTTPLedgerClient
func (c *Config) ClientConfig() client.Config {
	return client.Config{
		BaseURL:      c.Remote.BaseURL,
		APIKey:       c.Remote.APIKey,
		JWTSecret:    c.Remote.JWTSecret,
		JWTIssuer:    c.Remote.JWTIssuer,
		JWTSubject:   c.Remote.JWTSubject,
		TokenTTL:     c.Remote.TokenTTL,
		Timeout:      c.Remote.Timeout,
		RateLimitRPS: c.Remote.RateLimitRPS,
		Burst:        c.Remote.Burst,
	}
}

// LogSummary writes the non-secret settings at info level
func (c *Config) LogSummary(l zerolog.Logger) {
	l.Info().
		Str("environment", c.Environment).
		Str("remote", c.Remote.BaseURL).
		Bool("jwt_auth", c.Remote.JWTSecret != "").
		Bool("redis_cache", c.Redis.Enabled).
		Bool("batch_journal", c.Database.Enabled).
		Bool("remote_filtering", c.Engine.RemoteFiltering).
		Int("split_concurrency", c.Engine.SplitConcurrency).
		Msg("configuration loaded")
}
