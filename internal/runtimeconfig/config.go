package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-media-sync/internal/synclog"
)

// DefaultLogCapacity is the number of sync attempts retained by the log.
const DefaultLogCapacity = synclog.DefaultCapacity

// DefaultLogKey names the persisted sync log.
const DefaultLogKey = "media_sync_delete_logs"

var ErrLogCapacityInvalid = errors.New("mediasync config: log capacity must be positive")
var ErrLogKeyRequired = errors.New("mediasync config: log key is required")
var ErrStorageProviderUnknown = errors.New("mediasync config: storage provider is invalid")
var ErrStorageDialectUnknown = errors.New("mediasync config: storage dialect is invalid")
var ErrRedisAddressRequired = errors.New("mediasync config: redis storage requires an address")
var ErrNotificationRecipientsRequired = errors.New("mediasync config: notifications require at least one recipient")
var ErrLoggingProviderRequired = errors.New("mediasync config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("mediasync config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("mediasync config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("mediasync config: logging format is invalid")

// Config aggregates the runtime options of the media sync module.
type Config struct {
	Enabled       bool               `toml:"enabled" yaml:"enabled"`
	SiteName      string             `toml:"site_name" yaml:"site_name"`
	Log           LogConfig          `toml:"log" yaml:"log"`
	Notifications NotificationConfig `toml:"notifications" yaml:"notifications"`
	Storage       StorageConfig      `toml:"storage" yaml:"storage"`
	Cache         CacheConfig        `toml:"cache" yaml:"cache"`
	Features      Features           `toml:"features" yaml:"features"`
	Logging       LoggingConfig      `toml:"logging" yaml:"logging"`
}

// LogConfig controls the bounded sync attempt log.
type LogConfig struct {
	Key      string `toml:"key" yaml:"key"`
	Capacity int    `toml:"capacity" yaml:"capacity"`
}

// NotificationConfig describes who hears about failed cascades.
type NotificationConfig struct {
	Enabled    bool     `toml:"enabled" yaml:"enabled"`
	Recipients []string `toml:"recipients" yaml:"recipients"`
	Channel    string   `toml:"channel" yaml:"channel"`
}

// StorageConfig selects where the log and the reference stores persist.
// Provider is memory, bun or redis. With bun, DSN is opened through the
// driver matching Dialect unless a database is injected. With redis only the
// log moves to Redis; assets and translations stay in memory.
type StorageConfig struct {
	Provider string      `toml:"provider" yaml:"provider"`
	Dialect  string      `toml:"dialect" yaml:"dialect"`
	DSN      string      `toml:"dsn" yaml:"dsn"`
	Redis    RedisConfig `toml:"redis" yaml:"redis"`
}

// RedisConfig addresses the Redis server holding the log.
type RedisConfig struct {
	Addr     string `toml:"addr" yaml:"addr"`
	Password string `toml:"password" yaml:"password"`
	DB       int    `toml:"db" yaml:"db"`
}

// CacheConfig captures cache behaviour toggles for Bun repositories.
type CacheConfig struct {
	Enabled    bool          `toml:"enabled" yaml:"enabled"`
	DefaultTTL time.Duration `toml:"default_ttl" yaml:"default_ttl"`
}

// Features toggles optional functionality.
type Features struct {
	Logger   bool `toml:"logger" yaml:"logger"`
	Activity bool `toml:"activity" yaml:"activity"`
	Metrics  bool `toml:"metrics" yaml:"metrics"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `toml:"provider" yaml:"provider"`
	Level     string   `toml:"level" yaml:"level"`
	Format    string   `toml:"format" yaml:"format"`
	AddSource bool     `toml:"add_source" yaml:"add_source"`
	Focus     []string `toml:"focus" yaml:"focus"`
}

// DefaultConfig returns the module defaults:
// an in-memory log of 100 entries and no notification recipients.
func DefaultConfig() Config {
	return Config{
		Enabled:  true,
		SiteName: "cms",
		Log: LogConfig{
			Key:      DefaultLogKey,
			Capacity: DefaultLogCapacity,
		},
		Notifications: NotificationConfig{
			Channel: "mediasync",
		},
		Storage: StorageConfig{
			Provider: "memory",
			Dialect:  "sqlite",
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
		},
		Cache: CacheConfig{
			Enabled:    false,
			DefaultTTL: time.Minute,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Log.Capacity <= 0 {
		return fmt.Errorf("%w: %d", ErrLogCapacityInvalid, cfg.Log.Capacity)
	}
	if strings.TrimSpace(cfg.Log.Key) == "" {
		return ErrLogKeyRequired
	}
	switch normalize(cfg.Storage.Provider) {
	case "memory":
	case "bun":
		if !isSupportedDialect(normalize(cfg.Storage.Dialect)) {
			return fmt.Errorf("%w: %s", ErrStorageDialectUnknown, cfg.Storage.Dialect)
		}
	case "redis":
		if strings.TrimSpace(cfg.Storage.Redis.Addr) == "" {
			return ErrRedisAddressRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}
	if cfg.Notifications.Enabled && len(cfg.Notifications.Recipients) == 0 {
		return ErrNotificationRecipientsRequired
	}
	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if provider != "console" && provider != "gologger" {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedDialect(dialect string) bool {
	return dialect == "sqlite" || dialect == "postgres"
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
