package mediasync

import "github.com/goliatone/go-media-sync/internal/runtimeconfig"

var (
	ErrLogCapacityInvalid             = runtimeconfig.ErrLogCapacityInvalid
	ErrLogKeyRequired                 = runtimeconfig.ErrLogKeyRequired
	ErrStorageProviderUnknown         = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDialectUnknown          = runtimeconfig.ErrStorageDialectUnknown
	ErrRedisAddressRequired           = runtimeconfig.ErrRedisAddressRequired
	ErrNotificationRecipientsRequired = runtimeconfig.ErrNotificationRecipientsRequired
	ErrLoggingProviderRequired        = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown         = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid            = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid           = runtimeconfig.ErrLoggingFormatInvalid
	ErrConfigFormatUnsupported        = runtimeconfig.ErrConfigFormatUnsupported
)

type (
	Config             = runtimeconfig.Config
	LogConfig          = runtimeconfig.LogConfig
	NotificationConfig = runtimeconfig.NotificationConfig
	StorageConfig      = runtimeconfig.StorageConfig
	RedisConfig        = runtimeconfig.RedisConfig
	CacheConfig        = runtimeconfig.CacheConfig
	Features           = runtimeconfig.Features
	LoggingConfig      = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a TOML or YAML file over the defaults and validates it.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.LoadFile(path)
}
