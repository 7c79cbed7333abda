package di

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"

	"github.com/goliatone/go-media-sync/internal/commands"
	mediasynccmd "github.com/goliatone/go-media-sync/internal/commands/mediasync"
	"github.com/goliatone/go-media-sync/internal/logging"
	"github.com/goliatone/go-media-sync/internal/logging/console"
	"github.com/goliatone/go-media-sync/internal/logging/gologger"
	"github.com/goliatone/go-media-sync/internal/media"
	"github.com/goliatone/go-media-sync/internal/mediasync"
	"github.com/goliatone/go-media-sync/internal/migrations"
	"github.com/goliatone/go-media-sync/internal/notify"
	"github.com/goliatone/go-media-sync/internal/runtimeconfig"
	"github.com/goliatone/go-media-sync/internal/synclog"
	"github.com/goliatone/go-media-sync/internal/telemetry"
	"github.com/goliatone/go-media-sync/internal/translations"
	"github.com/goliatone/go-media-sync/pkg/activity/usersink"
	"github.com/goliatone/go-media-sync/pkg/interfaces"
)

// ErrActivitySinkRequired reports the activity feature without a sink to write to.
var ErrActivitySinkRequired = errors.New("di: activity feature enabled without an activity sink")

// ErrDatabaseRequired reports bun storage with neither a database nor a DSN.
var ErrDatabaseRequired = errors.New("di: bun storage requires a database or a DSN")

// Container wires the engine to its stores, notifiers and loggers.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider

	sqlDB       *sql.DB
	bunDB       *bun.DB
	ownsDB      bool
	redisClient redis.UniversalClient
	ownsRedis   bool

	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	assets    media.Store
	directory translations.Directory
	logStore  synclog.Store

	activitySink interfaces.ActivitySink
	notifier     interfaces.Notifier

	registerer prometheus.Registerer
	telemetry  *telemetry.Provider

	engine      *mediasync.Engine
	syncDelete  *mediasynccmd.SyncDeleteHandler
	unsubscribe []func()
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the logger provider built from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithBunDB supplies the database used by bun storage. The caller keeps
// ownership and closes it.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithSQLDB supplies a database/sql handle that the container wraps with the
// dialect named in Config.Storage.Dialect. The caller keeps ownership.
func WithSQLDB(db *sql.DB) Option {
	return func(c *Container) {
		c.sqlDB = db
	}
}

// WithRedisClient supplies the client used by redis storage.
func WithRedisClient(client redis.UniversalClient) Option {
	return func(c *Container) {
		c.redisClient = client
	}
}

// WithCache overrides the repository cache used when Config.Cache is enabled.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithAssetStore overrides the asset store.
func WithAssetStore(store media.Store) Option {
	return func(c *Container) {
		c.assets = store
	}
}

// WithDirectory overrides the translation directory.
func WithDirectory(directory translations.Directory) Option {
	return func(c *Container) {
		c.directory = directory
	}
}

// WithLogStore overrides the sync attempt log.
func WithLogStore(store synclog.Store) Option {
	return func(c *Container) {
		c.logStore = store
	}
}

// WithActivitySink sets the go-users style sink used by the activity notifier.
func WithActivitySink(sink interfaces.ActivitySink) Option {
	return func(c *Container) {
		c.activitySink = sink
	}
}

// WithNotifier replaces the notifiers built from Config.Notifications.
func WithNotifier(notifier interfaces.Notifier) Option {
	return func(c *Container) {
		c.notifier = notifier
	}
}

// WithMetricsRegisterer sets where engine metrics are registered when the
// metrics feature is enabled.
func WithMetricsRegisterer(reg prometheus.Registerer) Option {
	return func(c *Container) {
		c.registerer = reg
	}
}

// NewContainer validates cfg and wires every collaborator. Hooks are
// registered on the asset store so deletions reach the engine.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		opt(c)
	}

	steps := []func() error{
		c.configureLoggerProvider,
		c.configureDatabase,
		c.configureRedis,
		c.configureCacheDefaults,
		c.configureStores,
		c.configureLogStore,
		c.configureNotifier,
		c.configureEngine,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			c.Close()
			return nil, err
		}
	}

	logging.ModuleLogger(c.loggerProvider, "mediasync.di").Info("mediasync.container.configured",
		"storage", normalize(cfg.Storage.Provider),
		"cache", cfg.Cache.Enabled,
		"metrics", cfg.Features.Metrics,
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}
	logCfg := c.Config.Logging
	switch normalize(logCfg.Provider) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Focus:     logCfg.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		c.loggerProvider = console.NewProvider(console.Options{
			MinLevel: console.ParseLevel(logCfg.Level),
		})
	}
	return nil
}

func (c *Container) configureDatabase() error {
	if normalize(c.Config.Storage.Provider) != "bun" {
		return nil
	}
	if c.bunDB == nil {
		if c.sqlDB == nil {
			dsn := strings.TrimSpace(c.Config.Storage.DSN)
			if dsn == "" {
				return ErrDatabaseRequired
			}
			sqlDB, err := sql.Open(driverName(c.Config.Storage.Dialect), dsn)
			if err != nil {
				return fmt.Errorf("di: open database: %w", err)
			}
			if normalize(c.Config.Storage.Dialect) == "sqlite" {
				sqlDB.SetMaxOpenConns(1)
			}
			c.sqlDB = sqlDB
			c.ownsDB = true
		}
		c.bunDB = bun.NewDB(c.sqlDB, dialectFor(c.Config.Storage.Dialect))
	}
	return migrations.Ensure(context.Background(), c.bunDB)
}

func (c *Container) configureRedis() error {
	if normalize(c.Config.Storage.Provider) != "redis" || c.redisClient != nil || c.logStore != nil {
		return nil
	}
	redisCfg := c.Config.Storage.Redis
	c.redisClient = redis.NewClient(&redis.Options{
		Addr:     redisCfg.Addr,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})
	c.ownsRedis = true
	return nil
}

func (c *Container) configureCacheDefaults() error {
	if !c.Config.Cache.Enabled {
		return nil
	}
	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if ttl := c.Config.Cache.DefaultTTL; ttl > 0 {
			cfg.TTL = ttl
		} else {
			cfg.TTL = time.Minute
		}
		service, err := repocache.NewCacheService(cfg)
		if err != nil {
			return fmt.Errorf("di: cache service: %w", err)
		}
		c.cacheService = service
	}
	if c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
	return nil
}

func (c *Container) configureStores() error {
	availability := translations.WithAvailability(func(context.Context) bool {
		return c.Config.Enabled
	})
	if c.bunDB != nil {
		if c.assets == nil {
			if c.Config.Cache.Enabled {
				c.assets = media.NewBunStoreWithCache(c.bunDB, c.cacheService, c.keySerializer)
			} else {
				c.assets = media.NewBunStore(c.bunDB)
			}
		}
		if c.directory == nil {
			c.directory = translations.NewBunDirectory(c.bunDB, availability)
		}
		return nil
	}
	if c.assets == nil {
		c.assets = media.NewMemoryStore()
	}
	if c.directory == nil {
		c.directory = translations.NewMemoryDirectory(availability)
	}
	return nil
}

func (c *Container) configureLogStore() error {
	if c.logStore != nil {
		return nil
	}
	key, capacity := c.Config.Log.Key, c.Config.Log.Capacity
	var (
		store synclog.Store
		err   error
	)
	switch {
	case c.redisClient != nil && normalize(c.Config.Storage.Provider) == "redis":
		store, err = synclog.NewRedisStore(c.redisClient, key, capacity)
	case c.bunDB != nil:
		store, err = synclog.NewBunStore(c.bunDB, key, capacity)
	default:
		store, err = synclog.NewMemoryStore(capacity)
	}
	if err != nil {
		return err
	}
	c.logStore = store
	return nil
}

func (c *Container) configureNotifier() error {
	if c.notifier != nil {
		return nil
	}
	notifyOpts := []notify.Option{
		notify.WithSiteName(c.Config.SiteName),
		notify.WithChannel(c.Config.Notifications.Channel),
		notify.WithLogger(logging.NotifyLogger(c.loggerProvider)),
	}
	if c.Config.Notifications.Enabled {
		notifyOpts = append(notifyOpts, notify.WithRecipients(c.Config.Notifications.Recipients...))
	}

	notifiers := notify.Multi{notify.NewLogNotifier(notifyOpts...)}
	if c.Config.Features.Activity {
		if c.activitySink == nil {
			return ErrActivitySinkRequired
		}
		activityNotifier, err := notify.NewActivityNotifier(usersink.Hook{Sink: c.activitySink}, notifyOpts...)
		if err != nil {
			return err
		}
		notifiers = append(notifiers, activityNotifier)
	}
	c.notifier = notifiers
	return nil
}

func (c *Container) configureEngine() error {
	engineOpts := []mediasync.Option{
		mediasync.WithLogStore(c.logStore),
		mediasync.WithNotifier(c.notifier),
		mediasync.WithLogger(logging.EngineLogger(c.loggerProvider)),
	}
	if c.Config.Features.Metrics {
		c.telemetry = telemetry.NewProvider(c.registerer)
		engineOpts = append(engineOpts,
			mediasync.WithMetrics(c.telemetry.Metrics),
			mediasync.WithTracer(c.telemetry.Tracer),
		)
	}
	c.engine = mediasync.NewEngine(c.directory, c.assets, engineOpts...)

	c.unsubscribe = append(c.unsubscribe, c.assets.OnDelete(c.onAssetDeleted))

	commandLogger := commands.CommandLogger(c.loggerProvider, "mediasync")
	var handlerOpts []commands.HandlerOption[mediasynccmd.SyncDeleteCommand]
	if c.telemetry != nil {
		handlerOpts = append(handlerOpts, commands.WithTelemetry(
			telemetry.CommandTelemetry(c.telemetry.Metrics,
				commands.DefaultTelemetry[mediasynccmd.SyncDeleteCommand](commandLogger)),
		))
	}
	c.syncDelete = mediasynccmd.NewSyncDeleteHandler(
		mediasynccmd.CascaderFunc(c.replay),
		commandLogger,
		mediasynccmd.FeatureGates{SyncEnabled: func() bool { return c.Config.Enabled }},
		handlerOpts...,
	)
	return nil
}

// onAssetDeleted runs the cascade, then drops the deleted asset from its
// group. The membership is kept when the cascade did not run or left
// siblings behind, so a replay can still resolve the group from this id.
func (c *Container) onAssetDeleted(ctx context.Context, assetID string) {
	result := c.engine.OnAssetDeleted(ctx, assetID)
	if settled(result) {
		c.forgetTranslation(ctx, assetID)
	}
}

// replay re-runs the cascade for assetID and drops it from its group once
// nothing is left behind and the asset itself is gone.
func (c *Container) replay(ctx context.Context, assetID string) mediasync.Result {
	result := c.engine.Replay(ctx, assetID)
	if !settled(result) || result.Skip == mediasync.SkipNoGroup {
		return result
	}
	if mimeType, err := c.assets.MimeTypeOf(ctx, result.TriggerAssetID); err == nil && mimeType == "" {
		c.forgetTranslation(ctx, result.TriggerAssetID)
	}
	return result
}

func settled(result mediasync.Result) bool {
	return result.Skip != mediasync.SkipUnavailable && len(result.Failures()) == 0
}

func (c *Container) forgetTranslation(ctx context.Context, assetID string) {
	if err := c.directory.Forget(ctx, assetID); err != nil {
		logging.StorageLogger(c.loggerProvider).WithContext(ctx).Warn("mediasync.translation.forget_failed",
			"asset_id", assetID, "error", err)
	}
}

// Engine returns the configured sync engine.
func (c *Container) Engine() *mediasync.Engine {
	return c.engine
}

// AssetStore returns the store whose deletions drive the engine.
func (c *Container) AssetStore() media.Store {
	return c.assets
}

// Directory returns the translation directory.
func (c *Container) Directory() translations.Directory {
	return c.directory
}

// LogStore returns the sync attempt log.
func (c *Container) LogStore() synclog.Store {
	return c.logStore
}

// Notifier returns the notifier told about failed cascades.
func (c *Container) Notifier() interfaces.Notifier {
	return c.notifier
}

// SyncDeleteHandler returns the command handler that replays a cascade.
func (c *Container) SyncDeleteHandler() *mediasynccmd.SyncDeleteHandler {
	return c.syncDelete
}

// Telemetry returns the metrics provider, or nil when metrics are disabled.
func (c *Container) Telemetry() *telemetry.Provider {
	return c.telemetry
}

// LoggerProvider returns the provider behind the module loggers.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// BunDB returns the database used by bun storage, if any.
func (c *Container) BunDB() *bun.DB {
	return c.bunDB
}

// Close unregisters the deletion hooks and releases connections the
// container opened itself.
func (c *Container) Close() error {
	for _, unsubscribe := range c.unsubscribe {
		unsubscribe()
	}
	c.unsubscribe = nil

	var errs []error
	if c.ownsRedis && c.redisClient != nil {
		errs = append(errs, c.redisClient.Close())
		c.ownsRedis = false
	}
	if c.ownsDB && c.sqlDB != nil {
		errs = append(errs, c.sqlDB.Close())
		c.ownsDB = false
	}
	return errors.Join(errs...)
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func driverName(dialect string) string {
	if normalize(dialect) == "postgres" {
		return "postgres"
	}
	return "sqlite3"
}

func dialectFor(dialect string) schema.Dialect {
	if normalize(dialect) == "postgres" {
		return pgdialect.New()
	}
	return sqlitedialect.New()
}
