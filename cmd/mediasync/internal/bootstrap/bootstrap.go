package bootstrap

import (
	"fmt"
	"strings"

	mediasync "github.com/goliatone/go-media-sync"
	"github.com/goliatone/go-media-sync/internal/di"
	"github.com/goliatone/go-media-sync/internal/logging"
	"github.com/goliatone/go-media-sync/pkg/interfaces"
)

// Options captures configuration for CLI bootstraps.
type Options struct {
	ConfigPath     string
	DSN            string
	Verbose        bool
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the media sync module and the CLI logger.
type Module struct {
	Module *mediasync.Module
	Logger interfaces.Logger
}

// BuildModule loads the configuration named by opts and constructs a module.
// A DSN switches storage to bun.
func BuildModule(opts Options) (*Module, error) {
	cfg := mediasync.DefaultConfig()
	if path := strings.TrimSpace(opts.ConfigPath); path != "" {
		loaded, err := mediasync.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if dsn := strings.TrimSpace(opts.DSN); dsn != "" {
		cfg.Storage.Provider = "bun"
		cfg.Storage.DSN = dsn
		if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
			cfg.Storage.Dialect = "postgres"
		}
	}
	if opts.Verbose {
		cfg.Features.Logger = true
		cfg.Logging.Level = "debug"
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := mediasync.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise media sync module: %w", err)
	}

	return &Module{
		Module: module,
		Logger: logging.ModuleLogger(module.Container().LoggerProvider(), "mediasync.cli"),
	}, nil
}
