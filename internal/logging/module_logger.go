package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-media-sync/pkg/interfaces"
)

const (
	rootModule    = "mediasync"
	engineModule  = "mediasync.engine"
	storageModule = "mediasync.storage"
	notifyModule  = "mediasync.notify"
)

const (
	fieldAssetID   = "asset_id"
	fieldTriggerID = "trigger_asset_id"
	fieldGroupID   = "group_id"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// EngineLogger returns the logger namespace reserved for the cascade engine.
func EngineLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, engineModule)
}

// StorageLogger returns the logger namespace reserved for log and asset stores.
func StorageLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, storageModule)
}

// NotifyLogger returns the logger namespace reserved for notifiers.
func NotifyLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, notifyModule)
}

// WithCascadeContext enriches the logger with the asset being processed, the
// asset that triggered the cascade and its translation group. Empty values are
// ignored.
func WithCascadeContext(logger interfaces.Logger, assetID, triggerID, groupID string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(assetID); trimmed != "" {
		fields[fieldAssetID] = trimmed
	}
	if trimmed := strings.TrimSpace(triggerID); trimmed != "" {
		fields[fieldTriggerID] = trimmed
	}
	if trimmed := strings.TrimSpace(groupID); trimmed != "" {
		fields[fieldGroupID] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
