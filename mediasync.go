package mediasync

import (
	"context"

	mediasynccmd "github.com/goliatone/go-media-sync/internal/commands/mediasync"
	"github.com/goliatone/go-media-sync/internal/di"
	"github.com/goliatone/go-media-sync/internal/media"
	syncengine "github.com/goliatone/go-media-sync/internal/mediasync"
	"github.com/goliatone/go-media-sync/internal/synclog"
	"github.com/goliatone/go-media-sync/internal/translations"
)

// Engine exports the cascade engine.
type Engine = syncengine.Engine

// Result exports the summary of one cascade.
type Result = syncengine.Result

// Attempt exports one logged sibling deletion.
type Attempt = synclog.Attempt

// LogStore exports the bounded attempt log contract.
type LogStore = synclog.Store

// AssetStore exports the hook-aware asset store contract.
type AssetStore = media.Store

// Asset exports the reference asset model.
type Asset = media.Asset

// TranslationDirectory exports the editable translation directory contract.
type TranslationDirectory = translations.Directory

// SyncDeleteCommand exports the command that replays a cascade.
type SyncDeleteCommand = mediasynccmd.SyncDeleteCommand

// SyncDeleteHandler exports the handler for SyncDeleteCommand.
type SyncDeleteHandler = *mediasynccmd.SyncDeleteHandler

// Module represents the top level media sync runtime facade.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Engine returns the cascade engine.
func (m *Module) Engine() *Engine {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Engine()
}

// Hook returns the deletion callback to register with a host asset store.
func (m *Module) Hook() func(ctx context.Context, assetID string) {
	return m.Engine().Hook()
}

// Logs returns the sync attempt log.
func (m *Module) Logs() LogStore {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.LogStore()
}

// Assets returns the asset store whose deletions drive the engine.
func (m *Module) Assets() AssetStore {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.AssetStore()
}

// Translations returns the translation directory.
func (m *Module) Translations() TranslationDirectory {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Directory()
}

// SyncDelete returns the command handler that replays a cascade.
func (m *Module) SyncDelete() SyncDeleteHandler {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.SyncDeleteHandler()
}

// Close releases the resources opened by the module.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
