package mediasynccmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-media-sync/internal/commands"
	"github.com/goliatone/go-media-sync/internal/logging"
	"github.com/goliatone/go-media-sync/internal/mediasync"
	"github.com/goliatone/go-media-sync/pkg/interfaces"
)

const syncDeleteMessageType = "mediasync.asset.sync_delete"

var (
	// ErrSyncDisabled is returned when the sync feature gate is off.
	ErrSyncDisabled = errors.New("mediasync: cascade deletion disabled")
	// ErrTranslationsUnavailable is returned when translation management is inactive.
	ErrTranslationsUnavailable = errors.New("mediasync: translation directory unavailable")
	// ErrCascadeIncomplete is returned when one or more siblings could not be deleted.
	ErrCascadeIncomplete = errors.New("mediasync: cascade incomplete")
)

// Cascader replays the cascade for an asset that is already deleted.
type Cascader interface {
	Replay(ctx context.Context, assetID string) mediasync.Result
}

// CascaderFunc adapts a function to Cascader.
type CascaderFunc func(ctx context.Context, assetID string) mediasync.Result

// Replay implements Cascader.
func (f CascaderFunc) Replay(ctx context.Context, assetID string) mediasync.Result {
	return f(ctx, assetID)
}

// SyncDeleteCommand replays the cascade for an asset whose deletion event was
// missed or whose cascade left translations behind, deleting every remaining
// translation.
type SyncDeleteCommand struct {
	AssetID string `json:"asset_id"`
}

// Type implements command.Message.
func (SyncDeleteCommand) Type() string { return syncDeleteMessageType }

// Validate ensures the command names an asset.
func (m SyncDeleteCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.AssetID) == "" {
		errs["asset_id"] = validation.NewError("mediasync.asset.sync_delete.asset_id_required", "asset_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SyncDeleteHandler runs the cascade through the shared command handler.
type SyncDeleteHandler struct {
	inner *commands.Handler[SyncDeleteCommand]
}

// NewSyncDeleteHandler constructs a handler bound to engine.
func NewSyncDeleteHandler(engine Cascader, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[SyncDeleteCommand]) *SyncDeleteHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg SyncDeleteCommand) error {
		if !gates.syncEnabled() {
			return ErrSyncDisabled
		}
		result := engine.Replay(ctx, strings.TrimSpace(msg.AssetID))
		entry := logging.WithFields(baseLogger, map[string]any{
			"asset_id": result.TriggerAssetID,
			"group_id": result.GroupID,
			"attempts": len(result.Attempts),
		})
		if result.Skip == mediasync.SkipUnavailable {
			return ErrTranslationsUnavailable
		}
		if failures := result.Failures(); len(failures) > 0 {
			return fmt.Errorf("%w: %s", ErrCascadeIncomplete, strings.Join(failures, "; "))
		}
		if result.Skipped() {
			entry.Info("mediasync.command.sync_delete.skipped", "reason", string(result.Skip))
			return nil
		}
		entry.Info("mediasync.command.sync_delete.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[SyncDeleteCommand]{
		commands.WithLogger[SyncDeleteCommand](baseLogger),
		commands.WithOperation[SyncDeleteCommand]("mediasync.asset.sync_delete"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SyncDeleteHandler{
		inner: commands.NewHandler[SyncDeleteCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SyncDeleteCommand].
func (h *SyncDeleteHandler) Execute(ctx context.Context, msg SyncDeleteCommand) error {
	return h.inner.Execute(ctx, msg)
}
