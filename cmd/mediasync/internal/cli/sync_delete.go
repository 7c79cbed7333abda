package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	mediasync "github.com/goliatone/go-media-sync"
	mediasynccmd "github.com/goliatone/go-media-sync/internal/commands/mediasync"
)

// NewSyncDeleteCommand creates the sync-delete command, which deletes the
// remaining translations of an asset whose deletion event was missed.
func NewSyncDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sync-delete <asset-id>",
		Short: "Delete every translation of an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resources, err := rootOpts.module()
			if err != nil {
				return err
			}
			defer resources.Module.Close()

			assetID := strings.TrimSpace(args[0])
			execErr := resources.Module.SyncDelete().Execute(cmd.Context(), mediasync.SyncDeleteCommand{AssetID: assetID})
			if execErr != nil && !errors.Is(execErr, mediasynccmd.ErrCascadeIncomplete) {
				return WrapExitError(ExitCommandError, "sync-delete", execErr)
			}

			entries, err := attemptsFor(cmd.Context(), resources.Module, assetID)
			if err != nil {
				return WrapExitError(ExitCommandError, "read sync log", err)
			}
			if err := (printer{format: rootOpts.Format, out: cmd.OutOrStdout()}).attempts(entries); err != nil {
				return err
			}
			if execErr != nil {
				return WrapExitError(ExitFailure, "sync-delete", execErr)
			}
			return nil
		},
	}
}

func attemptsFor(ctx context.Context, module *mediasync.Module, triggerAssetID string) ([]mediasync.Attempt, error) {
	entries, err := module.Logs().ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	var out []mediasync.Attempt
	for _, entry := range entries {
		if entry.TriggerAssetID == triggerAssetID {
			out = append(out, entry)
		}
	}
	return out, nil
}
