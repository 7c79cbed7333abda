package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	mediasync "github.com/goliatone/go-media-sync"
)

type demoOptions struct {
	group          string
	locales        []string
	includeMissing bool
}

// NewDemoCommand creates the demo command. It seeds one translation group,
// deletes the first locale and prints what the engine did.
func NewDemoCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &demoOptions{}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Seed a translation group and delete one of its assets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(opts.locales) < 2 {
				return NewExitError(ExitCommandError, "demo needs at least two locales")
			}
			resources, err := rootOpts.module()
			if err != nil {
				return err
			}
			defer resources.Module.Close()

			trigger, err := seedDemoGroup(cmd.Context(), resources.Module, opts)
			if err != nil {
				return WrapExitError(ExitCommandError, "seed demo group", err)
			}
			resources.Logger.Info("mediasync.demo.deleting", "asset_id", trigger, "group", opts.group)

			if err := resources.Module.Assets().Delete(cmd.Context(), trigger, true); err != nil {
				return WrapExitError(ExitCommandError, "delete trigger asset", err)
			}

			entries, err := attemptsFor(cmd.Context(), resources.Module, trigger)
			if err != nil {
				return WrapExitError(ExitCommandError, "read sync log", err)
			}
			return printer{format: rootOpts.Format, out: cmd.OutOrStdout()}.attempts(entries)
		},
	}

	cmd.Flags().StringVar(&opts.group, "group", "welcome-banner", "translation group key")
	cmd.Flags().StringSliceVar(&opts.locales, "locales", []string{"en", "fr", "de"}, "locales to seed; the first one is deleted")
	cmd.Flags().BoolVar(&opts.includeMissing, "include-missing", true, "link a translation whose asset does not exist")

	return cmd
}

// seedDemoGroup creates one asset per locale and links them. It returns the
// id of the first asset.
func seedDemoGroup(ctx context.Context, module *mediasync.Module, opts *demoOptions) (string, error) {
	var trigger string
	for _, locale := range opts.locales {
		asset, err := module.Assets().Create(ctx, &mediasync.Asset{
			Name:     fmt.Sprintf("%s-%s.jpg", opts.group, locale),
			MimeType: "image/jpeg",
			Locale:   locale,
		})
		if err != nil {
			return "", err
		}
		if err := module.Translations().Assign(ctx, opts.group, locale, asset.ID.String()); err != nil {
			return "", err
		}
		if trigger == "" {
			trigger = asset.ID.String()
		}
	}
	if opts.includeMissing {
		if err := module.Translations().Assign(ctx, opts.group, "xx", uuid.NewString()); err != nil {
			return "", err
		}
	}
	return trigger, nil
}
