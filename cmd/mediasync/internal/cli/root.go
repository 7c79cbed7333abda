package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-media-sync/cmd/mediasync/internal/bootstrap"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	DSN        string
	Format     string // "text" | "json"
	Verbose    bool

	build func(bootstrap.Options) (*bootstrap.Module, error)
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the mediasync CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(bootstrap.BuildModule)
}

func newRootCommand(build func(bootstrap.Options) (*bootstrap.Module, error)) *cobra.Command {
	opts := &RootOptions{build: build}

	cmd := &cobra.Command{
		Use:   "mediasync",
		Short: "Cascade media deletions across translations",
		Long: `Deletes every language version of a media asset when one version is
deleted, and keeps a bounded log of each attempt.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "TOML or YAML configuration file")
	cmd.PersistentFlags().StringVar(&opts.DSN, "dsn", "", "database DSN; switches storage to bun")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log engine activity to stdout")

	cmd.AddCommand(NewDemoCommand(opts))
	cmd.AddCommand(NewLogsCommand(opts))
	cmd.AddCommand(NewSyncDeleteCommand(opts))

	return cmd
}

func (o *RootOptions) module() (*bootstrap.Module, error) {
	module, err := o.build(bootstrap.Options{
		ConfigPath: o.ConfigPath,
		DSN:        o.DSN,
		Verbose:    o.Verbose,
	})
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "bootstrap module", err)
	}
	return module, nil
}
