package cli

import (
	"github.com/spf13/cobra"
)

// NewLogsCommand creates the logs command.
func NewLogsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logs",
		Short: "Print the sync attempt log, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resources, err := rootOpts.module()
			if err != nil {
				return err
			}
			defer resources.Module.Close()

			entries, err := resources.Module.Logs().ReadAll(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "read sync log", err)
			}
			return printer{format: rootOpts.Format, out: cmd.OutOrStdout()}.attempts(entries)
		},
	}
}
