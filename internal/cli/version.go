package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/srcwatch/internal/version"
)

func newVersionCommand() *cobra.Command {
	var (
		jsonOutput  bool
		checkLatest bool
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Display the version, git commit, build date, Go version, and platform.",
		Args:  cobra.NoArgs,
		// Override parent PersistentPreRunE — version needs no config.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.GetInfo()

			if jsonOutput {
				j, err := info.JSON()
				if err != nil {
					return err
				}

				if _, err = fmt.Fprintln(cmd.OutOrStdout(), j); err != nil {
					return err
				}
			} else {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), info.String()); err != nil {
					return err
				}
			}

			if checkLatest {
				// Network or tag-parse failures stay silent.
				if newest, outdated, err := version.CheckLatest(); err == nil && outdated {
					fmt.Fprintf(cmd.OutOrStdout(), "a newer release is available: %s\n", newest)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output version info as JSON")
	cmd.Flags().BoolVar(&checkLatest, "check", false, "check GitHub for a newer release")

	return cmd
}
