package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/srcwatch/internal/config"
	"github.com/hupe1980/srcwatch/internal/deps"
)

func newDepsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps <asset>",
		Short: "List the files that reference a shader asset",
		Long: `Deps prints the tracked files under the search directory whose content
mentions the asset's base name, one per line. These are the files the
watcher re-transpiles when the asset changes.

The lookup uses git grep, so it only sees tracked content and fails
when nothing references the asset.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromContext(cmd.Context())

			resolver := deps.New(deps.Options{
				SearchDir: cfg.SearchDir,
			})

			files, err := resolver.Resolve(cmd.Context(), args[0])
			if err != nil {
				return &ExitError{Code: 1, Err: err}
			}

			for _, f := range files {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}

			return nil
		},
	}

	cmd.Flags().String("search-dir", "src", "subdirectory searched for references")

	return cmd
}
