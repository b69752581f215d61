package cli

import (
	"github.com/spf13/cobra"

	"github.com/hupe1980/srcwatch/internal/build"
	"github.com/hupe1980/srcwatch/internal/config"
)

func newBuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <file>",
		Short: "Transpile a single source file",
		Long: `Build transpiles one file through the same pipeline the watcher uses.
The output path is derived by rewriting the source directory segment to
the output directory segment (src/foo.js -> lib/foo.js).

The transpiler command is echoed before execution; its exit status is
not inspected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromContext(cmd.Context())

			invoker := build.New(build.Options{
				SrcDir: cfg.SrcDir,
				OutDir: cfg.OutDir,
				Out:    cmd.OutOrStdout(),
			})

			invoker.Transpile(cmd.Context(), args[0])

			return nil
		},
	}

	f := cmd.Flags()
	f.String("src-dir", "src", "source path segment rewritten in output paths")
	f.String("out-dir", "lib", "output path segment")

	return cmd
}
