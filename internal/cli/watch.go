package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/srcwatch/internal/build"
	"github.com/hupe1980/srcwatch/internal/config"
	"github.com/hupe1980/srcwatch/internal/deps"
	"github.com/hupe1980/srcwatch/internal/logging"
	"github.com/hupe1980/srcwatch/internal/toolchain"
	"github.com/hupe1980/srcwatch/internal/watch"
)

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Watch a source tree and transpile on change",
		Long: `Watch monitors a directory tree (default: current directory) for file
modifications and re-transpiles affected files.

A modified .js file is transpiled directly; the output path rewrites the
source directory segment to the output directory segment. A modified
.glsl shader re-transpiles every tracked file under the search directory
that mentions the shader's name, located via git grep.

Each change dispatches independently. Use --debounce to coalesce rapid
successive writes to the same file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			return runWatch(cmd.Context(), cmd, root)
		},
	}

	f := cmd.Flags()
	f.String("src-dir", "src", "source path segment rewritten in output paths")
	f.String("out-dir", "lib", "output path segment")
	f.String("search-dir", "src", "subdirectory searched for shader references")
	f.Duration("debounce", 0, "per-file debounce interval (0 disables)")
	f.Bool("preflight", true, "check the external toolchain before watching")

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, root string) error {
	cfg := config.FromContext(ctx)
	logger := logging.FromContext(ctx)

	if cfg.Preflight {
		check := toolchain.New(toolchain.Options{})

		preCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		for _, warning := range check.Preflight(preCtx) {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", warning)
		}
	}

	invoker := build.New(build.Options{
		SrcDir: cfg.SrcDir,
		OutDir: cfg.OutDir,
		Out:    cmd.OutOrStdout(),
	})

	resolver := deps.New(deps.Options{
		SearchDir: cfg.SearchDir,
	})

	handler, err := watch.NewHandler(nil, invoker, resolver, cmd.OutOrStdout())
	if err != nil {
		return &ExitError{Code: 2, Err: err}
	}

	watchOpts := watch.Options{
		Root:     root,
		Debounce: cfg.Debounce,
		Logger:   logger,
		Out:      cmd.ErrOrStderr(),
	}

	return watch.Run(ctx, watchOpts, handler)
}
