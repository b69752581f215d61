// Package deps resolves reverse references for shader assets: the set of
// tracked files whose content mentions a given asset's base name. Shader
// text is inlined at build time, so every referencing file must be
// re-transpiled when the shader changes.
package deps

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Searcher runs an external search command and returns its stdout.
// It exists so tests can stub out git.
type Searcher interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execSearcher shells out via os/exec.
type execSearcher struct{}

func (execSearcher) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output() //nolint:gosec // argv list, no shell
}

// Options configures a Resolver.
type Options struct {
	// SearchDir restricts the reference search to one subdirectory.
	SearchDir string

	// Searcher executes the search command. Defaults to os/exec.
	Searcher Searcher
}

// DefaultOptions searches the conventional src directory.
func DefaultOptions() Options {
	return Options{SearchDir: "src"}
}

// Resolver lists reverse references via git grep.
type Resolver struct {
	searchDir string
	searcher  Searcher
}

// New creates a Resolver from opts, filling unset fields with defaults.
func New(opts Options) *Resolver {
	if opts.SearchDir == "" {
		opts.SearchDir = DefaultOptions().SearchDir
	}

	if opts.Searcher == nil {
		opts.Searcher = execSearcher{}
	}

	return &Resolver{
		searchDir: opts.SearchDir,
		searcher:  opts.Searcher,
	}
}

// Resolve returns the paths of all tracked files under the search
// directory whose content contains the base name of asset. Each returned
// path carries a "./" prefix so it can be fed straight back into the
// build pipeline.
//
// git grep exits non-zero when nothing matches, so an asset with zero
// referencing files is reported as an error rather than an empty result.
func (r *Resolver) Resolve(ctx context.Context, asset string) ([]string, error) {
	base := filepath.Base(asset)

	out, err := r.searcher.Output(ctx, "git", "grep", "-l", base, "--", r.searchDir)
	if err != nil {
		return nil, fmt.Errorf("searching references for %q: %w", base, err)
	}

	var files []string

	for _, line := range strings.Split(string(out), "\n") {
		// Splitting trailing output on newline leaves an empty last entry.
		if line == "" {
			continue
		}

		files = append(files, "./"+line)
	}

	return files, nil
}
