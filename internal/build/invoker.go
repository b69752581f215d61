// Package build invokes the external transpiler for individual source
// files. The output location is derived mechanically from the input path
// by rewriting the source directory segment to the output directory
// segment (src/foo.js -> lib/foo.js).
package build

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Runner executes an external command with its combined output wired to w.
// It exists so tests can record invocations without spawning processes.
type Runner interface {
	Run(ctx context.Context, w io.Writer, name string, args ...string) error
}

// execRunner runs commands via os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, w io.Writer, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // argv list, no shell
	cmd.Stdout = w
	cmd.Stderr = w

	return cmd.Run()
}

// Options configures an Invoker.
type Options struct {
	// SrcDir is the path segment rewritten to OutDir when computing the
	// transpile destination. Only the first occurrence is replaced.
	SrcDir string

	// OutDir is the replacement segment for SrcDir.
	OutDir string

	// Out receives the echoed command line and the transpiler's own output.
	Out io.Writer

	// Runner executes the transpiler command. Defaults to os/exec.
	Runner Runner
}

// DefaultOptions returns the conventional src -> lib layout.
func DefaultOptions() Options {
	return Options{
		SrcDir: "src",
		OutDir: "lib",
		Out:    os.Stdout,
	}
}

// Invoker transpiles source files by shelling out to Babel via npx.
type Invoker struct {
	srcDir string
	outDir string
	out    io.Writer
	runner Runner
}

// New creates an Invoker from opts, filling unset fields with defaults.
func New(opts Options) *Invoker {
	def := DefaultOptions()

	if opts.SrcDir == "" {
		opts.SrcDir = def.SrcDir
	}

	if opts.OutDir == "" {
		opts.OutDir = def.OutDir
	}

	if opts.Out == nil {
		opts.Out = def.Out
	}

	if opts.Runner == nil {
		opts.Runner = execRunner{}
	}

	return &Invoker{
		srcDir: opts.SrcDir,
		outDir: opts.OutDir,
		out:    opts.Out,
		runner: opts.Runner,
	}
}

// OutputPath returns the transpile destination for path: the first
// occurrence of the source segment replaced by the output segment. The
// replacement is a literal, case-sensitive substring substitution.
func (i *Invoker) OutputPath(path string) string {
	return strings.Replace(path, i.srcDir, i.outDir, 1)
}

// Command returns the argv used to transpile path. Pure function of the
// input path, so repeated calls yield identical commands.
func (i *Invoker) Command(path string) []string {
	return []string{"npx", "babel", path, "--source-maps", "-o", i.OutputPath(path)}
}

// Transpile echoes the transpiler command and runs it to completion. The
// command's exit status is deliberately not inspected: a failed transpile
// surfaces only through the tool's own console output and the absence of
// an updated output file.
func (i *Invoker) Transpile(ctx context.Context, path string) {
	argv := i.Command(path)

	fmt.Fprintln(i.out, strings.Join(argv, " "))

	_ = i.runner.Run(ctx, i.out, argv[0], argv[1:]...)
}
