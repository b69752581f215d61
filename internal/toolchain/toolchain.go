// Package toolchain performs preflight checks for the external tools
// srcwatch shells out to: npx/babel for transpiling and git for the
// shader reference search.
package toolchain

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// BabelConstraint is the transpiler version range srcwatch is tested with.
const BabelConstraint = ">= 7.0.0"

// LookPathFunc locates an executable on PATH.
type LookPathFunc func(file string) (string, error)

// VersionFunc reports the installed Babel CLI version string.
type VersionFunc func(ctx context.Context) (string, error)

// Options configures a preflight Check.
type Options struct {
	// LookPath locates executables. Defaults to exec.LookPath.
	LookPath LookPathFunc

	// BabelVersion queries the transpiler version. Defaults to running
	// npx babel --version.
	BabelVersion VersionFunc
}

// Check verifies the external toolchain.
type Check struct {
	lookPath     LookPathFunc
	babelVersion VersionFunc
}

// New creates a Check from opts, filling unset fields with defaults.
func New(opts Options) *Check {
	if opts.LookPath == nil {
		opts.LookPath = exec.LookPath
	}

	if opts.BabelVersion == nil {
		opts.BabelVersion = babelVersion
	}

	return &Check{
		lookPath:     opts.LookPath,
		babelVersion: opts.BabelVersion,
	}
}

// Preflight inspects the toolchain and returns human-readable warnings
// for anything missing or unsupported. It never fails hard: the watch
// loop is still useful when only one of the two pipelines works.
func (c *Check) Preflight(ctx context.Context) []string {
	var warnings []string

	if _, err := c.lookPath("git"); err != nil {
		warnings = append(warnings, "git not found on PATH: shader reference lookups will fail")
	}

	if _, err := c.lookPath("npx"); err != nil {
		return append(warnings, "npx not found on PATH: transpile commands will fail")
	}

	raw, err := c.babelVersion(ctx)
	if err != nil {
		return append(warnings, fmt.Sprintf("could not determine babel version: %v", err))
	}

	version, err := semver.NewVersion(strings.TrimSpace(raw))
	if err != nil {
		return append(warnings, fmt.Sprintf("unparseable babel version %q: %v", raw, err))
	}

	constraint, err := semver.NewConstraint(BabelConstraint)
	if err != nil {
		// BabelConstraint is a compile-time constant; this cannot happen.
		return append(warnings, fmt.Sprintf("invalid babel constraint: %v", err))
	}

	if !constraint.Check(version) {
		warnings = append(warnings, fmt.Sprintf("babel %s is older than the supported range %s", version, BabelConstraint))
	}

	return warnings
}

// babelVersion runs npx babel --version and returns its trimmed output.
func babelVersion(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "npx", "babel", "--version").Output()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(out)), nil
}
