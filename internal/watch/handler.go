package watch

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Transpiler rebuilds a single source file.
type Transpiler interface {
	Transpile(ctx context.Context, path string)
}

// ReferenceResolver lists the files that reference a shader asset.
type ReferenceResolver interface {
	Resolve(ctx context.Context, asset string) ([]string, error)
}

// DefaultPatterns are the base-name globs accepted by the handler.
var DefaultPatterns = []string{"*.js", "*.glsl"}

// Handler routes modified source files into the build pipeline.
// JavaScript files are transpiled directly; shader files fan out to every
// file that references them, since shader text is inlined at build time.
type Handler struct {
	globs     []glob.Glob
	transpile Transpiler
	resolver  ReferenceResolver
	out       io.Writer
}

// NewHandler compiles patterns and wires the pipeline collaborators.
// An empty pattern list falls back to DefaultPatterns. Marker lines for
// shader fanouts are written to out.
func NewHandler(patterns []string, t Transpiler, r ReferenceResolver, out io.Writer) (*Handler, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	if out == nil {
		out = io.Discard
	}

	globs := make([]glob.Glob, 0, len(patterns))

	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compiling pattern %q: %w", p, err)
		}

		globs = append(globs, g)
	}

	return &Handler{
		globs:     globs,
		transpile: t,
		resolver:  r,
		out:       out,
	}, nil
}

// Match reports whether the base name of path matches a watched pattern.
func (h *Handler) Match(path string) bool {
	base := filepath.Base(path)

	for _, g := range h.globs {
		if g.Match(base) {
			return true
		}
	}

	return false
}

// Handle processes one modified file synchronously. A resolve failure
// aborts only this event; the caller decides how to report it. Every
// event is handled independently, nothing outlives the call.
func (h *Handler) Handle(ctx context.Context, path string) error {
	switch {
	case strings.HasSuffix(path, ".js"):
		h.transpile.Transpile(ctx, path)

	case strings.HasSuffix(path, ".glsl"):
		files, err := h.resolver.Resolve(ctx, path)
		if err != nil {
			return err
		}

		fmt.Fprintf(h.out, "## %s\n", path)

		for _, f := range files {
			h.transpile.Transpile(ctx, f)
		}
	}

	return nil
}
