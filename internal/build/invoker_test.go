package build

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingRunner captures invocations instead of spawning processes.
type recordingRunner struct {
	calls [][]string
	err   error
}

func (r *recordingRunner) Run(_ context.Context, _ io.Writer, name string, args ...string) error {
	r.calls = append(r.calls, append([]string{name}, args...))

	return r.err
}

// ---------------------------------------------------------------------------
// OutputPath
// ---------------------------------------------------------------------------

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"relative with dot prefix", "./src/foo.js", "./lib/foo.js"},
		{"relative without prefix", "src/foo.js", "lib/foo.js"},
		{"nested", "src/shaders/b.js", "lib/shaders/b.js"},
		{"first occurrence only", "src/src/a.js", "lib/src/a.js"},
		{"segment absent", "vendor/foo.js", "vendor/foo.js"},
		{"case sensitive", "SRC/foo.js", "SRC/foo.js"},
	}

	inv := New(DefaultOptions())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inv.OutputPath(tt.path))
		})
	}
}

func TestOutputPath_CustomSegments(t *testing.T) {
	inv := New(Options{SrcDir: "source", OutDir: "dist", Out: io.Discard})
	assert.Equal(t, "./dist/app.js", inv.OutputPath("./source/app.js"))
}

// ---------------------------------------------------------------------------
// Command
// ---------------------------------------------------------------------------

func TestCommand(t *testing.T) {
	inv := New(DefaultOptions())

	got := inv.Command("./src/foo.js")
	assert.Equal(t, []string{"npx", "babel", "./src/foo.js", "--source-maps", "-o", "./lib/foo.js"}, got)
}

func TestCommand_Deterministic(t *testing.T) {
	inv := New(DefaultOptions())

	first := inv.Command("./src/foo.js")
	second := inv.Command("./src/foo.js")
	assert.Equal(t, first, second)
}

// ---------------------------------------------------------------------------
// Transpile
// ---------------------------------------------------------------------------

func TestTranspile_EchoesCommand(t *testing.T) {
	out := new(bytes.Buffer)
	runner := &recordingRunner{}

	inv := New(Options{Out: out, Runner: runner})
	inv.Transpile(context.Background(), "./src/foo.js")

	assert.Equal(t, "npx babel ./src/foo.js --source-maps -o ./lib/foo.js\n", out.String())
}

func TestTranspile_RunsTranspiler(t *testing.T) {
	runner := &recordingRunner{}

	inv := New(Options{Out: io.Discard, Runner: runner})
	inv.Transpile(context.Background(), "./src/foo.js")

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"npx", "babel", "./src/foo.js", "--source-maps", "-o", "./lib/foo.js"}, runner.calls[0])
}

func TestTranspile_IgnoresExitStatus(t *testing.T) {
	out := new(bytes.Buffer)
	runner := &recordingRunner{err: fmt.Errorf("exit status 1")}

	inv := New(Options{Out: out, Runner: runner})

	// A failing transpiler must not propagate: the command is echoed and
	// the failure surfaces only through the tool's own output.
	inv.Transpile(context.Background(), "./src/foo.js")

	require.Len(t, runner.calls, 1)
	assert.Contains(t, out.String(), "npx babel ./src/foo.js")
}

// ---------------------------------------------------------------------------
// New
// ---------------------------------------------------------------------------

func TestNew_FillsDefaults(t *testing.T) {
	inv := New(Options{})

	assert.Equal(t, "lib/foo.js", inv.OutputPath("src/foo.js"))
	assert.NotNil(t, inv.out)
	assert.NotNil(t, inv.runner)
}
