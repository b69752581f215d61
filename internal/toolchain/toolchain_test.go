package toolchain

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func found(file string) (string, error)   { return "/usr/bin/" + file, nil }
func missing(file string) (string, error) { return "", fmt.Errorf("%s not found", file) }

func babelAt(version string) VersionFunc {
	return func(context.Context) (string, error) { return version, nil }
}

func TestPreflight_AllGood(t *testing.T) {
	c := New(Options{LookPath: found, BabelVersion: babelAt("7.23.5")})

	assert.Empty(t, c.Preflight(context.Background()))
}

func TestPreflight_GitMissing(t *testing.T) {
	lookPath := func(file string) (string, error) {
		if file == "git" {
			return missing(file)
		}

		return found(file)
	}

	c := New(Options{LookPath: lookPath, BabelVersion: babelAt("7.23.5")})

	warnings := c.Preflight(context.Background())
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "git not found")
}

func TestPreflight_NpxMissing(t *testing.T) {
	lookPath := func(file string) (string, error) {
		if file == "npx" {
			return missing(file)
		}

		return found(file)
	}

	c := New(Options{LookPath: lookPath, BabelVersion: babelAt("7.23.5")})

	warnings := c.Preflight(context.Background())
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "npx not found")
}

func TestPreflight_EverythingMissing(t *testing.T) {
	c := New(Options{LookPath: missing, BabelVersion: babelAt("7.23.5")})

	warnings := c.Preflight(context.Background())
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "git not found")
	assert.Contains(t, warnings[1], "npx not found")
}

func TestPreflight_VersionQueryFails(t *testing.T) {
	babelVersion := func(context.Context) (string, error) {
		return "", fmt.Errorf("exit status 127")
	}

	c := New(Options{LookPath: found, BabelVersion: babelVersion})

	warnings := c.Preflight(context.Background())
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "could not determine babel version")
}

func TestPreflight_UnparseableVersion(t *testing.T) {
	c := New(Options{LookPath: found, BabelVersion: babelAt("not-a-version")})

	warnings := c.Preflight(context.Background())
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "unparseable babel version")
}

func TestPreflight_OutdatedBabel(t *testing.T) {
	c := New(Options{LookPath: found, BabelVersion: babelAt("6.26.0")})

	warnings := c.Preflight(context.Background())
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "older than the supported range")
}

func TestPreflight_TrimsVersionOutput(t *testing.T) {
	c := New(Options{LookPath: found, BabelVersion: babelAt("7.23.5\n")})

	assert.Empty(t, c.Preflight(context.Background()))
}
