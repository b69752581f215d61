// srcwatch watches a source tree and re-transpiles changed files via Babel.
package main

import (
	"os"

	"github.com/hupe1980/srcwatch/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
