// Command bigtext finds large files that are plain text or compress well.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/bigtext/internal/cli"
)

// version is set at build time with -ldflags.
//
//nolint:gochecknoglobals // Set by the linker
var version = "unknown - unofficial & generated by unknown"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
