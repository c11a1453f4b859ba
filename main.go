package main

import (
	"fmt"
	"os"

	"github.com/idelchi/projstat/internal/cli"
)

// Set by the build system.
var version = "unknown - unofficial & generated by unknown"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
