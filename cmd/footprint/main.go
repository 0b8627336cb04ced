package main

import (
	"os"

	"github.com/carbonex/footprint/internal/cli"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	if err := cli.NewRootCmd(version).Execute(); err != nil {
		return 1
	}
	return 0
}
