// Command komodo switches interactive shells into versioned software
// environments and back out of them.
//
// The binary never mutates its parent shell. Subcommands that change shell
// state (activate, disable, hook) print dialect-specific shell code on
// stdout for the caller to eval; everything else the process says goes to
// stderr, so a failed invocation evaluates to nothing.
package main

import (
	"os"

	"github.com/komodo-env/komodo/internal/logging"
)

// Version is set at build time via ldflags:
//
//	go build -ldflags "-X main.Version=1.2.3" ./cmd/komodo
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logging.Error("%v", err)
		os.Exit(exitCode(err))
	}
}
