package main

import (
	"os"

	"github.com/cxp-platform/cxp-cli/internal/cli"
	"github.com/cxp-platform/cxp-cli/internal/iam"
)

// Version information set at build time
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	// Set version information for commands to use
	cli.SetVersion(version, commit, buildDate)

	// Execute the root command
	os.Exit(iam.ExitCode(cli.Execute()))
}
