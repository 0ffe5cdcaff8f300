// Package version exposes build metadata stamped in via -ldflags.
package version

import "fmt"

// Overridden at build time, e.g.
//
//	-ldflags "-X github.com/example/cutroom/internal/version.Commit=$(git rev-parse HEAD)"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String renders the version line printed by the root command.
func String() string {
	return fmt.Sprintf("cutroom %s (commit %s, built %s)", Version, shortCommit(), BuildTime)
}

func shortCommit() string {
	if len(Commit) > 7 {
		return Commit[:7]
	}
	return Commit
}
