// Package cmd holds the build metadata stamped into the mush binary.
package cmd

import "fmt"

// Set with -ldflags "-X github.com/thoreinstein/mush/cmd.Version=...".
var (
	// Version is the release version. "dev" disables min_version checks.
	Version = "dev"
	// Commit is the source revision the binary was built from.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)

// BuildInfo renders the version block printed by `mush version`.
func BuildInfo() string {
	return fmt.Sprintf("mush version %s\n  commit: %s\n  built:  %s\n", Version, Commit, Date)
}
