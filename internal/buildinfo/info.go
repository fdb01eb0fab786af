// Package buildinfo carries version metadata stamped in with -ldflags -X.
package buildinfo

import "fmt"

// Set via -ldflags "-X github.com/cleared-dev/tally/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String formats the metadata for tally --version.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
