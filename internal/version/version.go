package version

import "fmt"

// Set at build time via -ldflags.
// 构建时通过 -ldflags 注入。
var (
	Version = "dev"
	Commit  = "unknown"
)

// String renders the full version line.
func String() string {
	return fmt.Sprintf("tsutils %s (%s)", Version, Commit)
}
