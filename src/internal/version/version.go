// FILE: logsift/src/internal/version/version.go
package version

import "strings"

var (
	// Populated at build time via -ldflags
	Version   = "0.0.0-dev"
	GitCommit = ""
	BuildTime = ""
)

// String returns the full version string for startup banners and
// version output.
func String() string {
	var b strings.Builder
	b.WriteString(Version)
	if GitCommit != "" {
		b.WriteString("+")
		b.WriteString(GitCommit)
	}
	if BuildTime != "" {
		b.WriteString(" (built ")
		b.WriteString(BuildTime)
		b.WriteString(")")
	}
	return b.String()
}

// Short returns just the version tag
func Short() string {
	return Version
}
