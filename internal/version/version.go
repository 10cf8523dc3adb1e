// Package version provides build version information for sqm.
package version

import "runtime"

// These variables can be overridden at build time using ldflags:
// go build -ldflags "-X github.com/DarthSidM/sqm-project/internal/version.Version=1.0.0"
var (
	// Version is the semantic version of sqm
	Version = "0.4.0"

	// Commit is the git commit hash (set at build time)
	Commit = "unknown"

	// BuildDate is the build timestamp (set at build time)
	BuildDate = "unknown"
)

// MetricsRevision changes whenever per-file results would differ for the same
// input text. Cached file metrics from another revision are ignored.
const MetricsRevision = 1

// Info returns a formatted version string
func Info() string {
	if Commit != "unknown" && len(Commit) > 7 {
		return Version + " (" + Commit[:7] + ")"
	}
	return Version
}

// Full returns complete version information
func Full() string {
	return "sqm version " + Version + "\n" +
		"Commit: " + Commit + "\n" +
		"Built: " + BuildDate + "\n" +
		"Go: " + runtime.Version()
}
