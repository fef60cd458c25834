// Package version holds build metadata injected via ldflags.
package version

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String renders the build metadata for the startup log and the SDK user agent.
func String() string {
	return Version + " (" + Commit + ", " + Date + ")"
}
