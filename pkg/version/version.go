// Package version contains build information for fishcomp.
package version

var (
	// Version is the current version of fishcomp.
	Version = "dev"
	// BuildTime is the time when the binary was built.
	BuildTime = "unknown"
	// GitCommit is the git commit hash of the build.
	GitCommit = "unknown"
)

// String returns the version line printed by `fishcomp --version`
func String() string {
	return Version + " (commit " + GitCommit + ", built " + BuildTime + ")"
}
