// Package version provides version information for fairdraw.
package version

import "github.com/tidwall/sjson"

var (
	// Version is the semantic version (injected at build time via ldflags).
	Version = "dev"
	// Commit is the git commit hash (injected at build time via ldflags).
	Commit = "none"
	// BuildDate is the build timestamp (injected at build time via ldflags).
	BuildDate = "unknown"
)

// String returns formatted version information.
func String() string {
	return Version + " (commit: " + Commit + ", built: " + BuildDate + ")"
}

// JSON returns the version information as a JSON object.
func JSON() string {
	out, _ := sjson.Set("", "version", Version)
	out, _ = sjson.Set(out, "commit", Commit)
	out, _ = sjson.Set(out, "build_date", BuildDate)
	return out
}
