// Package build exposes version information stamped into the binary at link
// time, plus the Go toolchain it was compiled with.
package build

import (
	"fmt"
	"runtime"
)

// Set via -ldflags on release builds; the zero values identify a local
// development build.
var (
	Version   = "dev"
	CommitSHA = "unknown"
	BuildDate = "unknown"
)

// GoVersion returns the Go toolchain version the binary was compiled with.
func GoVersion() string {
	return runtime.Version()
}

// String returns a single human-readable build info line.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s, %s)", Version, CommitSHA, BuildDate, GoVersion())
}
