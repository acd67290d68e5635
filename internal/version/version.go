package version

import (
	"fmt"
	"runtime"
)

// Version is the release version embedded in the binary.
// Override at build time with:
// go build -ldflags "-X github.com/oukeidos/quicktrans/internal/version.Version=0.2.0"
var Version = "0.1.0"

// Commit is the git commit hash, set the same way via version.Commit.
var Commit = "unknown"

// BuildDate is the RFC3339 build timestamp, set via version.BuildDate.
var BuildDate = "unknown"

// Info returns a multi-line version string for CLI output.
func Info() string {
	return fmt.Sprintf("quicktrans %s\ncommit: %s\nbuild: %s\ngo: %s %s/%s",
		Version, Commit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// UserAgent identifies quicktrans in outbound HTTP requests.
func UserAgent() string {
	return "quicktrans/" + Version
}
