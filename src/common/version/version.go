// Package version holds build metadata set via -ldflags.
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Build-time variables
var (
	// Version is the semantic version (e.g., "1.4.0")
	Version = "dev"

	// Commit is the git commit hash
	Commit = "unknown"

	// BuildDate is the build timestamp
	BuildDate = "unknown"
)

// Product is the User-Agent product token.
const Product = "vector-cli"

// Info contains all version information
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// Get returns the current version info
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    CommitShort(),
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// String returns "vector-cli 1.4.0 (linux/amd64)".
func (i Info) String() string {
	return fmt.Sprintf("%s %s (%s/%s)", Product, i.Version, i.OS, i.Arch)
}

// Full returns a detailed, multi-line version string
func (i Info) Full() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Version:    %s\n", i.Version)
	fmt.Fprintf(&sb, "Commit:     %s\n", i.Commit)
	fmt.Fprintf(&sb, "Build Date: %s\n", i.BuildDate)
	fmt.Fprintf(&sb, "Go Version: %s\n", i.GoVersion)
	fmt.Fprintf(&sb, "OS/Arch:    %s/%s", i.OS, i.Arch)
	return sb.String()
}

// UserAgent returns the User-Agent sent with every request
func UserAgent() string {
	return Product + "/" + Version
}

// CommitShort returns the first 7 characters of the commit hash
func CommitShort() string {
	if len(Commit) >= 7 {
		return Commit[:7]
	}
	return Commit
}

// IsDev returns true if this is a development build
func IsDev() bool {
	return Version == "dev" || Version == "" || strings.HasSuffix(Version, "-dev")
}
