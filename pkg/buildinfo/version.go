// Package buildinfo exposes version information injected at build time:
//
//	go build -ldflags "-X github.com/matzehuels/pipegraph/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/pipegraph/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/pipegraph/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	// Version is the semantic version (e.g., "v1.2.3"), or "dev".
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// Scope identifies the build for cache namespacing. Release builds are
// identified by version alone; dev builds also include the commit, since
// two dev binaries may render differently.
func Scope() string {
	if Version == "dev" {
		return Version + "+" + Commit
	}
	return Version
}
