// Package buildinfo holds the version stamped into flowboard binaries.
//
// Release builds set the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/flowboard/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/flowboard/pkg/buildinfo.Commit=$(git rev-parse --short HEAD)" \
//	    ./cmd/flowboard
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	// Version is the release tag, "dev" for local builds.
	Version = "dev"

	// Commit is the git revision the binary was built from.
	Commit = ""
)

// Revision returns Commit, falling back to the VCS revision recorded by
// the Go toolchain when ldflags were not used.
func Revision() string {
	if Commit != "" {
		return Commit
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return "unknown"
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (%s)\n", Version, Revision())
}
