// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/dylanmaniatakes/Door-Config-Generator/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/dylanmaniatakes/Door-Config-Generator/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/dylanmaniatakes/Door-Config-Generator/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ) \
//	    -X github.com/dylanmaniatakes/Door-Config-Generator/pkg/buildinfo.Packaged=true"
package buildinfo

import (
	"fmt"
	"strconv"
)

var (
	// Version is the semantic version (e.g., "v1.2.3").
	// Set via ldflags: -X github.com/dylanmaniatakes/Door-Config-Generator/pkg/buildinfo.Version=...
	Version = "dev"

	// Commit is the git commit SHA.
	// Set via ldflags: -X github.com/dylanmaniatakes/Door-Config-Generator/pkg/buildinfo.Commit=...
	Commit = "none"

	// Date is the build timestamp.
	// Set via ldflags: -X github.com/dylanmaniatakes/Door-Config-Generator/pkg/buildinfo.Date=...
	Date = "unknown"

	// Packaged marks a double-clickable desktop build. Packaged builds open
	// the launcher when started without an input file.
	// Set via ldflags: -X github.com/dylanmaniatakes/Door-Config-Generator/pkg/buildinfo.Packaged=true
	Packaged = "false"
)

// IsPackaged reports whether the binary was built as a packaged app.
// Unparseable values count as false.
func IsPackaged() bool {
	ok, err := strconv.ParseBool(Packaged)
	return err == nil && ok
}

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s\npackaged: %t", Version, Commit, Date, IsPackaged())
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
