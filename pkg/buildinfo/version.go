// Package buildinfo holds the version stamped into the modgraph binary.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/cim-modules/modgraph/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/cim-modules/modgraph/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/cim-modules/modgraph/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/modgraph
package buildinfo

import "fmt"

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// Generator returns the generator tag written into diagram headers,
// e.g. "modgraph v1.2.3".
func Generator() string {
	return "modgraph " + Version
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
