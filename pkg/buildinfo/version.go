// Package buildinfo reports the genoviz version.
//
// Commit and Date are set through ldflags at release time:
//
//	go build -ldflags "-X github.com/matzehuels/genoviz/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/genoviz/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	// Version is the library version. Release builds may override it.
	Version = "1.0.0"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the multi-line build description.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// UserAgent identifies genoviz in outgoing requests and server headers.
func UserAgent() string {
	return "genoviz/" + Version
}
