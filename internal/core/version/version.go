// Package version reports the build of the explorer binary
package version

import (
	"fmt"
	"runtime/debug"
)

// BuildInfo holds version information about the build
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// set with -ldflags "-X 'bikeshare/internal/core/version.version=v0.1.0' -X ...commit=abcd -X ...date=2026-01-02"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Info returns the build information, falling back to the module build info for the commit
func Info() BuildInfo {
	bi := BuildInfo{
		Service: "bikeshare",
		Version: version,
		Commit:  commit,
		Date:    date,
	}
	if bi.Commit == "none" {
		if info, ok := debug.ReadBuildInfo(); ok && info != nil {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" && len(s.Value) >= 7 {
					bi.Commit = s.Value[:7]
				}
			}
		}
	}
	return bi
}

// String renders the one-line -version output
func (b BuildInfo) String() string {
	return fmt.Sprintf("%s %s (commit %s, built %s)", b.Service, b.Version, b.Commit, b.Date)
}
