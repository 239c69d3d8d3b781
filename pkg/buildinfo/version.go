// Package buildinfo reports which photowall build is running.
//
// Release builds stamp the variables via ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/photowall/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/photowall/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/photowall/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Builds made with `go install` leave them unset; [Get] then falls back to
// the module version and VCS stamp the Go toolchain embeds.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the build information printed by --version and served by /healthz.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version,omitempty"`
}

// Get returns the ldflags values, filling unset ones from the embedded
// build info when available.
func Get() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info = merge(info, bi)
	}
	return info
}

// merge fills the placeholder fields of info from bi.
func merge(info Info, bi *debug.BuildInfo) Info {
	info.GoVersion = bi.GoVersion
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "none" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == "unknown" {
				info.Date = s.Value
			}
		}
	}
	return info
}

// String formats i over several lines.
func (i Info) String() string {
	s := fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", i.Version, i.Commit, i.Date)
	if i.GoVersion != "" {
		s += "\ngo: " + i.GoVersion
	}
	return s
}

// Template returns the cobra version template.
func Template() string {
	return "{{.Name}} " + Get().String() + "\n"
}
