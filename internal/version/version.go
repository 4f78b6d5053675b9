// Package version reports the printscan build version.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
	"time"
)

// These variables can be set at build time via ldflags:
//
//	go build -ldflags="-X github.com/muurk/printscan/internal/version.Version=v1.2.3 \
//	                   -X github.com/muurk/printscan/internal/version.Commit=abc123"
//
// Values left empty are filled from the VCS stamp in the build info, or
// "dev"/"unknown".
var (
	Version = ""
	Commit  = ""
)

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuiltAt   string `json:"built_at,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

var (
	info     Info
	infoOnce sync.Once
)

// Get returns the build information, resolved once.
func Get() Info {
	infoOnce.Do(func() {
		info = resolve(Version, Commit, readSettings())
	})
	return info
}

// String returns "version (commit: ...)".
func (i Info) String() string {
	return fmt.Sprintf("%s (commit: %s)", i.Version, i.Commit)
}

func readSettings() map[string]string {
	settings := make(map[string]string)
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return settings
	}
	for _, s := range bi.Settings {
		settings[s.Key] = s.Value
	}
	return settings
}

// resolve merges ldflags values with VCS build settings.
func resolve(ver, commit string, settings map[string]string) Info {
	i := Info{
		Version:   ver,
		Commit:    commit,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	if rev := settings["vcs.revision"]; i.Commit == "" && rev != "" {
		if len(rev) > 7 {
			rev = rev[:7]
		}
		if settings["vcs.modified"] == "true" {
			rev += "-dirty"
		}
		i.Commit = rev
	}

	if ts := settings["vcs.time"]; ts != "" {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			i.BuiltAt = t.UTC().Format(time.RFC3339)
			if i.Version == "" {
				i.Version = "dev-" + t.Format("20060102")
			}
		}
	}

	if i.Version == "" {
		i.Version = "dev"
	}
	if i.Commit == "" {
		i.Commit = "unknown"
	}
	return i
}
