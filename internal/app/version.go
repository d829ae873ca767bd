package app

import (
	"fmt"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/heartmarshall/lexitrack/internal/app.Version=1.2.0".
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// BuildVersion is reported in startup logs and by /health. Commit and build
// time fall back to the VCS stamp the toolchain embeds when ldflags are unset.
func BuildVersion() string {
	commit, built := Commit, BuildTime
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			switch {
			case s.Key == "vcs.revision" && commit == "":
				commit = shortRevision(s.Value)
			case s.Key == "vcs.time" && built == "":
				built = s.Value
			}
		}
	}
	if commit == "" {
		commit = "unknown"
	}
	if built == "" {
		built = "unknown"
	}
	return fmt.Sprintf("lexitrack %s (commit: %s, built: %s)", Version, commit, built)
}

func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}
