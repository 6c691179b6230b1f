package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
)

const (
	// shortCommitLength is the number of revision characters shown.
	shortCommitLength = 7

	unknown = "unknown"
)

var (
	// Version is the semantic version of the build.
	Version = "0.1.0"
	// Commit is the short git SHA embedded at build time.
	Commit = ""
	// BuildTime is the UTC build timestamp embedded at build time.
	BuildTime = ""

	resolveOnce sync.Once
)

// Short returns only the semantic version string.
func Short() string {
	return Version
}

// Full returns the version with commit, build time and platform.
func Full() string {
	resolveOnce.Do(resolveFromBuildInfo)

	return fmt.Sprintf("hackatime-alarm %s (commit: %s, built at: %s, %s %s/%s)",
		Version, orUnknown(Commit), orUnknown(BuildTime), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// resolveFromBuildInfo fills Commit and BuildTime from the VCS stamp when
// ldflags did not set them.
func resolveFromBuildInfo() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if Commit == "" {
				Commit = setting.Value[:min(len(setting.Value), shortCommitLength)]
			}
		case "vcs.time":
			if BuildTime == "" {
				BuildTime = setting.Value
			}
		}
	}
}

func orUnknown(s string) string {
	if s == "" {
		return unknown
	}

	return s
}
