// Package version exposes build metadata of hackatime-alarm.
//
// Version, Commit and BuildTime are injected with -ldflags -X. Local builds
// fall back to the VCS stamp recorded by the Go toolchain.
package version
