package main

import "runtime/debug"

// version is set by the release build: -ldflags "-X main.version=x.y.z".
var version string

// Version reported by --version. Falls back to the module version recorded
// by `go install`, then to "dev" for local builds.
var Version = resolveVersion(version)

func resolveVersion(ldflagsVersion string) string {
	if ldflagsVersion != "" {
		return ldflagsVersion
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}
