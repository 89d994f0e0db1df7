package main

import (
	_ "embed"
	"runtime/debug"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

// Version reports the enumprops release.
//
// A binary built with `go install github.com/broady/enumprops/cmd/enumprops@v0.1.0`
// reports "v0.1.0". Source builds report the VERSION file as a semver
// prerelease, "0.1.0-dev", with the short VCS revision as build metadata
// when the toolchain stamped one: "0.1.0-dev+1a2b3c4".
func Version() string {
	info, _ := debug.ReadBuildInfo()
	return formatVersion(strings.TrimSpace(embeddedVersion), info)
}

func formatVersion(release string, info *debug.BuildInfo) string {
	if info == nil {
		return release
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}

	dev := release + "-dev"
	var rev string
	dirty := false
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if len(rev) < 7 {
		return dev
	}
	dev += "+" + rev[:7]
	if dirty {
		dev += ".dirty"
	}
	return dev
}
