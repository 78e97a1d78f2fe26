package main

import (
	_ "embed"
	"runtime/debug"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

// Version returns the hubgen version.
//
// Binaries installed with `go install ...@version` report the module
// version. Development builds report the embedded version followed by the
// VCS revision, e.g. "v0.1.0-devel+abc1234", with ".dirty" appended when
// the tree had local modifications.
func Version() string {
	base := "v" + strings.TrimSpace(embeddedVersion)

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return base
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}

	settings := make(map[string]string, len(info.Settings))
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}
	rev := settings["vcs.revision"]
	if rev == "" {
		return base + "-devel"
	}
	if len(rev) > 7 {
		rev = rev[:7]
	}
	v := base + "-devel+" + rev
	if settings["vcs.modified"] == "true" {
		v += ".dirty"
	}
	return v
}
