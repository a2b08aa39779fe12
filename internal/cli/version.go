package cli

import (
	"runtime/debug"
	"strings"
)

// version is set with -ldflags "-X github.com/gnomegl/gitdash/internal/cli.version=..."
var version string

// Version returns the release version without a leading "v", falling back to
// the module version from the build info.
func Version() string {
	v := version
	if v == "" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
			v = info.Main.Version
		} else {
			v = "unknown"
		}
	}
	return strings.TrimPrefix(v, "v")
}
