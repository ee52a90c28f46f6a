package version

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Build metadata; overridden at link time:
//
//	go build -ldflags "-X zenc/internal/version.GitCommit=$(git rev-parse HEAD)"
var (
	// Version is the semantic version of the front end.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// SchemaVersion is bumped whenever the AST or the cached diagnostics layout
// changes; the disk cache keys on it.
const SchemaVersion = 1

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Banner renders "zenc <version> (commit, date)". With colorize the
// major/minor/patch numbers are coloured separately.
func Banner(colorize bool) string {
	v := Version
	if colorize {
		v = colorVersion(v)
	}
	var extra []string
	if GitCommit != "" {
		commit := GitCommit
		if len(commit) > 12 {
			commit = commit[:12]
		}
		extra = append(extra, commit)
	}
	if BuildDate != "" {
		extra = append(extra, BuildDate)
	}
	if len(extra) == 0 {
		return "zenc " + v
	}
	return fmt.Sprintf("zenc %s (%s)", v, strings.Join(extra, ", "))
}

func colorVersion(v string) string {
	core, suffix, _ := strings.Cut(v, "-")
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return v
	}
	out := majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}
