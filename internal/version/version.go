package version

import (
	"strings"

	"github.com/fatih/color"
)

// Build information for the doccomment CLI, overridable via -ldflags -X.
var (
	// Version is the semantic version, "MAJOR.MINOR.PATCH[-pre]".
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders Version with each numeric part in its own color.
// Output is plain when color is disabled (color.NoColor).
func Colored() string {
	core, pre, hasPre := strings.Cut(Version, "-")
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	out := majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2])
	if hasPre {
		out += "-" + pre
	}
	return out
}

// Info is the multi-line text printed by `doccomment version`.
func Info() string {
	var sb strings.Builder
	sb.WriteString("doccomment ")
	sb.WriteString(Colored())
	sb.WriteString("\n")
	if GitCommit != "" {
		sb.WriteString("commit: " + GitCommit + "\n")
	}
	if BuildDate != "" {
		sb.WriteString("built:  " + BuildDate + "\n")
	}
	return sb.String()
}
