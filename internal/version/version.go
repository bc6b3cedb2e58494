package version

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Version information for the calc CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI, without colour.
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

// Colored renders Version with major, minor and patch in distinct colours.
// Anything that does not look like x.y.z is returned unchanged.
func Colored(enabled bool) string {
	core, suffix, _ := strings.Cut(Version, "-")
	parts := strings.SplitN(core, ".", 3)
	if !enabled || len(parts) != 3 {
		return Version
	}
	out := fmt.Sprintf("%s.%s.%s", paint(majorColor, parts[0]), paint(minorColor, parts[1]), paint(patchColor, parts[2]))
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}

func paint(c *color.Color, s string) string {
	c.EnableColor()
	return c.Sprint(s)
}

// Banner is the multi-line text printed by `calc version`.
func Banner(colored bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "calc %s\n", Colored(colored))
	if GitCommit != "" {
		fmt.Fprintf(&b, "commit: %s\n", GitCommit)
	}
	if BuildDate != "" {
		fmt.Fprintf(&b, "built:  %s\n", BuildDate)
	}
	return b.String()
}
