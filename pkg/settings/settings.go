// Package settings provides build metadata, per-run configuration, and
// context helpers shared by the clipbar CLI and library packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "clipbar"

// VersionInformation is populated at build time via ldflags.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds the options of a single invocation.
type Run struct {
	MinLogLevel int8
	// Source is the definition path, or "-" when read from stdin.
	Source      string
	Width       int
	Height      int
	NoColor     bool
}

// NewCliParams returns the defaults used by the CLI before flags are applied.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
	}
}

// SourceName names the definition source in messages: the path, or stdin.
func (r *Run) SourceName() string {
	if r == nil {
		return ""
	}
	if r.Source == "-" {
		return "stdin"
	}
	return r.Source
}

// Extent returns the width or height of the run depending on vertical.
func (r *Run) Extent(vertical bool) int {
	if r == nil {
		return 0
	}
	if vertical {
		return r.Height
	}
	return r.Width
}
