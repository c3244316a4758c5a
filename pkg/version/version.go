// Package version carries the build metadata shared by the dashchat and
// assistd binaries.
package version

import "fmt"

// Set via ldflags during build.
var (
	Version = "dev"
	Commit  = "none"
)

// Summary returns the version string printed by the -version flag.
func Summary() string {
	v := Version
	if v == "" {
		v = "dev"
	}
	if Commit != "" && Commit != "none" {
		short := Commit
		if len(short) > 7 {
			short = short[:7]
		}
		return fmt.Sprintf("%s (%s)", v, short)
	}
	return v
}
