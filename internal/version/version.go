package version

// Version is the current ReleaseMate version, updated on each release.
const Version = "0.1.0"

// FullVersion returns the version with the v prefix.
func FullVersion() string {
	return "v" + Version
}
