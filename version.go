// Package launchpad provides the version information for launchpad.
package launchpad

// Version is the current version of launchpad.
const Version = "0.1.0"

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}
