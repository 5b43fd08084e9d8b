// Package internal provides version information and build metadata for DriveSync.
//
// To update the version, change AppVersion; every other version string is
// derived from it.
package internal

// Application metadata constants.
const (
	// AppName is the official name of the application
	AppName = "DriveSync"

	// AppVersion follows semantic versioning (major.minor.patch)
	AppVersion = "0.4.0"

	// AppDesc is the tagline used in UI and documentation
	AppDesc = "Offline channel import and export over local drives"
)

// Version may be overridden at link time with -ldflags "-X drivesync/internal.Version=...".
var Version = AppVersion

// GetVersionString returns just the version number for programmatic use.
func GetVersionString() string {
	return Version
}

// GetFullVersionString returns the application name with version for display.
// Example: "DriveSync v0.4.0"
func GetFullVersionString() string {
	return AppName + " v" + Version
}

// GetAboutText returns the standard about text for help screens.
func GetAboutText() string {
	return AppName + " v" + Version + " - " + AppDesc
}
