// Package config loads drivesync settings.
//
// Configuration is layered: built-in defaults, then the user file
// (~/.config/drivesync/config.yaml), then the project file
// (./.drivesync/config.yaml), then an explicit file given with --config.
// Later layers override the fields they set.
package config
