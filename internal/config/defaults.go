package config

import (
	"path/filepath"
	"time"
)

const (
	defaultContentDir    = "KOLIBRI_DATA"
	defaultProbeWorkers  = 4
	defaultTimeout       = 15 * time.Second
	defaultWatchDebounce = 500 * time.Millisecond
)

// GetDefaultConfig returns the built-in configuration.
func GetDefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Discovery: DiscoveryConfig{
			Backend:       BackendLsblk,
			ContentDir:    defaultContentDir,
			MountRoots:    []string{"/media", "/run/media", "/mnt"},
			ProbeWorkers:  defaultProbeWorkers,
			Timeout:       defaultTimeout,
			WatchDebounce: defaultWatchDebounce,
		},
	}
}

// UserDir returns ~/.config/drivesync, where the log and facility files live
// by default.
func UserDir() (string, error) {
	home, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, userConfigDir), nil
}

// ResolveLogFile returns the configured log file or the default one.
func (c Config) ResolveLogFile() (string, error) {
	if c.LogFile != "" {
		return c.LogFile, nil
	}
	dir, err := UserDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "drivesync.log"), nil
}

// ResolveSettingsFile returns the configured facility settings file or the
// default one.
func (c Config) ResolveSettingsFile() (string, error) {
	if c.Facility.SettingsFile != "" {
		return c.Facility.SettingsFile, nil
	}
	dir, err := UserDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "facility.yaml"), nil
}
