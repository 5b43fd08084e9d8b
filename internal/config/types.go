package config

import "time"

// Discovery backends.
const (
	BackendLsblk      = "lsblk"
	BackendPartitions = "partitions"
)

// Config is the top-level drivesync configuration.
type Config struct {
	LogLevel  string          `yaml:"log_level"`
	LogFile   string          `yaml:"log_file"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	Facility  FacilityConfig  `yaml:"facility"`
}

// DiscoveryConfig controls how local drives are found and probed.
type DiscoveryConfig struct {
	Backend       string        `yaml:"backend"`
	ContentDir    string        `yaml:"content_dir"`
	MountRoots    []string      `yaml:"mount_roots"`
	ProbeWorkers  int           `yaml:"probe_workers"`
	Timeout       time.Duration `yaml:"timeout"`
	Watch         *bool         `yaml:"watch"`
	WatchDebounce time.Duration `yaml:"watch_debounce"`
}

// WatchEnabled reports whether hot-plug watching is on. Unset means on.
func (d DiscoveryConfig) WatchEnabled() bool {
	return d.Watch == nil || *d.Watch
}

// FacilityConfig points at the facility settings file.
type FacilityConfig struct {
	SettingsFile string `yaml:"settings_file"`
}
